package handlers

import "productsapi/internal/validation"

// Validation messages returned to clients.
const (
	MsgInvalidID            = "ID no válido"
	MsgNameRequired         = "El nombre es obligatorio"
	MsgInvalidValue         = "Valor no válido"
	MsgPriceGreaterThanZero = "El precio debe ser mayor a 0"
	MsgInvalidAvailability  = "Valor para disponibilidad no valida"
)

var (
	// ProductIDRules guards every route with an :id segment.
	ProductIDRules = validation.RuleSet{
		validation.Param("id", validation.TagInteger, MsgInvalidID),
	}

	// ProductBodyRules guards create. The last price rule reports the
	// name message; clients already match on that text.
	ProductBodyRules = validation.RuleSet{
		validation.Body("name", "required", MsgNameRequired),
		validation.Body("price", validation.TagDecimal, MsgInvalidValue),
		validation.Body("price", validation.TagPositive, MsgPriceGreaterThanZero),
		validation.Body("price", "required", MsgNameRequired),
	}

	// ProductReplaceRules guards full update.
	ProductReplaceRules = validation.Join(
		ProductIDRules,
		ProductBodyRules,
		validation.RuleSet{
			validation.Body("availability", validation.TagStrictBool, MsgInvalidAvailability),
		},
	)
)
