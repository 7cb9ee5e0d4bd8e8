package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Custom tags registered on top of the validator built-ins.
const (
	TagInteger    = "integer"
	TagDecimal    = "decimal"
	TagPositive   = "positive"
	TagStrictBool = "strictbool"
)

var (
	integerRegex = regexp.MustCompile(`^[-+]?[0-9]+$`)
	decimalRegex = regexp.MustCompile(`^[-+]?([0-9]*[.])?[0-9]+$`)
)

// Source resolves request fields for rule evaluation.
type Source interface {
	Lookup(loc Location, field string) (value any, ok bool)
}

// Validator evaluates rule sets against a request.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New()
	mustRegister(v, TagInteger, isInteger)
	mustRegister(v, TagDecimal, isDecimal)
	mustRegister(v, TagPositive, isPositive)
	mustRegister(v, TagStrictBool, isStrictBool)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Evaluate runs every rule and returns the violations in rule order.
// A nil result means the request passed.
func (v *Validator) Evaluate(src Source, rules RuleSet) []Violation {
	var violations []Violation
	for _, rule := range rules {
		raw, ok := src.Lookup(rule.Location, rule.Field)
		if err := v.validate.Var(stringify(raw), rule.Tag); err != nil {
			violation := Violation{
				Type:     "field",
				Msg:      rule.Message,
				Path:     rule.Field,
				Location: rule.Location,
			}
			if ok {
				violation.Value = raw
			}
			violations = append(violations, violation)
		}
	}
	return violations
}

// stringify converts a decoded JSON value to the text the tags are checked
// against. Absent and null values become the empty string.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func isInteger(fl validator.FieldLevel) bool {
	return integerRegex.MatchString(fl.Field().String())
}

// isDecimal accepts an optional sign and an optional fraction; a leading
// digit is not needed (".5"). Exponents are rejected.
func isDecimal(fl validator.FieldLevel) bool {
	return decimalRegex.MatchString(fl.Field().String())
}

// isStrictBool accepts only true, false, 1 and 0.
func isStrictBool(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

func isPositive(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && f > 0
}
