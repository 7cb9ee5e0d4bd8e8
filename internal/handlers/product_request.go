package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"productsapi/internal/models"
)

// productRequest is the JSON body of create and full update. Price and
// availability accept the same quoted forms the validation rules accept.
type productRequest struct {
	Name         string     `json:"name"`
	Price        looseFloat `json:"price"`
	Availability *looseBool `json:"availability"`
}

func (r productRequest) toInput() models.ProductInput {
	input := models.ProductInput{
		Name:  r.Name,
		Price: float64(r.Price),
	}
	if r.Availability != nil {
		b := bool(*r.Availability)
		input.Availability = &b
	}
	return input
}

// looseFloat decodes a JSON number or a decimal string such as ".5".
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case float64:
		*f = looseFloat(val)
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", val)
		}
		*f = looseFloat(parsed)
	case nil:
	default:
		return fmt.Errorf("invalid price %s", data)
	}
	return nil
}

// looseBool decodes true/false as well as the strings "true", "false", "1"
// and "0" and the numbers 1 and 0.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		*b = looseBool(val)
	case string:
		switch val {
		case "true", "1":
			*b = true
		case "false", "0":
			*b = false
		default:
			return fmt.Errorf("invalid boolean %q", val)
		}
	case float64:
		if val != 0 && val != 1 {
			return fmt.Errorf("invalid boolean %s", data)
		}
		*b = val == 1
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}
