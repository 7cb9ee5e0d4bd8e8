package validation_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"productsapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[validation.Location]map[string]any

func (m mapSource) Lookup(loc validation.Location, field string) (any, bool) {
	v, ok := m[loc][field]
	return v, ok
}

func TestValidator_Evaluate(t *testing.T) {
	v := validation.New()

	rules := validation.RuleSet{
		validation.Param("id", validation.TagInteger, "bad id"),
		validation.Body("name", "required", "name required"),
		validation.Body("price", validation.TagDecimal, "bad price"),
		validation.Body("price", validation.TagPositive, "price must be positive"),
		validation.Body("flag", validation.TagStrictBool, "bad flag"),
	}

	tests := []struct {
		name     string
		src      mapSource
		wantMsgs []string
	}{
		{
			name: "all valid",
			src: mapSource{
				validation.LocationParams: {"id": "42"},
				validation.LocationBody:   {"name": "Monitor", "price": 10.5, "flag": true},
			},
		},
		{
			name: "everything missing",
			src:  mapSource{},
			wantMsgs: []string{
				"bad id", "name required", "bad price", "price must be positive", "bad flag",
			},
		},
		{
			name: "zero price is numeric but not positive",
			src: mapSource{
				validation.LocationParams: {"id": "1"},
				validation.LocationBody:   {"name": "Monitor", "price": 0.0, "flag": false},
			},
			wantMsgs: []string{"price must be positive"},
		},
		{
			name: "negative price and string flag",
			src: mapSource{
				validation.LocationParams: {"id": "-3"},
				validation.LocationBody:   {"name": "Monitor", "price": -1.0, "flag": "maybe"},
			},
			wantMsgs: []string{"price must be positive", "bad flag"},
		},
		{
			name: "non numeric price string",
			src: mapSource{
				validation.LocationParams: {"id": "7"},
				validation.LocationBody:   {"name": "Monitor", "price": "abc", "flag": "true"},
			},
			wantMsgs: []string{"bad price", "price must be positive"},
		},
		{
			name: "numeric price string is accepted",
			src: mapSource{
				validation.LocationParams: {"id": "7"},
				validation.LocationBody:   {"name": "Monitor", "price": "99.90", "flag": "false"},
			},
		},
		{
			name: "id with decimals",
			src: mapSource{
				validation.LocationParams: {"id": "1.5"},
				validation.LocationBody:   {"name": "Monitor", "price": 1.0, "flag": true},
			},
			wantMsgs: []string{"bad id"},
		},
		{
			name: "null name counts as empty",
			src: mapSource{
				validation.LocationParams: {"id": "1"},
				validation.LocationBody:   {"name": nil, "price": 1.0, "flag": true},
			},
			wantMsgs: []string{"name required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := v.Evaluate(tt.src, rules)

			msgs := make([]string, 0, len(violations))
			for _, violation := range violations {
				msgs = append(msgs, violation.Msg)
			}
			if len(tt.wantMsgs) == 0 {
				assert.Empty(t, violations)
				return
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestValidator_CustomTags(t *testing.T) {
	v := validation.New()

	tests := []struct {
		tag   string
		value any
		want  bool
	}{
		{validation.TagInteger, "42", true},
		{validation.TagInteger, "01", true},
		{validation.TagInteger, "+7", true},
		{validation.TagInteger, "-0", true},
		{validation.TagInteger, "1.0", false},
		{validation.TagInteger, "1e3", false},
		{validation.TagInteger, "", false},
		{validation.TagDecimal, ".5", true},
		{validation.TagDecimal, "-.5", true},
		{validation.TagDecimal, "10", true},
		{validation.TagDecimal, 19.99, true},
		{validation.TagDecimal, "5.", false},
		{validation.TagDecimal, "1e3", false},
		{validation.TagDecimal, "abc", false},
		{validation.TagStrictBool, true, true},
		{validation.TagStrictBool, "false", true},
		{validation.TagStrictBool, "1", true},
		{validation.TagStrictBool, 0.0, true},
		{validation.TagStrictBool, "TRUE", false},
		{validation.TagStrictBool, "t", false},
		{validation.TagStrictBool, "yes", false},
		{validation.TagStrictBool, 2.0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %v", tt.tag, tt.value), func(t *testing.T) {
			rules := validation.RuleSet{validation.Body("field", tt.tag, "invalid")}
			violations := v.Evaluate(mapSource{validation.LocationBody: {"field": tt.value}}, rules)
			assert.Equal(t, tt.want, len(violations) == 0)
		})
	}
}

func TestValidator_EvaluateViolationContext(t *testing.T) {
	v := validation.New()
	rules := validation.RuleSet{
		validation.Param("id", validation.TagInteger, "bad id"),
		validation.Body("name", "required", "name required"),
	}

	violations := v.Evaluate(mapSource{
		validation.LocationParams: {"id": "abc"},
	}, rules)

	require.Len(t, violations, 2)
	assert.Equal(t, validation.Violation{
		Type: "field", Value: "abc", Msg: "bad id", Path: "id", Location: validation.LocationParams,
	}, violations[0])
	assert.Nil(t, violations[1].Value, "absent fields carry no value")
	assert.Equal(t, validation.LocationBody, violations[1].Location)
}

func TestJoin(t *testing.T) {
	a := validation.RuleSet{validation.Param("id", validation.TagInteger, "a")}
	b := validation.RuleSet{validation.Body("name", "required", "b"), validation.Body("price", validation.TagDecimal, "c")}

	joined := validation.Join(a, b)

	require.Len(t, joined, 3)
	assert.Equal(t, "a", joined[0].Message)
	assert.Equal(t, "c", joined[2].Message)
	assert.Len(t, a, 1, "inputs are not modified")
}

func TestValidator_Gate(t *testing.T) {
	v := validation.New()
	rules := validation.RuleSet{
		validation.Param("id", validation.TagInteger, "bad id"),
		validation.Body("name", "required", "name required"),
	}

	app := fiber.New()
	reached := false
	app.Post("/items/:id", v.Gate(rules), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(fiber.StatusNoContent)
	})

	t.Run("rejects with every violation", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/items/abc", nil)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, reached)

		var body map[string][]map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body["errors"], 2)
		assert.Equal(t, "bad id", body["errors"][0]["msg"])
		assert.Equal(t, "name required", body["errors"][1]["msg"])
	})

	t.Run("passes a valid request", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/items/5", strings.NewReader(`{"name":"Monitor"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.True(t, reached)
	})

	t.Run("malformed json is treated as an empty body", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/items/5", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, reached)
	})

	t.Run("body fields ignored without a json content type", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodPost, "/items/5", strings.NewReader(`{"name":"Monitor"}`))
		req.Header.Set("Content-Type", "text/plain")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
