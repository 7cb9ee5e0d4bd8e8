package validation

import (
	"github.com/gofiber/fiber/v2"
)

// Gate returns a Fiber handler that evaluates rules against the request.
// Any violation ends the chain with 400 {"errors": [...]}; otherwise the
// next handler runs.
func (v *Validator) Gate(rules RuleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if violations := v.Evaluate(newCtxSource(c), rules); len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": violations,
			})
		}
		return c.Next()
	}
}

// ctxSource reads path parameters and JSON body fields from a Fiber context.
// A missing, non-JSON or malformed body behaves like an empty object.
type ctxSource struct {
	c    *fiber.Ctx
	body map[string]any
}

func newCtxSource(c *fiber.Ctx) *ctxSource {
	return &ctxSource{c: c}
}

func (s *ctxSource) Lookup(loc Location, field string) (any, bool) {
	switch loc {
	case LocationParams:
		value := s.c.Params(field)
		return value, value != ""
	case LocationBody:
		if s.body == nil {
			s.body = decodeBody(s.c)
		}
		value, ok := s.body[field]
		return value, ok
	default:
		return nil, false
	}
}

func decodeBody(c *fiber.Ctx) map[string]any {
	body := make(map[string]any)
	raw := c.Body()
	if len(raw) == 0 || !c.Is("json") {
		return body
	}
	if err := c.App().Config().JSONDecoder(raw, &body); err != nil {
		return make(map[string]any)
	}
	return body
}
