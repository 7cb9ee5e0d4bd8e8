package handlers

import (
	"productsapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductsPrefix is where the product routes are mounted.
const ProductsPrefix = "/api/products"

// Route binds a method and path to its rules and handler.
type Route struct {
	Method  string
	Path    string
	Rules   validation.RuleSet
	Handler fiber.Handler
}

// Routes returns the product route table in registration order.
func (h *ProductHandler) Routes() []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/", Handler: h.HandleGetProducts},
		{Method: fiber.MethodGet, Path: "/:id", Rules: ProductIDRules, Handler: h.HandleGetProductByID},
		{Method: fiber.MethodPost, Path: "/", Rules: ProductBodyRules, Handler: h.HandleCreateProduct},
		{Method: fiber.MethodPut, Path: "/:id", Rules: ProductReplaceRules, Handler: h.HandleUpdateProduct},
		{Method: fiber.MethodPatch, Path: "/:id", Rules: ProductIDRules, Handler: h.HandlePatchAvailability},
		{Method: fiber.MethodDelete, Path: "/:id", Rules: ProductIDRules, Handler: h.HandleDeleteProduct},
	}
}

// RegisterRoutes mounts every route as [gate, handler] under ProductsPrefix.
// Routes without rules skip the gate.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, v *validation.Validator) {
	productRoutes := router.Group(ProductsPrefix)
	for _, route := range h.Routes() {
		chain := make([]fiber.Handler, 0, 2)
		if len(route.Rules) > 0 {
			chain = append(chain, v.Gate(route.Rules))
		}
		chain = append(chain, route.Handler)
		productRoutes.Add(route.Method, route.Path, chain...)
	}
}
