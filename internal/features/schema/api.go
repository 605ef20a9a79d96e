package schema

import (
	"notion-mirror/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SchemaApi struct {
	controller *SchemaController
}

func NewSchemaApi(controller *SchemaController) api.Route {
	return &SchemaApi{
		controller: controller,
	}
}

// Setup registers all schema routes
func (h *SchemaApi) Setup(app *fiber.App) {
	schemaGroup := app.Group("/api/schema")

	schemaGroup.Post("/reconcile", h.controller.ReconcileSchema)
}
