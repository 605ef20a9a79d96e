package schema

import (
	"github.com/gofiber/fiber/v2"
)

type SchemaController struct {
	Service SchemaService
}

func NewSchemaController(service SchemaService) *SchemaController {
	return &SchemaController{
		Service: service,
	}
}

// ReconcileSchema godoc
func (ctrl *SchemaController) ReconcileSchema(c *fiber.Ctx) error {
	summary, err := ctrl.Service.ReconcileSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": summary,
	})
}
