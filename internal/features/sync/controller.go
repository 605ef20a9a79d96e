package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{
		Service: service,
	}
}

// RunCycle godoc
//
// The request body is the state returned by the previous invocation, or
// empty for a first run. Data is pushed outward to the target store, so the
// changes list in the response is always empty.
func (ctrl *SyncController) RunCycle(c *fiber.Ctx) error {
	var carried *State
	if len(c.Body()) > 0 {
		var state State
		if err := c.BodyParser(&state); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		carried = &state
	}

	result, err := ctrl.Service.RunCycle(c.Context(), carried)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"changes":        []interface{}{},
		"has_more":       result.HasMore,
		"next_state":     result.NextState,
		"processed":      result.Processed,
		"errors":         result.Errors,
		"error_messages": result.ErrorMessages,
	})
}
