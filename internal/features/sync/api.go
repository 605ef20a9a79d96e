package sync

import (
	"notion-mirror/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
}

func NewSyncApi(controller *SyncController) api.Route {
	return &SyncApi{
		controller: controller,
	}
}

// Setup registers all sync routes
func (h *SyncApi) Setup(app *fiber.App) {
	syncGroup := app.Group("/api/sync")

	syncGroup.Post("/run", h.controller.RunCycle)
}
