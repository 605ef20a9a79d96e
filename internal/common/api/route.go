package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature API so main can register them all
// through one fx group.
type Route interface {
	Setup(app *fiber.App)
}
