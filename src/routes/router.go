package routes

import (
	"Backend-Survey-Engine/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the controllers the routes mount.
type Handlers struct {
	Answers *controllers.AnswerController
	Admin   *controllers.AdminController
}

func InitRoutes(app *fiber.App, h Handlers) {
	answerRoutes(app, h.Answers)
	adminRoutes(app, h.Admin)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
