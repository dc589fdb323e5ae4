package routes

import (
	"Backend-Survey-Engine/src/controllers"
	"Backend-Survey-Engine/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(router fiber.Router, ctrl *controllers.AdminController) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthJWT, middleware.RequireRole("admin"))
	admin.Post("/messages/reload", ctrl.ReloadMessages)
}
