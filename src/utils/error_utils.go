// error_utils.go
package utils

import (
	"Backend-Survey-Engine/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationErrors renders per-item answer messages as {"errors": {...}}.
func HandleValidationErrors(c *fiber.Ctx, errs map[string]any) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{Errors: errs})
}
