package controllers

import (
	"context"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/utils"

	"github.com/gofiber/fiber/v2"
)

// CatalogReloader is the message catalog's admin surface.
type CatalogReloader interface {
	Reload(ctx context.Context) error
	Len() int
}

type AdminController struct {
	catalog CatalogReloader
}

func NewAdminController(catalog CatalogReloader) *AdminController {
	return &AdminController{catalog: catalog}
}

// ReloadMessages godoc
// @Summary      Reload the message catalog
// @Description  Re-reads localized messages from the database; the previous catalog stays active on failure
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /admin/messages/reload [post]
func (ac *AdminController) ReloadMessages(c *fiber.Ctx) error {
	if err := ac.catalog.Reload(c.UserContext()); err != nil {
		logger.Errorf("❌ [ReloadMessages] %v", err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to reload messages")
	}
	logger.Infof("✅ [ReloadMessages] by %v, %d messages", c.Locals("userId"), ac.catalog.Len())
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Messages reloaded",
		"count":   ac.catalog.Len(),
	})
}
