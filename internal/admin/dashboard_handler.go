package admin

import (
	"time"

	"warung-backend/internal/database"
	"warung-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler returns the staff user's branch together with its open
// (not yet done) orders and their items.
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := staffUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		var branch *models.Branch
		orders := []models.Order{}
		if user.BranchID != nil {
			var b models.Branch
			if err := database.DB.First(&b, "id = ?", *user.BranchID).Error; err == nil {
				branch = &b
				if err := database.DB.
					Where("branch_id = ? AND is_done = ?", b.ID, false).
					Preload("Items").
					Find(&orders).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
				}
			}
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Welcome to the Admin Dashboard!",
			"userData": fiber.Map{
				"username":  user.Username,
				"level":     user.Level,
				"lastLogin": time.Now().Format(time.RFC3339),
			},
			"data": fiber.Map{
				"cabang": branch,
				"orders": orders,
			},
		})
	}
}
