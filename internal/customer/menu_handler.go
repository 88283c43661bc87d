package customer

import (
	"warung-backend/internal/database"
	"warung-backend/internal/menu"
	"warung-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MenuEntry struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Price       int64  `json:"price"`
	IsActive    bool   `json:"isActive"`
}

// MenuHandler returns the catalog grouped by category for the table UI.
// Uncategorized items land under "Lainnya".
func MenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenOrder(c) == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		var rows []models.Menu
		if err := database.DB.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		grouped := make(map[string][]MenuEntry)
		for _, m := range rows {
			kategori := m.Kategori
			if kategori == "" {
				kategori = "Lainnya"
			}
			grouped[kategori] = append(grouped[kategori], MenuEntry{
				ID:          m.ID,
				Name:        m.Name,
				Description: m.Description,
				Image:       menu.DataURI(m.Image),
				Price:       m.Price,
				IsActive:    m.IsActive,
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Get menu successfully.",
			"data": fiber.Map{
				"menu": grouped,
			},
		})
	}
}
