package admin

import (
	"io"
	"strconv"
	"strings"

	"warung-backend/internal/database"
	"warung-backend/internal/menu"
	"warung-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MenuResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// AddMenuHandler creates a catalog entry from multipart form data. The image
// part is mandatory, must be webp and is stored as raw bytes; the response
// never echoes the bytes back.
func AddMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Menu name is required.")
		}

		price, err := strconv.ParseInt(c.FormValue("price"), 10, 64)
		if err != nil || price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price must be a positive number.")
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, menu.ErrBadImage.Error())
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}
		defer file.Close()

		imageData, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		if err := menu.ValidateImage(fileHeader.Header.Get("Content-Type"), imageData); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		row := models.Menu{
			Name:        name,
			Price:       price,
			Description: c.FormValue("description"),
			Kategori:    c.FormValue("kategori"),
			Image:       imageData,
			IsActive:    true,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create menu item.")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Menu item created successfully.",
			"data": MenuResponse{
				ID:          row.ID,
				Name:        row.Name,
				Price:       row.Price,
				Description: row.Description,
			},
		})
	}
}

func GetMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Menu
		if err := database.DB.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		res := make([]MenuResponse, 0, len(rows))
		for _, m := range rows {
			res = append(res, MenuResponse{
				ID:          m.ID,
				Name:        m.Name,
				Price:       m.Price,
				Description: m.Description,
				Image:       menu.DataURI(m.Image),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Menu retrieved successfully.",
			"data":    res,
		})
	}
}
