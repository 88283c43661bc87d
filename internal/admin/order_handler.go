package admin

import (
	"errors"

	"warung-backend/internal/auth"
	"warung-backend/internal/config"
	"warung-backend/internal/database"
	"warung-backend/internal/order"

	"github.com/gofiber/fiber/v2"
)

type CompleteItemRequest struct {
	IDItem string `json:"idItem"`
}

type CompleteOrderRequest struct {
	IDOrder string `json:"idOrder"`
}

type CreateOrderRequest struct {
	Meja int `json:"meja"`
}

func CompleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompleteItemRequest
		if err := c.BodyParser(&body); err != nil || body.IDItem == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item ID format.")
		}

		item, err := order.MarkItemDelivered(database.DB, body.IDItem)
		switch {
		case errors.Is(err, order.ErrItemNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Item not found.")
		case errors.Is(err, order.ErrItemDelivered):
			return fiber.NewError(fiber.StatusBadRequest, "Item is already completed.")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Item completed successfully.",
			"data": fiber.Map{
				"item": fiber.Map{
					"id":          item.ID,
					"isDelivered": item.IsDelivered,
				},
			},
		})
	}
}

func CompleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompleteOrderRequest
		if err := c.BodyParser(&body); err != nil || body.IDOrder == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid order ID format.")
		}

		err := order.MarkDone(database.DB, body.IDOrder)
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Order not found.")
		case errors.Is(err, order.ErrOrderNotPaid):
			return fiber.NewError(fiber.StatusBadRequest, "Order must be paid before it can be completed.")
		case errors.Is(err, order.ErrOrderDone):
			return fiber.NewError(fiber.StatusBadRequest, "Order is already completed.")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order completed successfully.",
		})
	}
}

// CreateOrderHandler starts a table session: a fresh order bound to the staff
// user's branch plus the customer token its QR code will carry. The branch
// must be open.
func CreateOrderHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := staffUser(c)
		if user == nil || user.BranchID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bad request.")
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil || body.Meja <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Table number is required.")
		}

		ord, err := order.Create(database.DB, user.ID, *user.BranchID, body.Meja, cfg.BaseURL)
		switch {
		case errors.Is(err, order.ErrBranchNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Branch not found.")
		case errors.Is(err, order.ErrBranchClosed):
			return fiber.NewError(fiber.StatusBadRequest, "Branch must be open before orders can be created.")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		token, err := auth.GenerateOrderToken(cfg.JWTSecret, cfg.BaseURL, ord.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "Order created successfully.",
			"data": fiber.Map{
				"order": fiber.Map{
					"id":       ord.ID,
					"meja":     ord.Meja,
					"idUser":   ord.UserID,
					"idCabang": ord.BranchID,
					"qr":       ord.QR,
				},
				"token": token,
			},
		})
	}
}
