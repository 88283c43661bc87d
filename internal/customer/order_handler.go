package customer

import (
	"errors"

	"warung-backend/internal/auth"
	"warung-backend/internal/database"
	"warung-backend/internal/models"
	"warung-backend/internal/order"

	"github.com/gofiber/fiber/v2"
)

type AddItemRequest struct {
	IDMenu uint `json:"idMenu"`
	Qty    int  `json:"qty"`
}

type SubmitItemRequest struct {
	ID  uint `json:"id"` // menu id
	Qty int  `json:"qty"`
	// Price is accepted for wire compatibility and ignored outright; the
	// catalog is the only price source.
	Price *int64 `json:"price"`
}

type SubmitOrderRequest struct {
	ID    string              `json:"id"`
	Total *int64              `json:"total"`
	Note  *string             `json:"note"`
	Item  []SubmitItemRequest `json:"item"`
}

type SubmitRequest struct {
	Order SubmitOrderRequest `json:"order"`
}

func tokenOrder(c *fiber.Ctx) *models.Order {
	ord, _ := c.Locals(auth.CtxOrderKey).(*models.Order)
	return ord
}

func orderSummary(o *models.Order) fiber.Map {
	return fiber.Map{
		"id":       o.ID,
		"idMeja":   o.Meja,
		"idUser":   o.UserID,
		"idCabang": o.BranchID,
		"total":    o.Total,
		"isPaid":   o.IsPaid,
		"isDone":   o.IsDone,
	}
}

// AddItemHandler upserts a single line on the running tab. Quantity replaces,
// it does not accumulate: sending qty 2 twice leaves qty 2.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ord := tokenOrder(c)
		if ord == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil || body.IDMenu == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if body.Qty < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be at least 1.")
		}

		item, err := order.AddItem(database.DB, ord.ID, body.IDMenu, body.Qty)
		switch {
		case errors.Is(err, order.ErrOrderPaid):
			return fiber.NewError(fiber.StatusForbidden, "Order is already paid and cannot be modified.")
		case errors.Is(err, order.ErrMenuNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Menu item not found.")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create or update order item.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Item added to order successfully.",
			"data": fiber.Map{
				"item": item,
			},
		})
	}
}

// SubmitHandler reconciles the full desired line set against the order.
func SubmitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ord := tokenOrder(c)
		if ord == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		var body SubmitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}
		if body.Order.ID != ord.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Order ID in request body does not match Order ID in URL.")
		}
		for _, it := range body.Order.Item {
			if it.ID == 0 || it.Qty < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Each item needs a menu id and a quantity of at least 1.")
			}
		}

		lines := make([]order.Line, 0, len(body.Order.Item))
		for _, it := range body.Order.Item {
			lines = append(lines, order.Line{MenuID: it.ID, Qty: it.Qty})
		}

		updated, err := order.Reconcile(database.DB, ord.ID, lines, body.Order.Total, body.Order.Note)
		switch {
		case errors.Is(err, order.ErrOrderPaid):
			return fiber.NewError(fiber.StatusForbidden, "Order is already paid and cannot be modified.")
		case errors.Is(err, order.ErrMenuNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrTotalMismatch):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Order not found.")
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update order due to a database error.")
		}

		items := make([]fiber.Map, 0, len(updated.Items))
		for _, it := range updated.Items {
			items = append(items, fiber.Map{
				"id":     it.ID,
				"idMenu": it.MenuID,
				"qty":    it.Qty,
				"price":  it.Price,
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order updated successfully.",
			"order": fiber.Map{
				"id":     updated.ID,
				"note":   updated.Note,
				"total":  updated.Total,
				"isPaid": updated.IsPaid,
				"items":  items,
			},
		})
	}
}

// PaymentHandler marks the order paid. Re-paying is a harmless no-op.
func PaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ord := tokenOrder(c)
		if ord == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		updated, err := order.MarkPaid(database.DB, ord.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order paid successfully.",
			"data": fiber.Map{
				"item": orderSummary(updated),
			},
		})
	}
}

// CompleteHandler is the /customer alias for payment kept for the tablet UI.
func CompleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ord := tokenOrder(c)
		if ord == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		updated, err := order.MarkPaid(database.DB, ord.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order completed successfully.",
			"data": fiber.Map{
				"item": orderSummary(updated),
			},
		})
	}
}

// ItemStatusHandler returns the order with its lines and menu names so the
// table can watch delivery progress.
func ItemStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ord := tokenOrder(c)
		if ord == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		var full models.Order
		if err := database.DB.Preload("Items.Menu").First(&full, "id = ?", ord.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found.")
		}

		items := make([]fiber.Map, 0, len(full.Items))
		for _, it := range full.Items {
			items = append(items, fiber.Map{
				"id":          it.ID,
				"idMenu":      it.MenuID,
				"qty":         it.Qty,
				"price":       it.Price,
				"isDelivered": it.IsDelivered,
				"menu": fiber.Map{
					"name": it.Menu.Name,
				},
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"order": fiber.Map{
				"id":     full.ID,
				"isDone": full.IsDone,
				"isPaid": full.IsPaid,
				"total":  full.Total,
				"note":   full.Note,
				"item":   items,
			},
		})
	}
}
