package admin

import (
	"warung-backend/internal/auth"
	"warung-backend/internal/database"
	"warung-backend/internal/models"
	"warung-backend/internal/order"

	"github.com/gofiber/fiber/v2"
)

type BranchResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	IsOpen     bool   `json:"isOpen"`
	LastOpened string `json:"lastOpened,omitempty"`
}

func branchResponse(b *models.Branch) BranchResponse {
	res := BranchResponse{
		ID:     b.ID,
		Name:   b.Name,
		IsOpen: b.IsOpen,
	}
	if b.LastOpened != nil {
		res.LastOpened = b.LastOpened.Format("2006-01-02 15:04:05")
	}
	return res
}

// staffUser pulls the user resolved by the auth middleware out of locals.
func staffUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(auth.CtxStaffUserKey).(*models.User)
	return user
}

func OpenBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := staffUser(c)
		if user == nil || user.BranchID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bad request.")
		}

		branch, err := order.OpenBranch(database.DB, *user.BranchID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bad request.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Berhasil membuka cabang.",
			"data":    branchResponse(branch),
		})
	}
}

func CloseBranchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := staffUser(c)
		if user == nil || user.BranchID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bad request.")
		}

		branch, err := order.CloseBranch(database.DB, *user.BranchID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bad request.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Berhasil menutup cabang.",
			"data":    branchResponse(branch),
		})
	}
}
