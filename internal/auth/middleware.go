package auth

import (
	"log"
	"strings"

	"warung-backend/internal/config"
	"warung-backend/internal/database"
	"warung-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxStaffUserKey = "staff_user"
	CtxOrderKey     = "customer_order"
)

// Every token failure maps to this one message. Clients must not be able to
// tell an expired token from a forged one; the real cause goes to the log.
const invalidTokenMsg = "Invalid or expired token."

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization token is missing or malformed.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization token is missing or malformed.")
	}
	return parts[1], nil
}

// StaffRequired verifies a staff token and resolves the user row. The lookup
// matches id AND username so a token outlives neither a rename nor a
// deactivation of the account it was issued for.
func StaffRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := ParseStaffClaims(tokenStr, cfg.JWTSecret, cfg.BaseURL)
		if err != nil {
			log.Println("staff token rejected:", err)
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}

		var user models.User
		if err := database.DB.
			Where("id = ? AND username = ?", claims.IDUser, claims.Username).
			First(&user).Error; err != nil {
			log.Println("staff token user lookup failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}
		if !user.IsActive {
			log.Printf("staff token rejected: user %d is inactive", user.ID)
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}

		c.Locals(CtxStaffUserKey, &user)
		return c.Next()
	}
}

// OrderTokenRequired verifies a customer order token and resolves the order
// row. When the route carries an :idOrder param, the claim, the param and the
// looked-up row must all agree, so a valid token for order A cannot be
// replayed against order B's endpoints.
func OrderTokenRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := ParseOrderClaims(tokenStr, cfg.JWTSecret, cfg.BaseURL)
		if err != nil {
			log.Println("order token rejected:", err)
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}

		if idParam := c.Params("idOrder"); idParam != "" && idParam != claims.IDOrder {
			log.Printf("order token for %s replayed against %s", claims.IDOrder, idParam)
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid for this order.")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", claims.IDOrder).Error; err != nil {
			log.Println("order token order lookup failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}
		if order.ID != claims.IDOrder {
			return fiber.NewError(fiber.StatusUnauthorized, invalidTokenMsg)
		}

		c.Locals(CtxOrderKey, &order)
		return c.Next()
	}
}
