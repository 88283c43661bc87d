package auth

import (
	"log"
	"strings"
	"time"

	"warung-backend/internal/config"
	"warung-backend/internal/database"
	"warung-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password are required.")
		}

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials.")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials.")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials.")
		}

		token, err := GenerateStaffToken(cfg.JWTSecret, cfg.BaseURL, &user)
		if err != nil {
			log.Println("token signing failed:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "An unexpected error occurred.")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login successful!",
			"token":   token,
		})
	}
}

// LogoutHandler only clears the auth cookie; bearer tokens are stateless and
// simply expire.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "auth_token",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
			Path:     "/",
		})

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Logout successful.",
		})
	}
}
