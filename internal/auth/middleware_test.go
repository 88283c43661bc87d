package auth

import (
	"net/http/httptest"
	"testing"

	"warung-backend/internal/config"
	"warung-backend/internal/database"
	"warung-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: testSecret,
		BaseURL:   testIssuer,
	}
}

func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
}

func newGuardedApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"success": false, "message": e.Message})
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Get("/staff", StaffRequired(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/order/:idOrder", OrderTokenRequired(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestStaffRequired(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newGuardedApp(cfg)

	user := models.User{Username: "kasir", PasswordHash: "x", Level: models.LevelAdmin, IsActive: true}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, _ := GenerateStaffToken(cfg.JWTSecret, cfg.BaseURL, &user)

	if code := get(t, app, "/staff", token); code != fiber.StatusOK {
		t.Errorf("valid token: %d, want 200", code)
	}
	if code := get(t, app, "/staff", ""); code != fiber.StatusUnauthorized {
		t.Errorf("missing header: %d, want 401", code)
	}

	// Token issued before a rename no longer matches (id, username) as a pair.
	if err := database.DB.Model(&user).Update("username", "kasir2").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}
	if code := get(t, app, "/staff", token); code != fiber.StatusUnauthorized {
		t.Errorf("stale username: %d, want 401", code)
	}

	// Deactivated accounts are locked out even with a fresh token.
	if err := database.DB.Model(&user).Updates(map[string]any{"username": "kasir", "is_active": false}).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if code := get(t, app, "/staff", token); code != fiber.StatusUnauthorized {
		t.Errorf("inactive user: %d, want 401", code)
	}
}

func TestOrderTokenScopedToOrder(t *testing.T) {
	setupDB(t)
	cfg := testConfig()
	app := newGuardedApp(cfg)

	branch := models.Branch{Name: "Cabang Pusat", IsOpen: true}
	if err := database.DB.Create(&branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	user := models.User{Username: "kasir", PasswordHash: "x", Level: models.LevelAdmin, IsActive: true, BranchID: &branch.ID}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	a := models.Order{ID: "order-a", Meja: 1, UserID: user.ID, BranchID: branch.ID}
	b := models.Order{ID: "order-b", Meja: 2, UserID: user.ID, BranchID: branch.ID}
	if err := database.DB.Create(&a).Error; err != nil {
		t.Fatalf("seed order a: %v", err)
	}
	if err := database.DB.Create(&b).Error; err != nil {
		t.Fatalf("seed order b: %v", err)
	}

	tokenA, _ := GenerateOrderToken(cfg.JWTSecret, cfg.BaseURL, a.ID)

	if code := get(t, app, "/order/order-a", tokenA); code != fiber.StatusOK {
		t.Errorf("own order: %d, want 200", code)
	}
	// A valid token for order A must never open order B's endpoints.
	if code := get(t, app, "/order/order-b", tokenA); code != fiber.StatusUnauthorized {
		t.Errorf("foreign order: %d, want 401", code)
	}

	// Token bound to an order that no longer exists.
	tokenGone, _ := GenerateOrderToken(cfg.JWTSecret, cfg.BaseURL, "order-gone")
	if code := get(t, app, "/order/order-gone", tokenGone); code != fiber.StatusUnauthorized {
		t.Errorf("deleted order: %d, want 401", code)
	}

	// A staff token is never a valid customer token.
	staffToken, _ := GenerateStaffToken(cfg.JWTSecret, cfg.BaseURL, &user)
	if code := get(t, app, "/order/order-a", staffToken); code != fiber.StatusUnauthorized {
		t.Errorf("staff token on order route: %d, want 401", code)
	}
}
