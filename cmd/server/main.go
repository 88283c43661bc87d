package main

import (
	"log"
	"strings"

	"warung-backend/internal/admin"
	"warung-backend/internal/auth"
	"warung-backend/internal/config"
	"warung-backend/internal/customer"
	"warung-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"message": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "An unexpected error occurred.",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Public auth
	app.Post("/auth/login", auth.LoginHandler(cfg))
	app.Post("/auth/logout", auth.LogoutHandler())

	// Staff routes
	adminRoutes := app.Group("/admin", auth.StaffRequired(cfg))
	adminRoutes.Get("/dashboard", admin.DashboardHandler())
	adminRoutes.Post("/cabang/buka", admin.OpenBranchHandler())
	adminRoutes.Post("/cabang/tutup", admin.CloseBranchHandler())
	adminRoutes.Post("/menu/add", admin.AddMenuHandler())
	adminRoutes.Get("/menu/getMenu", admin.GetMenuHandler())
	adminRoutes.Post("/order/create", admin.CreateOrderHandler(cfg))
	adminRoutes.Post("/order/completeItem", admin.CompleteItemHandler())
	adminRoutes.Post("/order/completeOrder", admin.CompleteOrderHandler())

	// Customer order-token routes. The literal /order/getMenu must be
	// registered before the :idOrder group so it wins the match.
	app.Get("/order/getMenu", auth.OrderTokenRequired(cfg), customer.MenuHandler())

	orderRoutes := app.Group("/order/:idOrder", auth.OrderTokenRequired(cfg))
	orderRoutes.Get("/getItemStatus", customer.ItemStatusHandler())
	orderRoutes.Post("/payment", customer.PaymentHandler())
	orderRoutes.Post("/submit", customer.SubmitHandler())

	customerRoutes := app.Group("/customer/:idOrder", auth.OrderTokenRequired(cfg))
	customerRoutes.Post("/add", customer.AddItemHandler())
	customerRoutes.Post("/complete", customer.CompleteHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
