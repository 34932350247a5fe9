package routes

import (
	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App) {
	AuthRoutes(app)
	UserRoutes(app)
	FormRoutes(app)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
