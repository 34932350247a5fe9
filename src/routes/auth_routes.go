package routes

import (
	"Backend-Formgenie-007/src/controllers"
	"Backend-Formgenie-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes กำหนด route สำหรับ authentication
func AuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/login", controllers.LoginUser)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", middleware.AuthJWT, controllers.Logout)
	auth.Get("/google", controllers.GoogleLogin)
	auth.Get("/google/callback", controllers.GoogleCallback)
}
