package routes

import (
	"Backend-Formgenie-007/src/controllers"
	"Backend-Formgenie-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserRoutes กำหนดเส้นทางสำหรับ User API
func UserRoutes(app *fiber.App) {
	users := app.Group("/users")

	users.Post("/", controllers.CreateUser)
	users.Get("/me", middleware.AuthJWT, controllers.GetMe)
	users.Get("/me/quota", middleware.AuthJWT, controllers.GetMyQuota)
	users.Get("/me/finalized", middleware.AuthJWT, controllers.GetMyFinalizedForms)
}
