package routes

import (
	"Backend-Formgenie-007/src/controllers"
	"Backend-Formgenie-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// FormRoutes กำหนด route สำหรับ form lifecycle
func FormRoutes(app *fiber.App) {
	forms := app.Group("/forms", middleware.AuthJWT)

	forms.Get("/", controllers.GetMyForms)
	forms.Post("/generate", controllers.GenerateForm)
	forms.Get("/:id", controllers.GetFormByID)
	forms.Post("/:id/revise", controllers.ReviseForm)
	forms.Post("/:id/finalize", controllers.FinalizeForm)
}
