// error_utils.go
package utils

import (
	"Backend-Formgenie-007/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleErrorCode adds a machine-readable condition code so the frontend
// can branch on quota / revision-limit without string matching.
func HandleErrorCode(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
