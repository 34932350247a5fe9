package controllers

import (
	"context"
	"time"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services"
	"Backend-Formgenie-007/src/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateUser - สมัครสมาชิกใหม่
func CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if user.Email == "" || user.Password == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "email and password are required")
	}

	if err := services.CreateUser(&user); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetMe - ดึงข้อมูลผู้ใช้ที่ login อยู่
func GetMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	user, err := services.GetUserByID(userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":              user.ID.Hex(),
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
		"googleConnected": user.GoogleToken != nil,
	})
}

// GetMyQuota godoc
// @Summary      Today's generation quota for the caller
// @Tags         users
// @Produce      json
// @Router       /users/me/quota [get]
func GetMyQuota(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user id in token")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	used, limit, err := formService().Quota(ctx, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"used":      used,
		"limit":     limit,
		"remaining": limit - used,
	})
}

// GetMyFinalizedForms godoc
// @Summary      The caller's publish log, oldest first
// @Tags         users
// @Produce      json
// @Success      200 {array} models.FinalizedForm
// @Router       /users/me/finalized [get]
func GetMyFinalizedForms(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user id in token")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	entries, err := formService().FinalizedForms(ctx, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	if entries == nil {
		entries = []models.FinalizedForm{}
	}
	return c.JSON(entries)
}
