package controllers

import (
	"fmt"
	"os"
	"time"

	"Backend-Formgenie-007/src/services"
	"Backend-Formgenie-007/src/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
)

const refreshTokenTTL = 7 * 24 * time.Hour

// LoginUser - email/password login
func LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
			"code":  "MISSING_CREDENTIALS",
		})
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
			"code":  "INVALID_CREDENTIALS",
		})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token generation failed",
			"code":  "TOKEN_ERROR",
		})
	}

	refreshToken := utils.GenerateRandomString(64)
	if err := utils.StoreRefreshToken(user.ID.Hex(), refreshToken, refreshTokenTTL); err != nil {
		fmt.Println("⚠️ failed to store refresh token:", err)
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// RefreshToken - trade a valid refresh token for a fresh JWT
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		UserID       string `json:"userId"`
		RefreshToken string `json:"refreshToken"`
	}

	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId and refreshToken are required",
			"code":  "INVALID_REQUEST",
		})
	}

	ok, err := utils.ValidateRefreshToken(req.UserID, req.RefreshToken)
	if err != nil || !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
			"code":  "INVALID_REFRESH_TOKEN",
		})
	}

	user, err := services.GetUserByID(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unknown user",
			"code":  "INVALID_REFRESH_TOKEN",
		})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token generation failed",
			"code":  "TOKEN_ERROR",
		})
	}
	return c.JSON(fiber.Map{"token": token})
}

// Logout - drop the refresh token
func Logout(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	if userID != "" {
		_ = utils.DeleteRefreshToken(userID)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GoogleLogin - เริ่มต้น Google OAuth flow
func GoogleLogin(c *fiber.Ctx) error {
	config := services.GetGoogleOAuthConfig()

	state := utils.GenerateRandomString(32)
	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	return c.JSON(fiber.Map{
		"url": url,
	})
}

// GoogleCallback - handle Google OAuth callback
func GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	errorParam := c.Query("error")
	frontendURL := os.Getenv("FRONTEND_URL")

	if errorParam != "" {
		fmt.Printf("❌ Google OAuth error: %s\n", errorParam)
		return c.Redirect(fmt.Sprintf("%s/auth/callback?error=%s", frontendURL, errorParam))
	}
	if code == "" {
		return c.Redirect(fmt.Sprintf("%s/auth/callback?error=missing_code", frontendURL))
	}

	user, err := services.ProcessGoogleLogin(code)
	if err != nil {
		fmt.Printf("❌ Google login failed: %v\n", err)
		return c.Redirect(fmt.Sprintf("%s/auth/callback?error=login_failed", frontendURL))
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.Redirect(fmt.Sprintf("%s/auth/callback?error=token_error", frontendURL))
	}

	fmt.Printf("✅ Google login: %s\n", user.Email)
	return c.Redirect(fmt.Sprintf("%s/auth/callback?token=%s", frontendURL, token))
}
