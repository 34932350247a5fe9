package controllers

import (
	"context"
	"errors"
	"sync"
	"time"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services"
	"Backend-Formgenie-007/src/services/forms"
	"Backend-Formgenie-007/src/services/gforms"
	"Backend-Formgenie-007/src/services/prompt"
	"Backend-Formgenie-007/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

var (
	formSvc     *forms.Service
	formSvcOnce sync.Once
)

// formService wires the lifecycle service lazily so importing this package
// does not require a live MongoDB connection.
func formService() *forms.Service {
	formSvcOnce.Do(func() {
		formSvc = forms.NewService(forms.NewMongoStore(), prompt.NewEngine(), gforms.NewClient())
	})
	return formSvc
}

type promptRequest struct {
	Prompt string `json:"prompt" validate:"required,min=3"`
}

// GenerateForm godoc
// @Summary      Generate a form schema from a prompt
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body promptRequest true "Form description"
// @Success      201 {object} models.Form
// @Router       /forms/generate [post]
func GenerateForm(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user id in token")
	}

	var req promptRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "prompt is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	form, err := formService().Generate(ctx, userID, req.Prompt)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}

// ReviseForm godoc
// @Summary      Revise the latest schema of a form (max 3 times)
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id   path string        true "Form ID"
// @Param        body body promptRequest true "Revision instruction"
// @Success      200 {object} models.Form
// @Router       /forms/{id}/revise [post]
func ReviseForm(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	var req promptRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "prompt is required")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	form, err := formService().Revise(ctx, formID, req.Prompt)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(form)
}

// FinalizeForm godoc
// @Summary      Publish the latest schema as a Google form
// @Tags         forms
// @Produce      json
// @Param        id path string true "Form ID"
// @Success      201 {object} models.FinalizedForm
// @Router       /forms/{id}/finalize [post]
func FinalizeForm(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user id in token")
	}
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 120*time.Second)
	defer cancel()

	// Refresh the stored Google credential first so an expired access token
	// does not fail the publish halfway.
	user, err := services.GetUserByID(userID.Hex())
	if err != nil {
		return respondDomainError(c, err)
	}
	if _, err := services.RefreshGoogleToken(ctx, user); err != nil {
		return respondDomainError(c, err)
	}

	entry, err := formService().Finalize(ctx, formID, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetFormByID godoc
// @Summary      Get a form with its full schema history
// @Tags         forms
// @Produce      json
// @Param        id path string true "Form ID"
// @Success      200 {object} models.Form
// @Router       /forms/{id} [get]
func GetFormByID(c *fiber.Ctx) error {
	formID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid form id")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	form, err := formService().GetForm(ctx, formID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(form)
}

// GetMyForms godoc
// @Summary      List the caller's forms, newest first
// @Tags         forms
// @Produce      json
// @Success      200 {array} models.Form
// @Router       /forms [get]
func GetMyForms(c *fiber.Ctx) error {
	userID, err := authedUserID(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid user id in token")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	list, err := formService().UserForms(ctx, userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

func authedUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	raw, _ := c.Locals("userId").(string)
	return primitive.ObjectIDFromHex(raw)
}

// respondDomainError maps the error taxonomy to distinct statuses so the
// frontend can show an actionable message instead of a generic banner.
func respondDomainError(c *fiber.Ctx, err error) error {
	var sve *models.SchemaValidationError
	switch {
	case errors.As(err, &sve):
		return utils.HandleErrorCode(c, fiber.StatusBadRequest, "SCHEMA_INVALID", err.Error())
	case errors.Is(err, models.ErrFormNotFound), errors.Is(err, models.ErrUserNotFound):
		return utils.HandleErrorCode(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, models.ErrQuotaExceeded):
		return utils.HandleErrorCode(c, fiber.StatusTooManyRequests, "QUOTA_EXCEEDED", err.Error())
	case errors.Is(err, models.ErrRevisionLimitExceeded):
		return utils.HandleErrorCode(c, fiber.StatusConflict, "REVISION_LIMIT_EXCEEDED", err.Error())
	case errors.Is(err, models.ErrGoogleAuthRequired):
		return utils.HandleErrorCode(c, fiber.StatusUnauthorized, "GOOGLE_AUTH_REQUIRED", err.Error())
	case errors.Is(err, models.ErrGoogleAuthExpired):
		return utils.HandleErrorCode(c, fiber.StatusUnauthorized, "GOOGLE_AUTH_EXPIRED", err.Error())
	case errors.Is(err, models.ErrGooglePermissionDenied):
		return utils.HandleErrorCode(c, fiber.StatusForbidden, "GOOGLE_PERMISSION_DENIED", err.Error())
	case errors.Is(err, models.ErrFormsAPI):
		return utils.HandleErrorCode(c, fiber.StatusBadGateway, "FORMS_API_ERROR", err.Error())
	default:
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
}
