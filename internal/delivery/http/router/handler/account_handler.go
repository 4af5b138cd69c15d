// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliveryctx "souq/internal/delivery/context"
	"souq/internal/delivery/http/response"
	"souq/internal/domain/entity"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// AccountHandler holds dependencies for verification and session handlers.
type AccountHandler struct {
	verification usecase.VerificationUsecase
	logger       *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(verification usecase.VerificationUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{verification: verification, logger: logger}
}

type startLoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	CountryCode string `json:"countryCode" validate:"omitempty,max=5"`
}

// StartLogin handles the phone submission that opens a verification session.
func (h *AccountHandler) StartLogin(c echo.Context) error {
	var input startLoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid phone input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	output, err := h.verification.StartLogin(ctx, deliveryctx.GetSessionID(ctx), usecase.StartLoginInput{
		PhoneNumber: input.PhoneNumber,
		CountryCode: input.CountryCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Verification code sent")
}

type submitCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// SubmitCode handles a verification code submission.
func (h *AccountHandler) SubmitCode(c echo.Context) error {
	var input submitCodeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid code input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	output, err := h.verification.SubmitCode(ctx, deliveryctx.GetSessionID(ctx), usecase.SubmitCodeInput{
		Code: input.Code,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Code accepted")
}

type storeCategoryRequest struct {
	CategoryID     *int64 `json:"categoryId"`
	SubCategory1ID *int64 `json:"subCategory1Id"`
	SubCategory2ID *int64 `json:"subCategory2Id"`
}

type completeRegistrationRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	City        string `json:"city"`
	District    string `json:"district"`
	Location    string `json:"location"`
	Email       string `json:"email" validate:"omitempty,email"`
	Role        string `json:"role" validate:"required,oneof=buyer seller"`

	StoreName        string                 `json:"storeName"`
	StoreDescription string                 `json:"storeDescription"`
	WebsiteURL1      string                 `json:"websiteUrl1"`
	WebsiteURL2      string                 `json:"websiteUrl2"`
	WebsiteURL3      string                 `json:"websiteUrl3"`
	StoreCategories  []storeCategoryRequest `json:"storeCategories"`
}

// CompleteRegistration handles the profile submission after phone verification.
func (h *AccountHandler) CompleteRegistration(c echo.Context) error {
	var input completeRegistrationRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	var dateOfBirth time.Time
	if input.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, input.DateOfBirth)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Date of birth must be YYYY-MM-DD")
		}
		dateOfBirth = parsed
	}

	selections := make([]usecase.StoreCategorySelection, 0, len(input.StoreCategories))
	for _, sc := range input.StoreCategories {
		selections = append(selections, usecase.StoreCategorySelection{
			CategoryID:     sc.CategoryID,
			SubCategory1ID: sc.SubCategory1ID,
			SubCategory2ID: sc.SubCategory2ID,
		})
	}

	ctx := c.Request().Context()
	output, err := h.verification.CompleteRegistration(ctx, deliveryctx.GetSessionID(ctx), usecase.CompleteRegistrationInput{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      dateOfBirth,
		Gender:           input.Gender,
		City:             input.City,
		District:         input.District,
		Location:         input.Location,
		Email:            input.Email,
		Role:             entity.UserRole(input.Role),
		StoreName:        input.StoreName,
		StoreDescription: input.StoreDescription,
		WebsiteURL1:      input.WebsiteURL1,
		WebsiteURL2:      input.WebsiteURL2,
		WebsiteURL3:      input.WebsiteURL3,
		StoreCategories:  selections,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "Account created")
}

// ResendCode handles a request for a fresh verification code.
func (h *AccountHandler) ResendCode(c echo.Context) error {
	ctx := c.Request().Context()
	output, err := h.verification.ResendCode(ctx, deliveryctx.GetSessionID(ctx))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Verification code sent")
}

// Logout handles the session teardown.
func (h *AccountHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.verification.Logout(ctx, deliveryctx.GetSessionID(ctx)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the authenticated state of the current session.
func (h *AccountHandler) Me(c echo.Context) error {
	auth := deliveryctx.GetAuthSession(c.Request().Context())
	if auth == nil {
		return response.Unauthorized(c, "LOGIN_REQUIRED", "You must be logged in to perform this action")
	}

	return response.Success(c, http.StatusOK, auth, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
