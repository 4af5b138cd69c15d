package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	deliveryctx "souq/internal/delivery/context"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	profiles usecase.ProfileUsecase
	logger   *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profiles usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetProfile returns the logged-in user's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	output, err := h.profiles.GetProfile(ctx, auth.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

type updateProfileRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	City        string `json:"city"`
	District    string `json:"district"`
	Location    string `json:"location"`
	Email       string `json:"email" validate:"omitempty,email"`

	StoreName        string `json:"storeName"`
	StoreDescription string `json:"storeDescription"`
	WebsiteURL1      string `json:"websiteUrl1"`
	WebsiteURL2      string `json:"websiteUrl2"`
	WebsiteURL3      string `json:"websiteUrl3"`
}

// UpdateProfile handles profile edits.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
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

	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	user, err := h.profiles.UpdateProfile(ctx, auth.UserID, usecase.UpdateProfileInput{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      dateOfBirth,
		Gender:           input.Gender,
		City:             input.City,
		District:         input.District,
		Location:         input.Location,
		Email:            input.Email,
		StoreName:        input.StoreName,
		StoreDescription: input.StoreDescription,
		WebsiteURL1:      input.WebsiteURL1,
		WebsiteURL2:      input.WebsiteURL2,
		WebsiteURL3:      input.WebsiteURL3,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated")
}

// UploadProfileImage handles one multipart image upload.
func (h *ProfileHandler) UploadProfileImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "An image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	user, err := h.profiles.UploadProfileImage(ctx, auth.UserID, usecase.ImageUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Payload:  file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile image updated")
}

// AddStoreCategory declares a new specialty edge for the logged-in seller.
func (h *ProfileHandler) AddStoreCategory(c echo.Context) error {
	var input storeCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store category input")
	}

	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	edge, err := h.profiles.AddStoreCategory(ctx, auth.UserID, usecase.StoreCategorySelection{
		CategoryID:     input.CategoryID,
		SubCategory1ID: input.SubCategory1ID,
		SubCategory2ID: input.SubCategory2ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, edge, "Store category added")
}

// RemoveStoreCategory drops one of the logged-in seller's specialty edges.
func (h *ProfileHandler) RemoveStoreCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store category id")
	}

	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	if err := h.profiles.RemoveStoreCategory(ctx, auth.UserID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Store category removed")
}
