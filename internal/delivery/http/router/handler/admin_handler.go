package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliveryctx "souq/internal/delivery/context"
	"souq/internal/delivery/http/response"
	"souq/internal/domain/entity"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin review and taxonomy handlers.
type AdminHandler struct {
	requests   usecase.RequestUsecase
	categories usecase.CategoryUsecase
	logger     *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(requests usecase.RequestUsecase, categories usecase.CategoryUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{requests: requests, categories: categories, logger: logger}
}

// ListRequests returns requests in any status for the review queue.
func (h *AdminHandler) ListRequests(c echo.Context) error {
	input := listInput(c)
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.RequestStatus(raw)
		input.Status = &status
	}

	page, err := h.requests.ListAll(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

type reviewRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"adminNotes"`
}

// ReviewRequest applies an approval or rejection decision.
func (h *AdminHandler) ReviewRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request id")
	}

	var input reviewRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.requests.Review(c.Request().Context(), id, usecase.ReviewRequestInput{
		Status:     entity.RequestStatus(input.Status),
		AdminNotes: input.AdminNotes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Decision applied"
	if output.AlreadyReviewed {
		message = "Request was already reviewed"
	}

	return response.Success(c, http.StatusOK, output, message)
}

// DeleteRequest removes any request.
func (h *AdminHandler) DeleteRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request id")
	}

	ctx := c.Request().Context()
	if err := h.requests.DeleteRequest(ctx, id, deliveryctx.GetAuthSession(ctx)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Request deleted")
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a root taxonomy node.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var input createCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	category, err := h.categories.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created")
}

type updateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// UpdateCategory edits a root taxonomy node.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	var input updateCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	category, err := h.categories.UpdateCategory(c.Request().Context(), id, usecase.UpdateCategoryInput{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    input.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated")
}

type createSubCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID int64  `json:"parentId" validate:"required"`
}

// CreateSubCategory1 adds a middle taxonomy node.
func (h *AdminHandler) CreateSubCategory1(c echo.Context) error {
	var input createSubCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subcategory input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	sub, err := h.categories.CreateSubCategory1(c.Request().Context(), usecase.CreateSubCategory1Input{
		Name:       input.Name,
		CategoryID: input.ParentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sub, "Subcategory created")
}

// CreateSubCategory2 adds a leaf taxonomy node.
func (h *AdminHandler) CreateSubCategory2(c echo.Context) error {
	var input createSubCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subcategory input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	sub, err := h.categories.CreateSubCategory2(c.Request().Context(), usecase.CreateSubCategory2Input{
		Name:           input.Name,
		SubCategory1ID: input.ParentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sub, "Subcategory created")
}
