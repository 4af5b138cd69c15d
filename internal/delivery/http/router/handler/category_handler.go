package handler

import (
	"net/http"
	"strconv"

	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for taxonomy handlers.
type CategoryHandler struct {
	categories usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(categories usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories returns active root categories.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categories.ListCategories(c.Request().Context(), true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// ListSubCategories1 returns the active children of one category.
func (h *CategoryHandler) ListSubCategories1(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	subs, err := h.categories.ListSubCategories1(c.Request().Context(), categoryID, true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subs, "")
}

// ListSubCategories2 returns the active children of one subcategory.
func (h *CategoryHandler) ListSubCategories2(c echo.Context) error {
	subCategory1ID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid subcategory id")
	}

	subs, err := h.categories.ListSubCategories2(c.Request().Context(), subCategory1ID, true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subs, "")
}

// GetCategoryTree returns the full taxonomy in one payload.
func (h *CategoryHandler) GetCategoryTree(c echo.Context) error {
	tree, err := h.categories.GetCategoryTree(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tree, "")
}
