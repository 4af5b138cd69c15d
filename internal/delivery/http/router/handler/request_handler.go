package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	deliveryctx "souq/internal/delivery/context"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RequestHandler holds dependencies for sourcing-request handlers.
type RequestHandler struct {
	requests usecase.RequestUsecase
	logger   *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler, injected by Fx.
func NewRequestHandler(requests usecase.RequestUsecase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{requests: requests, logger: logger}
}

// CreateRequest handles the multipart form that posts a sourcing request.
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	title := c.FormValue("title")
	description := c.FormValue("description")

	categoryID, err := strconv.ParseInt(c.FormValue("categoryId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "A category is required")
	}
	subCategory1ID, err := optionalID(c.FormValue("subCategory1Id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid subcategory id")
	}
	subCategory2ID, err := optionalID(c.FormValue("subCategory2Id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid subcategory id")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Expected a multipart form")
	}

	files := form.File["images"]
	uploads := make([]usecase.ImageUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return errors.Wrap(err, "failed to open uploaded image")
		}
		opened = append(opened, file)
		uploads = append(uploads, usecase.ImageUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Payload:  file,
		})
	}

	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	request, err := h.requests.CreateRequest(ctx, auth.UserID, usecase.CreateRequestInput{
		Title:          title,
		Description:    description,
		CategoryID:     categoryID,
		SubCategory1ID: subCategory1ID,
		SubCategory2ID: subCategory2ID,
		City:           c.FormValue("city"),
		District:       c.FormValue("district"),
		Location:       c.FormValue("location"),
		Images:         uploads,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Request submitted for review")
}

// GetRequest returns one request with its images and owner.
func (h *RequestHandler) GetRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request id")
	}

	ctx := c.Request().Context()

	request, err := h.requests.GetRequest(ctx, id, deliveryctx.GetAuthSession(ctx))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "")
}

// ListApproved returns the public feed of approved requests.
func (h *RequestHandler) ListApproved(c echo.Context) error {
	page, err := h.requests.ListApproved(c.Request().Context(), listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// ListMine returns the logged-in user's own requests.
func (h *RequestHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	auth := deliveryctx.GetAuthSession(ctx)

	page, err := h.requests.ListMine(ctx, auth.UserID, listInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// DeleteRequest removes one of the caller's requests.
func (h *RequestHandler) DeleteRequest(c echo.Context) error {
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

// listInput reads the shared listing query parameters.
func listInput(c echo.Context) usecase.ListRequestsInput {
	input := usecase.ListRequestsInput{
		Search: c.QueryParam("search"),
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		input.Page = page
	}
	if pageSize, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		input.PageSize = pageSize
	}
	if categoryID, err := optionalID(c.QueryParam("categoryId")); err == nil {
		input.CategoryID = categoryID
	}

	return input
}

// optionalID parses a numeric form/query value that may be absent.
func optionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
