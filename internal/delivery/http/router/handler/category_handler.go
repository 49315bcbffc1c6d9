package handler

import (
	"log/slog"
	"net/http"
	"time"

	"todoapp/internal/delivery/http/middleware"
	"todoapp/internal/delivery/http/response"
	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CategoryHandlerParams holds dependencies for CategoryHandler, injected by Fx.
type CategoryHandlerParams struct {
	fx.In

	CategoryUC usecase.CategoryUsecase
	Logger     *slog.Logger
}

// CategoryHandler holds dependencies for category handlers.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
	logger     *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(params CategoryHandlerParams) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: params.CategoryUC,
		logger:     params.Logger,
	}
}

// CategoryRequest represents the request body for creating or updating a category.
type CategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,rrggbb"`
}

// CategoryResponse is the JSON view of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCategoryResponse(category *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
	}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	categories, err := h.categoryUC.List(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryResponse(category))
	}

	return response.Success(c, http.StatusOK, out, "")
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryUC.Create(c.Request().Context(), identity.ID, &usecase.CategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCategoryResponse(category), "Category created successfully")
}

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	categoryID, err := parseCategoryID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categoryUC.Update(c.Request().Context(), identity.ID, categoryID, &usecase.CategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newCategoryResponse(category), "Category updated successfully")
}

// Delete handles DELETE /categories/:id. Todos in the category are kept and detached.
func (h *CategoryHandler) Delete(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	categoryID, err := parseCategoryID(c)
	if err != nil {
		return err
	}

	if err := h.categoryUC.Delete(c.Request().Context(), identity.ID, categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

func parseCategoryID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrCategoryNotFound
	}

	return id, nil
}
