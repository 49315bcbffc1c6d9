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

const dateLayout = "2006-01-02"

// TodoHandlerParams holds dependencies for TodoHandler, injected by Fx.
type TodoHandlerParams struct {
	fx.In

	TodoUC usecase.TodoUsecase
	Logger *slog.Logger
}

// TodoHandler holds dependencies for todo handlers.
type TodoHandler struct {
	todoUC usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler.
func NewTodoHandler(params TodoHandlerParams) *TodoHandler {
	return &TodoHandler{
		todoUC: params.TodoUC,
		logger: params.Logger,
	}
}

// TodoRequest represents the request body for creating or updating a todo.
type TodoRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" validate:"omitempty,priority"`
	DueDate     string  `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
}

// ListTodosQuery carries the list filters.
type ListTodosQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status" validate:"omitempty,oneof=all completed pending"`
	Priority string `query:"priority" validate:"omitempty,oneof=all low medium high"`
}

// TodoResponse is the JSON view of a todo.
type TodoResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Completed   bool                `json:"completed"`
	Priority    entity.Priority     `json:"priority"`
	DueDate     *string             `json:"dueDate"`
	CategoryID  *uuid.UUID          `json:"categoryId"`
	Category    *entity.CategoryRef `json:"category"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func newTodoResponse(t *entity.Todo) *TodoResponse {
	resp := &TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		CategoryID:  t.CategoryID,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}

	return resp
}

func newTodoResponses(todos []*entity.Todo) []*TodoResponse {
	out := make([]*TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, newTodoResponse(t))
	}

	return out
}

// List handles GET /todos.
func (h *TodoHandler) List(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var query ListTodosQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list filters")
	}
	if err := c.Validate(&query); err != nil {
		return err
	}

	todos, err := h.todoUC.List(c.Request().Context(), identity.ID, entity.TodoFilter{
		Search:   query.Search,
		Status:   entity.StatusFilter(query.Status),
		Priority: query.Priority,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTodoResponses(todos), "")
}

// Stats handles GET /todos/stats.
func (h *TodoHandler) Stats(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.todoUC.Stats(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	todo, err := h.todoUC.Create(c.Request().Context(), identity.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newTodoResponse(todo), "Todo created successfully")
}

// Update handles PUT /todos/:id.
func (h *TodoHandler) Update(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := parseTodoID(c)
	if err != nil {
		return err
	}

	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	todo, err := h.todoUC.Update(c.Request().Context(), identity.ID, todoID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTodoResponse(todo), "Todo updated successfully")
}

// ToggleComplete handles PATCH /todos/:id/toggle.
func (h *TodoHandler) ToggleComplete(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := parseTodoID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoUC.ToggleComplete(c.Request().Context(), identity.ID, todoID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTodoResponse(todo), "")
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandler) Delete(c echo.Context) error {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}
	todoID, err := parseTodoID(c)
	if err != nil {
		return err
	}

	if err := h.todoUC.Delete(c.Request().Context(), identity.ID, todoID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Todo deleted successfully")
}

func (h *TodoHandler) bindInput(c echo.Context) (*usecase.TodoInput, error) {
	var req TodoRequest
	if err := c.Bind(&req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("Invalid todo input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	input := &usecase.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("dueDate must be YYYY-MM-DD")
		}
		input.DueDate = &due
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("categoryId must be a UUID")
		}
		input.CategoryID = &categoryID
	}

	return input, nil
}

// A malformed id cannot name an existing todo.
func parseTodoID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrTodoNotFound
	}

	return id, nil
}
