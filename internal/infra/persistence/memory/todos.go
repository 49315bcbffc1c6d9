package memory

import (
	"context"
	"slices"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"

	"github.com/google/uuid"
)

type todoRepository struct {
	s *Store
}

func (r *todoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]todoRecord, 0)
	for _, rec := range r.s.todos {
		if rec.todo.UserID == userID {
			records = append(records, rec)
		}
	}

	// Newest first; insertion order breaks timestamp ties.
	slices.SortFunc(records, func(a, b todoRecord) int {
		if c := b.todo.CreatedAt.Compare(a.todo.CreatedAt); c != 0 {
			return c
		}
		if a.seq > b.seq {
			return -1
		}

		return 1
	})

	todos := make([]*entity.Todo, 0, len(records))
	for _, rec := range records {
		todos = append(todos, r.s.withCategory(rec.todo))
	}

	return todos, nil
}

func (r *todoRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.todos[id]
	if !ok || rec.todo.UserID != userID {
		return nil, repository.ErrTodoNotFound
	}

	return r.s.withCategory(rec.todo), nil
}

func (r *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !todo.Priority.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("todo violates a column constraint")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkCategoryRef(todo); err != nil {
		return err
	}

	now := r.s.now()
	stored := *todo
	stored.ID = uuid.New()
	stored.Category = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.s.seq++
	r.s.todos[stored.ID] = todoRecord{todo: stored, seq: r.s.seq}

	todo.ID = stored.ID
	todo.CreatedAt = stored.CreatedAt
	todo.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !todo.Priority.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("todo violates a column constraint")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.todos[todo.ID]
	if !ok || rec.todo.UserID != todo.UserID {
		return repository.ErrTodoNotFound
	}
	if err := r.s.checkCategoryRef(todo); err != nil {
		return err
	}

	stored := *todo
	stored.Category = nil
	stored.CreatedAt = rec.todo.CreatedAt
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = r.s.now()
	}
	rec.todo = stored
	r.s.todos[todo.ID] = rec

	todo.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *todoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.todos[id]
	if !ok || rec.todo.UserID != userID {
		return repository.ErrTodoNotFound
	}
	delete(r.s.todos, id)

	return nil
}

func (r *todoRepository) ClearCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var changed int64
	for id, rec := range r.s.todos {
		if rec.todo.UserID != userID || rec.todo.CategoryID == nil || *rec.todo.CategoryID != categoryID {
			continue
		}
		rec.todo.CategoryID = nil
		r.s.todos[id] = rec
		changed++
	}

	return changed, nil
}

// checkCategoryRef mirrors the todos.category_id foreign key. Callers hold s.mu.
func (s *Store) checkCategoryRef(todo *entity.Todo) error {
	if todo.CategoryID == nil {
		return nil
	}
	if _, ok := s.categories[*todo.CategoryID]; !ok {
		return domainerrors.ErrCategoryNotFound
	}

	return nil
}

// withCategory returns a copy of t with the category reference attached. Callers hold s.mu.
func (s *Store) withCategory(t entity.Todo) *entity.Todo {
	t.Category = nil
	if t.CategoryID != nil {
		if c, ok := s.categories[*t.CategoryID]; ok {
			t.Category = &entity.CategoryRef{Name: c.Name, Color: c.Color}
		}
	}

	return &t
}
