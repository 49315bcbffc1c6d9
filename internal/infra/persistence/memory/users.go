package memory

import (
	"context"

	"todoapp/internal/domain/entity"
	domainerrors "todoapp/internal/domain/errors"
	"todoapp/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	s *Store
}

// Create inserts the user. The email check and insert happen under one lock,
// so concurrent registrations of the same email yield exactly one success.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !emailPattern.MatchString(user.Email) {
		return domainerrors.ErrValidationFailed.WithDetails("email address is malformed")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.userByEmail[user.Email]; exists {
		return domainerrors.ErrDuplicateEmail
	}

	now := r.s.now()
	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.s.users[stored.ID] = stored
	r.s.userByEmail[stored.Email] = stored.ID

	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userByEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user := r.s.users[id]

	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}
