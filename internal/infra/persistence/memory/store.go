// Package memory provides an in-process implementation of the repository interfaces.
// It backs local runs with store.driver "memory" and the usecase tests.
package memory

import (
	"context"
	"maps"
	"regexp"
	"sync"
	"time"

	"todoapp/internal/domain/entity"
	"todoapp/internal/domain/repository"

	"github.com/google/uuid"
)

// Mirrors the users_email_format CHECK constraint of the SQL schema.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type todoRecord struct {
	todo entity.Todo
	seq  uint64
}

// Store holds every record in maps guarded by a single mutex.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users       map[uuid.UUID]entity.User
	userByEmail map[string]uuid.UUID
	todos       map[uuid.UUID]todoRecord
	categories  map[uuid.UUID]entity.Category
	seq         uint64
	now         func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]entity.User),
		userByEmail: make(map[string]uuid.UUID),
		todos:       make(map[uuid.UUID]todoRecord),
		categories:  make(map[uuid.UUID]entity.Category),
		now:         time.Now,
	}
}

// UserRepo returns the user repository view of the store.
func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{s: s}
}

// TodoRepo returns the todo repository view of the store.
func (s *Store) TodoRepo() repository.TodoRepository {
	return &todoRepository{s: s}
}

// CategoryRepo returns the category repository view of the store.
func (s *Store) CategoryRepo() repository.CategoryRepository {
	return &categoryRepository{s: s}
}

// TransactionManager returns a manager whose transactions run against this store.
func (s *Store) TransactionManager() repository.TransactionManager {
	return &transactionManager{s: s}
}

type snapshot struct {
	users       map[uuid.UUID]entity.User
	userByEmail map[string]uuid.UUID
	todos       map[uuid.UUID]todoRecord
	categories  map[uuid.UUID]entity.Category
	seq         uint64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		users:       maps.Clone(s.users),
		userByEmail: maps.Clone(s.userByEmail),
		todos:       maps.Clone(s.todos),
		categories:  maps.Clone(s.categories),
		seq:         s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.userByEmail = snap.userByEmail
	s.todos = snap.todos
	s.categories = snap.categories
	s.seq = snap.seq
}

// transactionManager serializes transactions and rolls back by restoring a
// snapshot taken before fn runs. Writes made outside a transaction while one
// is in flight are lost on rollback.
type transactionManager struct {
	s *Store
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.s.txMu.Lock()
	defer tm.s.txMu.Unlock()

	snap := tm.s.snapshot()
	committed := false
	defer func() {
		if !committed {
			tm.s.restore(snap)
		}
	}()

	if err := fn(tm.s); err != nil {
		return err
	}
	committed = true

	return nil
}
