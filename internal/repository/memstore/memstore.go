// Package memstore provides in-memory implementations of the repository
// interfaces. It is used by tests in place of PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskly-be/internal/entities"
	"taskly-be/internal/repository"
)

// UserStore is an in-memory repository.UserRepository
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]string
}

var _ repository.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, name, email, passwordHash string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, entities.ErrDuplicateUser
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byID[user.ID] = user
	s.byEmail[email] = user.ID

	u := *user
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, entities.ErrNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	u := *user
	return &u, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// TaskStore is an in-memory repository.TaskRepository
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*entities.Task
}

var _ repository.TaskRepository = (*TaskStore)(nil)

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*entities.Task)}
}

func (s *TaskStore) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *task
	stored.ID = uuid.NewString()
	stored.DueAt = stored.DueAt.UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.tasks[stored.ID] = &stored

	t := stored
	return &t, nil
}

func (s *TaskStore) ListByOwner(_ context.Context, userID string) ([]*entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []*entities.Task{}
	for _, task := range s.tasks {
		if task.UserID == userID {
			t := *task
			tasks = append(tasks, &t)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].DueAt.Equal(tasks[j].DueAt) {
			return tasks[i].DueAt.Before(tasks[j].DueAt)
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (s *TaskStore) FindByIDAndOwner(_ context.Context, id, userID string) (*entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, entities.ErrNotFound
	}
	t := *task
	return &t, nil
}

func (s *TaskStore) UpdatePartial(_ context.Context, id, userID string, patch entities.TaskPatch) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, entities.ErrNotFound
	}
	patch.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	t := *task
	return &t, nil
}

func (s *TaskStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return entities.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Count returns the number of stored tasks across all users.
func (s *TaskStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
