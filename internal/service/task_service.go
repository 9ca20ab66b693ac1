package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskly-be/internal/cache"
	"taskly-be/internal/entities"
	"taskly-be/internal/models"
	"taskly-be/internal/repository"
)

const taskListTTL = 5 * time.Minute

// TaskService defines the interface for task business logic.
// ownerID always comes from the verified token, never from request input.
type TaskService interface {
	Create(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*entities.Task, error)
	List(ctx context.Context, ownerID string) ([]*entities.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*entities.Task, error)
	Update(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache cache.Cache
}

// NewTaskService creates a new task service. cacheClient may be nil.
func NewTaskService(repo repository.TaskRepository, cacheClient cache.Cache) TaskService {
	svc := &taskService{repo: repo}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func taskListKey(ownerID string) string {
	return fmt.Sprintf("tasks:user:%s", ownerID)
}

// Create validates and stores a new task owned by ownerID
func (s *taskService) Create(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*entities.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entities.NewValidationError("Task title is required and must be a string.")
	}

	dueAt, ok := ParseDueAt(req.DueAt)
	if !ok {
		return nil, entities.NewValidationError("Valid due date is required.")
	}

	var description string
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	task, err := s.repo.Create(ctx, &entities.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		DueAt:       dueAt,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return task, nil
}

// List returns the owner's tasks ordered by due date, reading through the cache
func (s *taskService) List(ctx context.Context, ownerID string) ([]*entities.Task, error) {
	key := taskListKey(ownerID)

	if s.cache != nil {
		var cached []*entities.Task
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("Warning: failed to read task cache for %s: %v", ownerID, err)
		}
	}

	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, tasks, taskListTTL); err != nil {
			log.Printf("Warning: failed to cache tasks for %s: %v", ownerID, err)
		}
	}

	return tasks, nil
}

// Get returns a single task if ownerID owns it
func (s *taskService) Get(ctx context.Context, ownerID, taskID string) (*entities.Task, error) {
	return s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
}

// Update applies a partial update. An unparseable dueAt is ignored, not rejected.
func (s *taskService) Update(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*entities.Task, error) {
	if _, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID); err != nil {
		return nil, err
	}

	var patch entities.TaskPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, entities.NewValidationError("Task title cannot be empty.")
		}
		patch.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	patch.Completed = req.Completed
	if dueAt, ok := patchDueAt(req.DueAt); ok {
		patch.DueAt = &dueAt
	}

	task, err := s.repo.UpdatePartial(ctx, taskID, ownerID, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return task, nil
}

// Delete removes a task owned by ownerID
func (s *taskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID, ownerID); err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *taskService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, taskListKey(ownerID)); err != nil {
		log.Printf("Warning: failed to invalidate task cache for %s: %v", ownerID, err)
	}
}
