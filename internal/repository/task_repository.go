package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskly-be/internal/entities"
)

// TaskRepository defines the interface for task database operations.
// Every lookup by task ID is scoped to the owning user.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]*entities.Task, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*entities.Task, error)
	UpdatePartial(ctx context.Context, id, userID string, patch entities.TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, completed, due_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.DueAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.DueAt = task.DueAt.UTC()
	return &task, nil
}

// Create inserts a new task and returns the stored row
func (r *taskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, completed, due_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.DueAt.UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create task: %v", entities.ErrStorage, err)
	}

	return created, nil
}

// ListByOwner retrieves all tasks for a user, soonest due first
func (r *taskRepository) ListByOwner(ctx context.Context, userID string) ([]*entities.Task, error) {
	tasks := []*entities.Task{}
	if !isUUID(userID) {
		return tasks, nil
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY due_at ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list tasks: %v", entities.ErrStorage, err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan task: %v", entities.ErrStorage, err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating tasks: %v", entities.ErrStorage, err)
	}

	return tasks, nil
}

// FindByIDAndOwner returns the task only if it belongs to userID
func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*entities.Task, error) {
	if !isUUID(id) || !isUUID(userID) {
		return nil, entities.ErrNotFound
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find task: %v", entities.ErrStorage, err)
	}

	return task, nil
}

// UpdatePartial sets only the fields present in patch
func (r *taskRepository) UpdatePartial(ctx context.Context, id, userID string, patch entities.TaskPatch) (*entities.Task, error) {
	if !isUUID(id) || !isUUID(userID) {
		return nil, entities.ErrNotFound
	}

	var dueAt any
	if patch.DueAt != nil {
		dueAt = patch.DueAt.UTC()
	}

	query := `
		UPDATE tasks
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    completed   = COALESCE($5, completed),
		    due_at      = COALESCE($6, due_at),
		    updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query,
		id,
		userID,
		patch.Title,
		patch.Description,
		patch.Completed,
		dueAt,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update task: %v", entities.ErrStorage, err)
	}

	return task, nil
}

// Delete removes a task owned by userID
func (r *taskRepository) Delete(ctx context.Context, id, userID string) error {
	if !isUUID(id) || !isUUID(userID) {
		return entities.ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete task: %v", entities.ErrStorage, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %v", entities.ErrStorage, err)
	}

	if rowsAffected == 0 {
		return entities.ErrNotFound
	}

	return nil
}
