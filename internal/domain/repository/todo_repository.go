package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
)

// TodoRepository scopes every single-record operation by owner as well as id,
// so "someone else's todo" and "no such todo" are indistinguishable to callers.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.Todo, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

type pgTodoRepository struct {
	db *sql.DB
}

func NewPgTodoRepository(db *sql.DB) TodoRepository {
	return &pgTodoRepository{db: db}
}

func (r *pgTodoRepository) Create(ctx context.Context, t *model.Todo) error {
	query := `INSERT INTO todos (id, user_id, title, description, completed, priority, due_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTodoRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	query := `SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
	          FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgTodoRepository.FindByOwner: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgTodoRepository.FindByOwner: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTodoRepository.FindByOwner: %w", err)
	}
	return todos, nil
}

func (r *pgTodoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	query := `SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
	          FROM todos WHERE id = $1 AND user_id = $2`
	t := &model.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.FindByIDAndOwner: %w", err)
	}
	return t, nil
}

func (r *pgTodoRepository) Update(ctx context.Context, t *model.Todo) error {
	query := `UPDATE todos SET
	            title = $1, description = $2, completed = $3, priority = $4,
	            due_date = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.Completed, t.Priority, t.DueDate, t.UpdatedAt, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTodoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.DeleteByIDAndOwner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTodoRepository.DeleteByIDAndOwner: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
