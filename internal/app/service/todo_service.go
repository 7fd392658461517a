package service

import (
	"context"
	"strings"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"

	"github.com/google/uuid"
)

type TodoService struct {
	todoRepo repository.TodoRepository
}

func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

type CreateTodoRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
}

// UpdateTodoRequest uses pointers so an omitted field keeps its previous
// value. There is no owner field; ownership is immutable.
type UpdateTodoRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Completed   *bool           `json:"completed"`
	Priority    *model.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	return s.todoRepo.FindByOwner(ctx, userID)
}

// Create forces the owner to the authenticated subject; any owner value in
// the request body is ignored.
func (s *TodoService) Create(ctx context.Context, userID string, req CreateTodoRequest) (*model.Todo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &common.ValidationError{Fields: map[string]string{"title": "title is required"}}
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, &common.ValidationError{Fields: map[string]string{"priority": "priority must be one of: low, medium, high"}}
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Completed:   false,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	return s.todoRepo.FindByIDAndOwner(ctx, todoID, userID)
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, req UpdateTodoRequest) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByIDAndOwner(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, &common.ValidationError{Fields: map[string]string{"title": "title is required"}}
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = strings.TrimSpace(*req.Description)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, &common.ValidationError{Fields: map[string]string{"priority": "priority must be one of: low, medium, high"}}
		}
		todo.Priority = *req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	return s.todoRepo.DeleteByIDAndOwner(ctx, todoID, userID)
}

// Toggle flips the completion flag. Both states stay reachable from each
// other; there is no terminal state.
func (s *TodoService) Toggle(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByIDAndOwner(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now().UTC()
	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}
