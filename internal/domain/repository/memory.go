package repository

import (
	"context"
	"sort"
	"sync"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
)

// In-memory implementations backing tests and local runs (TODO_STORE=memory).
// They hold the same contract as the postgres and redis repositories,
// including the owner+id scoping rule.

type memoryUserRepository struct {
	mu     sync.RWMutex
	byID   map[string]model.User
	byName map[string]string
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:   map[string]model.User{},
		byName: map[string]string{},
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[user.Username]; exists {
		return common.ErrDuplicateUser
	}
	r.byID[user.ID] = *user
	r.byName[user.Username] = user.ID
	return nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

type memoryTodoRepository struct {
	mu   sync.RWMutex
	byID map[string]model.Todo
}

func NewMemoryTodoRepository() TodoRepository {
	return &memoryTodoRepository{byID: map[string]model.Todo{}}
}

func (r *memoryTodoRepository) Create(ctx context.Context, t *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[t.ID] = *t
	return nil
}

func (r *memoryTodoRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	todos := []model.Todo{}
	for _, t := range r.byID {
		if t.UserID == ownerID {
			todos = append(todos, t)
		}
	}
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
	return todos, nil
}

func (r *memoryTodoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok || t.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

func (r *memoryTodoRepository) Update(ctx context.Context, t *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[t.ID]
	if !ok || existing.UserID != t.UserID {
		return common.ErrNotFound
	}
	r.byID[t.ID] = *t
	return nil
}

func (r *memoryTodoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.UserID != ownerID {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
