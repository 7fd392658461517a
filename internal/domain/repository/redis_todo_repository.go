package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// Key layout: todos live at todo:{id} as JSON documents. Each owner has a
// sorted set todos:owner:{userID} of todo ids scored by creation time, which
// gives the newest-first listing without a scan.
type redisTodoRepository struct {
	rdb *redis.Client
}

func NewRedisTodoRepository(rdb *redis.Client) TodoRepository {
	return &redisTodoRepository{rdb: rdb}
}

func todoKey(id string) string { return "todo:" + id }

func ownerKey(ownerID string) string { return "todos:owner:" + ownerID }

func (r *redisTodoRepository) Create(ctx context.Context, t *model.Todo) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redisTodoRepository.Create: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, todoKey(t.ID), data, 0)
	pipe.ZAdd(ctx, ownerKey(t.UserID), redis.Z{
		Score:  float64(t.CreatedAt.UnixNano()),
		Member: t.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisTodoRepository.Create: %w", err)
	}
	return nil
}

func (r *redisTodoRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Todo, error) {
	ids, err := r.rdb.ZRevRange(ctx, ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisTodoRepository.FindByOwner: %w", err)
	}

	todos := []model.Todo{}
	for _, id := range ids {
		data, err := r.rdb.Get(ctx, todoKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // index entry outlived the document
			}
			return nil, fmt.Errorf("redisTodoRepository.FindByOwner: %w", err)
		}
		var t model.Todo
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("redisTodoRepository.FindByOwner: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *redisTodoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Todo, error) {
	data, err := r.rdb.Get(ctx, todoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisTodoRepository.FindByIDAndOwner: %w", err)
	}
	t := &model.Todo{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("redisTodoRepository.FindByIDAndOwner: %w", err)
	}
	// A non-owner gets the same answer as a missing id.
	if t.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (r *redisTodoRepository) Update(ctx context.Context, t *model.Todo) error {
	if _, err := r.FindByIDAndOwner(ctx, t.ID, t.UserID); err != nil {
		return err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redisTodoRepository.Update: %w", err)
	}
	if err := r.rdb.Set(ctx, todoKey(t.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redisTodoRepository.Update: %w", err)
	}
	return nil
}

func (r *redisTodoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	if _, err := r.FindByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, todoKey(id))
	pipe.ZRem(ctx, ownerKey(ownerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redisTodoRepository.DeleteByIDAndOwner: %w", err)
	}
	return nil
}
