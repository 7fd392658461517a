package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// Key layout: users live at user:{id} as JSON documents, with a
// user:name:{username} index entry enforcing username uniqueness via SETNX.
type redisUserRepository struct {
	rdb *redis.Client
}

func NewRedisUserRepository(rdb *redis.Client) UserRepository {
	return &redisUserRepository{rdb: rdb}
}

func userKey(id string) string { return "user:" + id }

func usernameKey(username string) string { return "user:name:" + username }

// userDoc is the stored form. model.User hides the password hash from JSON,
// so the document needs its own field for it.
type userDoc struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (d *userDoc) toModel() *model.User {
	return &model.User{
		ID:             d.ID,
		Username:       d.Username,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *redisUserRepository) Create(ctx context.Context, user *model.User) error {
	ok, err := r.rdb.SetNX(ctx, usernameKey(user.Username), user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("redisUserRepository.Create: %w", err)
	}
	if !ok {
		return common.ErrDuplicateUser
	}

	doc := userDoc{
		ID:             user.ID,
		Username:       user.Username,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("redisUserRepository.Create: %w", err)
	}
	if err := r.rdb.Set(ctx, userKey(user.ID), data, 0).Err(); err != nil {
		// Roll back the index entry so the username is not burned forever.
		r.rdb.Del(ctx, usernameKey(user.Username))
		return fmt.Errorf("redisUserRepository.Create: %w", err)
	}
	return nil
}

func (r *redisUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := r.rdb.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisUserRepository.FindByUsername: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *redisUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	data, err := r.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisUserRepository.FindByID: %w", err)
	}
	doc := &userDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("redisUserRepository.FindByID: %w", err)
	}
	return doc.toModel(), nil
}
