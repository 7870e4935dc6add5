package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores the blob under a single key
type Redis struct {
	name   string
	key    string
	client *redis.Client
	owned  bool
}

// NewRedis creates a slot on client. When owned is true Close also closes the client.
func NewRedis(name string, client *redis.Client, owned bool) *Redis {
	return &Redis{
		name:   name,
		key:    "slot:" + name,
		client: client,
		owned:  owned,
	}
}

func (r *Redis) Name() string { return r.name }

func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %s: %w", r.name, err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set slot %s: %w", r.name, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("delete slot %s: %w", r.name, err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.owned {
		return r.client.Close()
	}
	return nil
}
