package repository

import (
	"context"

	"github.com/Pooyash1998/studyplanner/pkg/redis"
)

type redisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore 基于 Redis 字符串键的键值存储
func NewRedisKVStore(client *redis.Client) KVStore {
	return &redisKVStore{client: client}
}

func (r *redisKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key)
}

func (r *redisKVStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value)
}

func (r *redisKVStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key)
}
