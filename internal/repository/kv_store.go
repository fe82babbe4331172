package repository

import "context"

// KVStore 键值存储接口：整值读写，键不存在时 Get 返回 pkgerrors.ErrKeyNotFound
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
