package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pooyash1998/studyplanner/internal/model"
	pkgerrors "github.com/Pooyash1998/studyplanner/pkg/errors"
)

type postgresKVStore struct {
	db *gorm.DB
}

// NewPostgresKVStore 基于 kv_entries 表的键值存储
func NewPostgresKVStore(db *gorm.DB) KVStore {
	return &postgresKVStore{db: db}
}

func (r *postgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set 以 key 为冲突列执行 upsert
func (r *postgresKVStore) Set(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	entry := model.KVEntry{
		Key:   key,
		Value: datatypes.JSON(value),
		BaseModel: model.BaseModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *postgresKVStore) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntry{}).Error
}
