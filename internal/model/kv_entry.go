package model

import "gorm.io/datatypes"

// KVEntry 键值存储表，对应 kv_entries
// 每个关注点（模块、学期、设置、方案）一行，value 为整块 JSON
type KVEntry struct {
	Key   string         `gorm:"type:varchar(200);primaryKey" json:"key"`
	Value datatypes.JSON `gorm:"type:jsonb;not null"          json:"value"`
	BaseModel
}

// TableName 指定表名
func (KVEntry) TableName() string { return "kv_entries" }
