package errors

import "errors"

// ── 存储层通用错误 ──

// ErrKeyNotFound 键不存在（首次启动或从未写入）
var ErrKeyNotFound = errors.New("存储键不存在")

// ErrMalformedValue 存储值无法解析为预期结构
var ErrMalformedValue = errors.New("存储值格式错误")
