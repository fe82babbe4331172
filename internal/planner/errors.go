package planner

import "errors"

// ── 查找类错误 ──

var (
	ErrModuleNotFound   = errors.New("模块不存在")
	ErrSemesterNotFound = errors.New("学期不存在")
	ErrPlanNotFound     = errors.New("方案不存在")
)

// ── 放置规则拒绝 ──

var (
	ErrStaleLocation         = errors.New("模块位置已变化，请刷新后重试")
	ErrFrozenModule          = errors.New("模块已冻结，无法移出当前学期")
	ErrSemesterTypeMismatch  = errors.New("该模块不在此类型学期开设")
	ErrHardnessLimitExceeded = errors.New("超出学期难度上限")
)

// ── 输入校验 ──

var (
	ErrInvalidModule   = errors.New("模块参数无效")
	ErrInvalidSettings = errors.New("设置参数无效")
	ErrInvalidLocation = errors.New("无效的位置")
)
