package service

import "github.com/Pooyash1998/studyplanner/internal/planner"

// ── 看板规则错误（由 planner 定义，Handler 统一经 service 引用） ──

var (
	ErrModuleNotFound        = planner.ErrModuleNotFound
	ErrSemesterNotFound      = planner.ErrSemesterNotFound
	ErrPlanNotFound          = planner.ErrPlanNotFound
	ErrStaleLocation         = planner.ErrStaleLocation
	ErrFrozenModule          = planner.ErrFrozenModule
	ErrSemesterTypeMismatch  = planner.ErrSemesterTypeMismatch
	ErrHardnessLimitExceeded = planner.ErrHardnessLimitExceeded
	ErrInvalidModule         = planner.ErrInvalidModule
	ErrInvalidSettings       = planner.ErrInvalidSettings
	ErrInvalidLocation       = planner.ErrInvalidLocation
)
