package model

// Semester 学期槽位，持久化于 <ns>-semesters
// ModuleIDs 仅保存模块引用，模块属性以模块注册表为准
type Semester struct {
	ID            int          `json:"id"` // 1..N
	Name          string       `json:"name"`
	Type          SemesterType `json:"type"`
	HardnessLimit int          `json:"hardnessLimit"`
	ModuleIDs     []string     `json:"moduleIds"`
}
