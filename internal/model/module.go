package model

// SemesterType 学期类型
type SemesterType string

const (
	SemesterWinter SemesterType = "Winter"
	SemesterSummer SemesterType = "Summer"
)

// Valid 是否为已知学期类型
func (t SemesterType) Valid() bool {
	return t == SemesterWinter || t == SemesterSummer
}

// Opposite 返回交替的另一种学期类型
func (t SemesterType) Opposite() SemesterType {
	if t == SemesterWinter {
		return SemesterSummer
	}
	return SemesterWinter
}

// 难度等级范围（三级制）
const (
	MinHardness = 1
	MaxHardness = 3
)

// Module 课程模块，持久化于 <ns>-modules
type Module struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Offering   []SemesterType `json:"offering"`
	Hardness   int            `json:"hardness"` // 1 | 2 | 3
	Credits    int            `json:"credits"`
	Frozen     bool           `json:"frozen"`
	SemesterID *int           `json:"semesterId"` // nil = 未分配
}

// OfferedIn 模块是否在指定类型学期开设
func (m *Module) OfferedIn(t SemesterType) bool {
	for _, o := range m.Offering {
		if o == t {
			return true
		}
	}
	return false
}
