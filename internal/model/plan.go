package model

// 方案来源
const (
	PlanSourceGenerated = "generated"
	PlanSourceSaved     = "saved"
)

// Plan 学习方案快照，创建后不可变
// 持久化于 <ns>-current-plan 与 <ns>-alternative-plans
type Plan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Semesters   []Semester `json:"semesters"`
	Score       float64    `json:"score"`
	Source      string     `json:"source"`
}
