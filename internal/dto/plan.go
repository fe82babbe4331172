package dto

// ── 学习方案 DTO ──

// PlanSemesterResponse 方案中的学期排布
type PlanSemesterResponse struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	HardnessLimit int      `json:"hardness_limit"`
	ModuleIDs     []string `json:"module_ids"`
}

// PlanResponse 方案快照
type PlanResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Score       float64                `json:"score"`
	Source      string                 `json:"source"`
	Semesters   []PlanSemesterResponse `json:"semesters"`
}

// PlansResponse 当前方案与备选方案
type PlansResponse struct {
	Current      *PlanResponse  `json:"current"`
	Alternatives []PlanResponse `json:"alternatives"`
}

// SavePlanRequest 保存当前排布为方案
type SavePlanRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ViolationResponse 方案规则违反项
type ViolationResponse struct {
	Kind       string `json:"kind"`
	SemesterID int    `json:"semester_id"`
	ModuleID   string `json:"module_id,omitempty"`
	Message    string `json:"message"`
}

// PlanCheckResponse 方案检查结果
type PlanCheckResponse struct {
	PlanID     string              `json:"plan_id"`
	Valid      bool                `json:"valid"`
	Violations []ViolationResponse `json:"violations"`
}

// SkippedAssignmentResponse 生成结果中被忽略的分配
type SkippedAssignmentResponse struct {
	Plan       string `json:"plan"`
	ModuleID   string `json:"module_id"`
	SemesterID *int   `json:"semester_id"`
	Reason     string `json:"reason"`
}

// GenerateResponse 生成结果：第一个方案已应用
type GenerateResponse struct {
	Plans   PlansResponse               `json:"plans"`
	Skipped []SkippedAssignmentResponse `json:"skipped"`
}
