package dto

// ── 学期与看板 DTO ──

// SemesterResponse 学期槽位响应（含模块明细与汇总）
type SemesterResponse struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	HardnessLimit int              `json:"hardness_limit"`
	HardnessSum   int              `json:"hardness_sum"`
	Credits       int              `json:"credits"`
	Modules       []ModuleResponse `json:"modules"`
}

// BoardResponse 看板整体状态
type BoardResponse struct {
	Modules    []ModuleResponse   `json:"modules"`
	Unassigned []ModuleResponse   `json:"unassigned"`
	Semesters  []SemesterResponse `json:"semesters"`
	Plans      PlansResponse      `json:"plans"`
}

// MoveRequest 拖放请求
// from/to 取值为 "unassigned" 或学期编号；to 为空表示拖放取消
type MoveRequest struct {
	ModuleID string `json:"module_id" binding:"required"`
	From     string `json:"from"      binding:"required"`
	To       string `json:"to"`
	Index    int    `json:"index"     binding:"min=0"`
}

// MoveResponse 拖放结果
type MoveResponse struct {
	Changed bool           `json:"changed"`
	Module  ModuleResponse `json:"module"`
}
