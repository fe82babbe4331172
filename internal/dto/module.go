package dto

// ── 课程模块 DTO ──

// CreateModuleRequest 新建模块请求
type CreateModuleRequest struct {
	Name     string   `json:"name"     binding:"required,min=1,max=200"`
	Offering []string `json:"offering" binding:"required,min=1,max=2,dive,oneof=Winter Summer"`
	Hardness int      `json:"hardness" binding:"required,min=1,max=3"`
	Credits  int      `json:"credits"  binding:"required,min=1,max=60"`
}

// UpdateModuleRequest 更新模块请求（部分更新）
type UpdateModuleRequest struct {
	Name     *string  `json:"name"     binding:"omitempty,min=1,max=200"`
	Offering []string `json:"offering" binding:"omitempty,min=1,max=2,dive,oneof=Winter Summer"`
	Hardness *int     `json:"hardness" binding:"omitempty,min=1,max=3"`
	Credits  *int     `json:"credits"  binding:"omitempty,min=1,max=60"`
}

// ModuleResponse 模块信息响应
type ModuleResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Offering   []string `json:"offering"`
	Hardness   int      `json:"hardness"`
	Credits    int      `json:"credits"`
	Frozen     bool     `json:"frozen"`
	SemesterID *int     `json:"semester_id"`
}
