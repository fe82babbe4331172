package dto

// ── 用户设置 DTO ──

// UpdateSettingsRequest 更新设置请求（部分更新）
type UpdateSettingsRequest struct {
	FirstSemesterType *string `json:"first_semester_type" binding:"omitempty,oneof=Winter Summer"`
	HardnessLimits    []int   `json:"hardness_limits"     binding:"omitempty,dive,min=1,max=100"`
	APIKey            *string `json:"api_key"             binding:"omitempty,max=500"`
}

// SettingsResponse 设置响应；密钥只返回掩码
type SettingsResponse struct {
	FirstSemesterType string `json:"first_semester_type"`
	HardnessLimits    []int  `json:"hardness_limits"`
	HasAPIKey         bool   `json:"has_api_key"`
	APIKeyMasked      string `json:"api_key_masked,omitempty"`
}
