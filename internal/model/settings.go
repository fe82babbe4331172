package model

// Settings 用户设置
// 三项分别持久化：<ns>-first-semester-type、<ns>-hardness-limits、<ns>-api-key
type Settings struct {
	FirstSemesterType SemesterType `json:"firstSemesterType"`
	HardnessLimits    []int        `json:"hardnessLimits"`
	APIKey            string       `json:"-"`
}
