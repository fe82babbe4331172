package planner

import (
	"fmt"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// SemesterTypeAt 第 index（从 0 开始）个学期的类型，从 first 起交替
func SemesterTypeAt(first model.SemesterType, index int) model.SemesterType {
	if index%2 == 0 {
		return first
	}
	return first.Opposite()
}

// Layout 生成空学期槽位
// limits 长度不足时缺省值取 fallback
func Layout(count int, first model.SemesterType, limits []int, fallback int) []model.Semester {
	semesters := make([]model.Semester, count)
	for i := range semesters {
		limit := fallback
		if i < len(limits) && limits[i] > 0 {
			limit = limits[i]
		}
		semesters[i] = model.Semester{
			ID:            i + 1,
			Name:          fmt.Sprintf("Semester %d", i+1),
			Type:          SemesterTypeAt(first, i),
			HardnessLimit: limit,
			ModuleIDs:     []string{},
		}
	}
	return semesters
}

// DefaultLimits 全部取同一上限
func DefaultLimits(count, limit int) []int {
	limits := make([]int, count)
	for i := range limits {
		limits[i] = limit
	}
	return limits
}
