package planner

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// Scorer 本地方案评分：按配置的表达式计算 0-100 分
//
// 可用变量：
//
//	total_credits       已放置模块学分和
//	placed_modules      已放置模块数
//	unassigned_modules  未放置模块数
//	hardness_spread     各学期难度和的最大值减最小值
//	over_budget         超过难度上限的学期数
//	early_credits       前半数学期的学分和
type Scorer struct {
	expr *govaluate.EvaluableExpression
}

// NewScorer 编译评分表达式
func NewScorer(formula string) (*Scorer, error) {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("评分表达式无法解析: %w", err)
	}
	return &Scorer{expr: expr}, nil
}

// Metrics 计算排布 semesters 在当前模块注册表下的评分变量
func Metrics(b *Board, semesters []model.Semester) map[string]interface{} {
	var totalCredits, placed, overBudget, early int
	minSum, maxSum := 0, 0
	seen := make(map[string]bool)

	for i, s := range semesters {
		sum := 0
		for _, id := range s.ModuleIDs {
			m, ok := b.Module(id)
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			sum += m.Hardness
			totalCredits += m.Credits
			placed++
			if i < (len(semesters)+1)/2 {
				early += m.Credits
			}
		}
		if i == 0 || sum < minSum {
			minSum = sum
		}
		if i == 0 || sum > maxSum {
			maxSum = sum
		}
		limit := s.HardnessLimit
		if live, ok := b.Semester(s.ID); ok {
			limit = live.HardnessLimit
		}
		if sum > limit {
			overBudget++
		}
	}

	return map[string]interface{}{
		"total_credits":      float64(totalCredits),
		"placed_modules":     float64(placed),
		"unassigned_modules": float64(len(b.Modules) - placed),
		"hardness_spread":    float64(maxSum - minSum),
		"over_budget":        float64(overBudget),
		"early_credits":      float64(early),
	}
}

// Score 计算得分并截断到 [0, 100]
func (s *Scorer) Score(b *Board, semesters []model.Semester) (float64, error) {
	result, err := s.expr.Evaluate(Metrics(b, semesters))
	if err != nil {
		return 0, fmt.Errorf("评分计算失败: %w", err)
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("评分表达式结果不是数值: %v", result)
	}
	switch {
	case v < 0:
		return 0, nil
	case v > 100:
		return 100, nil
	}
	return v, nil
}
