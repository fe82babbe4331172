package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// ────────────────────── 生成请求 ──────────────────────

// ModuleDescriptor 发给生成器的未分配模块
type ModuleDescriptor struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Offering []model.SemesterType `json:"offering"`
	Hardness int                  `json:"hardness"`
	Credits  int                  `json:"credits"`
}

// FrozenModuleDescriptor 发给生成器的冻结模块（仅已放置的）
type FrozenModuleDescriptor struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	SemesterID int                  `json:"semesterId"`
	Offering   []model.SemesterType `json:"offering"`
	Hardness   int                  `json:"hardness"`
	Credits    int                  `json:"credits"`
}

// SemesterDescriptor 发给生成器的学期信息
type SemesterDescriptor struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Type          model.SemesterType `json:"type"`
	HardnessLimit int                `json:"hardnessLimit"`
}

// GenerationInput 生成器输入
type GenerationInput struct {
	UnassignedModules []ModuleDescriptor       `json:"unassignedModules"`
	FrozenModules     []FrozenModuleDescriptor `json:"frozenModules"`
	Semesters         []SemesterDescriptor     `json:"semesters"`
}

// BuildGenerationInput 从当前状态提取生成器输入
// 未冻结但已放置的模块不发送
func (b *Board) BuildGenerationInput() GenerationInput {
	in := GenerationInput{
		UnassignedModules: make([]ModuleDescriptor, 0),
		FrozenModules:     make([]FrozenModuleDescriptor, 0),
		Semesters:         make([]SemesterDescriptor, 0, len(b.Semesters)),
	}
	for _, m := range b.Unassigned() {
		in.UnassignedModules = append(in.UnassignedModules, ModuleDescriptor{
			ID: m.ID, Name: m.Name, Offering: m.Offering, Hardness: m.Hardness, Credits: m.Credits,
		})
	}
	for _, s := range b.Semesters {
		for _, m := range b.SemesterModules(s) {
			if !m.Frozen {
				continue
			}
			in.FrozenModules = append(in.FrozenModules, FrozenModuleDescriptor{
				ID: m.ID, Name: m.Name, SemesterID: s.ID, Offering: m.Offering, Hardness: m.Hardness, Credits: m.Credits,
			})
		}
		in.Semesters = append(in.Semesters, SemesterDescriptor{
			ID: s.ID, Name: s.Name, Type: s.Type, HardnessLimit: s.HardnessLimit,
		})
	}
	return in
}

// ────────────────────── 生成响应 ──────────────────────

// ErrMalformedGeneration 生成结果不符合约定格式
var ErrMalformedGeneration = errors.New("生成结果格式错误")

// GeneratedAssignment 模块到学期的一条分配；SemesterID 为 nil 表示缺失
type GeneratedAssignment struct {
	ModuleID   string
	SemesterID *int
}

// GeneratedPlan 生成器返回的单个方案
type GeneratedPlan struct {
	Name        string
	Description string
	Assignments []GeneratedAssignment
	Score       float64
}

type rawGeneration struct {
	Plans *[]rawPlan `json:"plans"`
}

type rawPlan struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Assignments *[]rawAssignment `json:"assignments"`
	Score       *float64         `json:"score"`
}

type rawAssignment struct {
	ModuleID   json.RawMessage `json:"moduleId"`
	SemesterID json.RawMessage `json:"semesterId"`
}

// ExtractJSONObject 截取文本中第一个 '{' 到最后一个 '}' 的片段
// 模型常在 JSON 前后附带说明文字或代码块标记
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseGeneration 严格解析生成结果
// 方案级字段（name、assignments、score）缺失或类型错误时整体拒绝；
// 单条分配中 moduleId 非字符串或 semesterId 缺失/非整数时仅记为缺失，由 BuildPlans 跳过
// JSON 对象之后不得再有其他内容
func ParseGeneration(raw []byte) ([]GeneratedPlan, error) {
	var doc rawGeneration
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: JSON 对象之后存在多余内容", ErrMalformedGeneration)
	}
	if doc.Plans == nil {
		return nil, fmt.Errorf("%w: 缺少 plans 字段", ErrMalformedGeneration)
	}
	if len(*doc.Plans) == 0 {
		return nil, fmt.Errorf("%w: plans 为空", ErrMalformedGeneration)
	}

	plans := make([]GeneratedPlan, 0, len(*doc.Plans))
	for i, rp := range *doc.Plans {
		if rp.Name == nil || strings.TrimSpace(*rp.Name) == "" {
			return nil, fmt.Errorf("%w: 第 %d 个方案缺少 name", ErrMalformedGeneration, i+1)
		}
		if rp.Assignments == nil {
			return nil, fmt.Errorf("%w: 第 %d 个方案缺少 assignments", ErrMalformedGeneration, i+1)
		}
		if rp.Score == nil {
			return nil, fmt.Errorf("%w: 第 %d 个方案缺少 score", ErrMalformedGeneration, i+1)
		}

		p := GeneratedPlan{
			Name:        strings.TrimSpace(*rp.Name),
			Score:       *rp.Score,
			Assignments: make([]GeneratedAssignment, 0, len(*rp.Assignments)),
		}
		if rp.Description != nil {
			p.Description = *rp.Description
		}
		for _, ra := range *rp.Assignments {
			var a GeneratedAssignment
			_ = json.Unmarshal(ra.ModuleID, &a.ModuleID)
			a.SemesterID = parseSemesterID(ra.SemesterID)
			p.Assignments = append(p.Assignments, a)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// parseSemesterID 接受整数值的数字（1 与 1.0 等价），其余视为缺失
func parseSemesterID(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil
	}
	sid := int(f)
	return &sid
}

// ────────────────────── 方案构建 ──────────────────────

// 跳过原因
const (
	SkipUnknownModule   = "unknown_module"
	SkipMissingSemester = "missing_semester"
	SkipUnknownSemester = "unknown_semester"
	SkipFrozenModule    = "frozen_module"
	SkipDuplicate       = "duplicate"
)

// SkippedAssignment 被忽略的分配
type SkippedAssignment struct {
	Plan       string
	ModuleID   string
	SemesterID *int
	Reason     string
}

// BuildPlans 把生成结果转为方案快照
// 每个方案从空学期开始，先放入已放置的冻结模块，再依次应用分配
func (b *Board) BuildPlans(generated []GeneratedPlan, newID func() string) ([]model.Plan, []SkippedAssignment) {
	plans := make([]model.Plan, 0, len(generated))
	skipped := make([]SkippedAssignment, 0)

	for _, g := range generated {
		semesters := cloneSemesters(b.Semesters)
		placed := make(map[string]bool)
		for i := range semesters {
			ids := make([]string, 0)
			for _, m := range b.SemesterModules(b.Semesters[i]) {
				if m.Frozen {
					ids = append(ids, m.ID)
					placed[m.ID] = true
				}
			}
			semesters[i].ModuleIDs = ids
		}

		skip := func(a GeneratedAssignment, reason string) {
			skipped = append(skipped, SkippedAssignment{Plan: g.Name, ModuleID: a.ModuleID, SemesterID: a.SemesterID, Reason: reason})
		}

		for _, a := range g.Assignments {
			m, ok := b.Module(a.ModuleID)
			if !ok {
				skip(a, SkipUnknownModule)
				continue
			}
			if a.SemesterID == nil {
				skip(a, SkipMissingSemester)
				continue
			}
			si := -1
			for i := range semesters {
				if semesters[i].ID == *a.SemesterID {
					si = i
					break
				}
			}
			if si < 0 {
				skip(a, SkipUnknownSemester)
				continue
			}
			if placed[m.ID] {
				if m.Frozen {
					skip(a, SkipFrozenModule)
				} else {
					skip(a, SkipDuplicate)
				}
				continue
			}
			semesters[si].ModuleIDs = append(semesters[si].ModuleIDs, m.ID)
			placed[m.ID] = true
		}

		plans = append(plans, model.Plan{
			ID:          newID(),
			Name:        g.Name,
			Description: g.Description,
			Semesters:   semesters,
			Score:       g.Score,
			Source:      model.PlanSourceGenerated,
		})
	}
	return plans, skipped
}
