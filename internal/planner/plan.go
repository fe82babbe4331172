package planner

import (
	"fmt"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// Snapshot 以当前排布生成方案快照
func (b *Board) Snapshot(id, name, description string, score float64, source string) model.Plan {
	return model.Plan{
		ID:          id,
		Name:        name,
		Description: description,
		Semesters:   cloneSemesters(b.Semesters),
		Score:       score,
		Source:      source,
	}
}

// FindPlan 在当前方案与备选方案中查找
func (b *Board) FindPlan(id string) (model.Plan, bool) {
	if b.CurrentPlan != nil && b.CurrentPlan.ID == id {
		return clonePlan(*b.CurrentPlan), true
	}
	for _, p := range b.Alternatives {
		if p.ID == id {
			return clonePlan(p), true
		}
	}
	return model.Plan{}, false
}

// ApplyPlan 用方案的分配列表替换当前各学期的分配
// 学期类型与上限保持当前设置；已删除的模块与重复引用被丢弃；
// 方案成为当前方案，备选方案保留。重复应用结果不变。
func (b *Board) ApplyPlan(p model.Plan) {
	byID := make(map[int][]string, len(p.Semesters))
	for _, s := range p.Semesters {
		byID[s.ID] = s.ModuleIDs
	}

	placed := make(map[string]int, len(b.Modules))
	for i := range b.Semesters {
		ids := make([]string, 0, len(byID[b.Semesters[i].ID]))
		for _, id := range byID[b.Semesters[i].ID] {
			if b.moduleIndex(id) < 0 {
				continue
			}
			if _, dup := placed[id]; dup {
				continue
			}
			placed[id] = b.Semesters[i].ID
			ids = append(ids, id)
		}
		b.Semesters[i].ModuleIDs = ids
	}
	for i := range b.Modules {
		if sid, ok := placed[b.Modules[i].ID]; ok {
			id := sid
			b.Modules[i].SemesterID = &id
		} else {
			b.Modules[i].SemesterID = nil
		}
	}

	applied := clonePlan(p)
	b.CurrentPlan = &applied
}

// AddAlternative 追加备选方案
func (b *Board) AddAlternative(p model.Plan) {
	b.Alternatives = append(b.Alternatives, clonePlan(p))
}

// ── 方案检查 ──

// 违规类型
const (
	ViolationTypeMismatch  = "semester_type_mismatch"
	ViolationOverBudget    = "hardness_limit_exceeded"
	ViolationUnknownModule = "unknown_module"
)

// Violation 方案中的一条规则违反（仅报告，不强制）
type Violation struct {
	Kind       string
	SemesterID int
	ModuleID   string
	Message    string
}

// CheckPlan 按当前模块属性与学期设置检查方案
func (b *Board) CheckPlan(p model.Plan) []Violation {
	out := make([]Violation, 0)
	for _, ps := range p.Semesters {
		live, ok := b.Semester(ps.ID)
		if !ok {
			continue
		}
		sum := 0
		for _, id := range ps.ModuleIDs {
			m, ok := b.Module(id)
			if !ok {
				out = append(out, Violation{
					Kind:       ViolationUnknownModule,
					SemesterID: ps.ID,
					ModuleID:   id,
					Message:    fmt.Sprintf("模块 %s 已不存在", id),
				})
				continue
			}
			sum += m.Hardness
			if !m.OfferedIn(live.Type) {
				out = append(out, Violation{
					Kind:       ViolationTypeMismatch,
					SemesterID: ps.ID,
					ModuleID:   id,
					Message:    fmt.Sprintf("%s 不在 %s 学期开设", m.Name, live.Type),
				})
			}
		}
		if sum > live.HardnessLimit {
			out = append(out, Violation{
				Kind:       ViolationOverBudget,
				SemesterID: ps.ID,
				Message:    fmt.Sprintf("%s 难度和 %d 超过上限 %d", live.Name, sum, live.HardnessLimit),
			})
		}
	}
	return out
}
