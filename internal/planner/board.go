package planner

import (
	"fmt"
	"strings"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// Board 工作区状态：模块注册表、学期槽位、设置、当前方案与备选方案
//
// 模块的位置有两处表示：学期的 ModuleIDs（有序引用）与模块自身的 SemesterID。
// 所有修改都经由 Board 的方法同时维护两处；未分配模块的顺序即注册表顺序。
type Board struct {
	Modules      []model.Module
	Semesters    []model.Semester
	Settings     model.Settings
	CurrentPlan  *model.Plan
	Alternatives []model.Plan
}

// Clone 深拷贝，供"先在副本上修改、成功后替换"使用
func (b *Board) Clone() *Board {
	out := &Board{
		Semesters: cloneSemesters(b.Semesters),
		Settings:  b.Settings,
	}
	if b.Modules != nil {
		out.Modules = make([]model.Module, len(b.Modules))
		for i, m := range b.Modules {
			out.Modules[i] = cloneModule(m)
		}
	}
	out.Settings.HardnessLimits = append([]int(nil), b.Settings.HardnessLimits...)
	if b.CurrentPlan != nil {
		p := clonePlan(*b.CurrentPlan)
		out.CurrentPlan = &p
	}
	if b.Alternatives != nil {
		out.Alternatives = make([]model.Plan, len(b.Alternatives))
		for i, p := range b.Alternatives {
			out.Alternatives[i] = clonePlan(p)
		}
	}
	return out
}

func cloneModule(m model.Module) model.Module {
	m.Offering = append([]model.SemesterType(nil), m.Offering...)
	if m.SemesterID != nil {
		id := *m.SemesterID
		m.SemesterID = &id
	}
	return m
}

func cloneSemesters(src []model.Semester) []model.Semester {
	if src == nil {
		return nil
	}
	out := make([]model.Semester, len(src))
	for i, s := range src {
		s.ModuleIDs = append([]string{}, s.ModuleIDs...)
		out[i] = s
	}
	return out
}

func clonePlan(p model.Plan) model.Plan {
	p.Semesters = cloneSemesters(p.Semesters)
	return p
}

// ── 查询 ──

func (b *Board) moduleIndex(id string) int {
	for i := range b.Modules {
		if b.Modules[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) semesterIndex(id int) int {
	for i := range b.Semesters {
		if b.Semesters[i].ID == id {
			return i
		}
	}
	return -1
}

// Module 按 ID 查找模块
func (b *Board) Module(id string) (model.Module, bool) {
	i := b.moduleIndex(id)
	if i < 0 {
		return model.Module{}, false
	}
	return b.Modules[i], true
}

// Semester 按 ID 查找学期
func (b *Board) Semester(id int) (model.Semester, bool) {
	i := b.semesterIndex(id)
	if i < 0 {
		return model.Semester{}, false
	}
	return b.Semesters[i], true
}

// LocationOf 模块当前位置；引用了不存在学期的模块视为未分配
func (b *Board) LocationOf(m *model.Module) Location {
	if m.SemesterID == nil || b.semesterIndex(*m.SemesterID) < 0 {
		return Unassigned
	}
	return SlotLocation(*m.SemesterID)
}

// Unassigned 未分配模块，按注册表顺序
func (b *Board) Unassigned() []model.Module {
	out := make([]model.Module, 0)
	for i := range b.Modules {
		if !b.LocationOf(&b.Modules[i]).IsSlot() {
			out = append(out, b.Modules[i])
		}
	}
	return out
}

// SemesterModules 学期内模块（按槽位顺序），跳过已不存在的引用
func (b *Board) SemesterModules(s model.Semester) []model.Module {
	out := make([]model.Module, 0, len(s.ModuleIDs))
	for _, id := range s.ModuleIDs {
		if m, ok := b.Module(id); ok {
			out = append(out, m)
		}
	}
	return out
}

// HardnessSum 学期内模块难度之和
func (b *Board) HardnessSum(s model.Semester) int {
	sum := 0
	for _, m := range b.SemesterModules(s) {
		sum += m.Hardness
	}
	return sum
}

// CreditSum 学期内模块学分之和
func (b *Board) CreditSum(s model.Semester) int {
	sum := 0
	for _, m := range b.SemesterModules(s) {
		sum += m.Credits
	}
	return sum
}

// ── 模块注册表 ──

// ModuleInput 新建模块参数
type ModuleInput struct {
	Name     string
	Offering []model.SemesterType
	Hardness int
	Credits  int
}

// ModulePatch 模块部分更新；nil 字段保持不变
type ModulePatch struct {
	Name     *string
	Offering []model.SemesterType
	Hardness *int
	Credits  *int
}

func validateModule(m *model.Module) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: 名称不能为空", ErrInvalidModule)
	}
	if len(m.Offering) == 0 {
		return fmt.Errorf("%w: 至少需要开设一种学期", ErrInvalidModule)
	}
	seen := make(map[model.SemesterType]bool, len(m.Offering))
	for _, t := range m.Offering {
		if !t.Valid() {
			return fmt.Errorf("%w: 未知学期类型 %q", ErrInvalidModule, t)
		}
		if seen[t] {
			return fmt.Errorf("%w: 学期类型 %q 重复", ErrInvalidModule, t)
		}
		seen[t] = true
	}
	if m.Hardness < model.MinHardness || m.Hardness > model.MaxHardness {
		return fmt.Errorf("%w: 难度必须在 %d-%d 之间", ErrInvalidModule, model.MinHardness, model.MaxHardness)
	}
	if m.Credits <= 0 {
		return fmt.Errorf("%w: 学分必须大于 0", ErrInvalidModule)
	}
	return nil
}

// AddModule 新模块追加到注册表末尾，未分配、未冻结
func (b *Board) AddModule(id string, in ModuleInput) (model.Module, error) {
	m := model.Module{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Offering: append([]model.SemesterType(nil), in.Offering...),
		Hardness: in.Hardness,
		Credits:  in.Credits,
	}
	if err := validateModule(&m); err != nil {
		return model.Module{}, err
	}
	b.Modules = append(b.Modules, m)
	return cloneModule(m), nil
}

// UpdateModule 更新模块属性
// 已放置的模块若新的开设类型不再包含所在学期类型，则拒绝
func (b *Board) UpdateModule(id string, patch ModulePatch) (model.Module, error) {
	i := b.moduleIndex(id)
	if i < 0 {
		return model.Module{}, ErrModuleNotFound
	}
	m := cloneModule(b.Modules[i])
	if patch.Name != nil {
		m.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Offering != nil {
		m.Offering = append([]model.SemesterType(nil), patch.Offering...)
	}
	if patch.Hardness != nil {
		m.Hardness = *patch.Hardness
	}
	if patch.Credits != nil {
		m.Credits = *patch.Credits
	}
	if err := validateModule(&m); err != nil {
		return model.Module{}, err
	}

	if loc := b.LocationOf(&m); loc.IsSlot() {
		s, _ := b.Semester(int(loc))
		if !m.OfferedIn(s.Type) {
			return model.Module{}, fmt.Errorf("%w: %s 已放在 %s（%s）", ErrSemesterTypeMismatch, m.Name, s.Name, s.Type)
		}
	}

	b.Modules[i] = m
	return cloneModule(m), nil
}

// DeleteModule 从注册表与所在学期中移除
func (b *Board) DeleteModule(id string) error {
	i := b.moduleIndex(id)
	if i < 0 {
		return ErrModuleNotFound
	}
	b.Modules = append(b.Modules[:i], b.Modules[i+1:]...)
	b.detach(id)
	return nil
}

// ToggleFrozen 切换冻结状态
func (b *Board) ToggleFrozen(id string) (model.Module, error) {
	i := b.moduleIndex(id)
	if i < 0 {
		return model.Module{}, ErrModuleNotFound
	}
	b.Modules[i].Frozen = !b.Modules[i].Frozen
	return cloneModule(b.Modules[i]), nil
}

// detach 从所有学期的引用列表中移除模块
func (b *Board) detach(id string) {
	for i := range b.Semesters {
		ids := b.Semesters[i].ModuleIDs[:0]
		for _, mid := range b.Semesters[i].ModuleIDs {
			if mid != id {
				ids = append(ids, mid)
			}
		}
		b.Semesters[i].ModuleIDs = ids
	}
}

// ── 设置 ──

// SetFirstSemesterType 修改首学期类型：重新生成学期类型并清空所有分配
// 返回是否发生变化
func (b *Board) SetFirstSemesterType(t model.SemesterType) (bool, error) {
	if !t.Valid() {
		return false, fmt.Errorf("%w: 未知学期类型 %q", ErrInvalidSettings, t)
	}
	if t == b.Settings.FirstSemesterType {
		return false, nil
	}
	b.Settings.FirstSemesterType = t
	limits := make([]int, len(b.Semesters))
	for i, s := range b.Semesters {
		limits[i] = s.HardnessLimit
	}
	b.Semesters = Layout(len(b.Semesters), t, limits, 1)
	for i := range b.Modules {
		b.Modules[i].SemesterID = nil
	}
	return true, nil
}

// SetHardnessLimits 修改各学期难度上限；已超限的学期保持原状
func (b *Board) SetHardnessLimits(limits []int) error {
	if len(limits) != len(b.Semesters) {
		return fmt.Errorf("%w: 需要 %d 个难度上限，实际 %d 个", ErrInvalidSettings, len(b.Semesters), len(limits))
	}
	for i, l := range limits {
		if l <= 0 {
			return fmt.Errorf("%w: 第 %d 个学期的难度上限必须大于 0", ErrInvalidSettings, i+1)
		}
	}
	b.Settings.HardnessLimits = append([]int(nil), limits...)
	for i := range b.Semesters {
		b.Semesters[i].HardnessLimit = limits[i]
	}
	return nil
}

// SetAPIKey 保存外部生成器密钥；空串表示清除
func (b *Board) SetAPIKey(key string) {
	b.Settings.APIKey = strings.TrimSpace(key)
}

// ── 重置与一致性 ──

// ResetAssignments 清空所有学期、所有模块回到未分配（含冻结模块），清除方案
func (b *Board) ResetAssignments() {
	for i := range b.Semesters {
		b.Semesters[i].ModuleIDs = []string{}
	}
	for i := range b.Modules {
		b.Modules[i].SemesterID = nil
	}
	b.CurrentPlan = nil
	b.Alternatives = nil
}

// Reconcile 以学期引用列表为准重新推导模块的 SemesterID
// 丢弃不存在或重复的引用；用于从存储恢复之后
func (b *Board) Reconcile() {
	placed := make(map[string]int, len(b.Modules))
	for i := range b.Semesters {
		ids := make([]string, 0, len(b.Semesters[i].ModuleIDs))
		for _, id := range b.Semesters[i].ModuleIDs {
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

	if len(b.Settings.HardnessLimits) != len(b.Semesters) {
		limits := make([]int, len(b.Semesters))
		for i, s := range b.Semesters {
			limits[i] = s.HardnessLimit
		}
		b.Settings.HardnessLimits = limits
	}
}
