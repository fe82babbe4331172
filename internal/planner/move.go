package planner

import (
	"fmt"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// MoveRequest 一次拖放操作
type MoveRequest struct {
	ModuleID string
	From     Location
	To       Location
	Index    int
}

// MoveResult 放置结果；Changed=false 表示无变化（原位放下）
type MoveResult struct {
	Changed bool
	Module  model.Module
}

// AttemptMove 校验并执行一次放置，规则按顺序判定，第一条失败即返回：
//  0. 模块、起止位置存在
//  1. 冻结且位于学期中的模块不可移出（不论 From 与目标）
//  1a. From 与模块实际位置一致
//  2. 原位原序放下为无变化
//  3. 同一位置内调整顺序，跳过 4、5
//  4. 目标学期类型必须在开设类型内
//  5. 目标学期难度和（不含自身）加上自身难度不得超过上限
//
// 被拒绝时 Board 不发生任何变化
func (b *Board) AttemptMove(req MoveRequest) (MoveResult, error) {
	mi := b.moduleIndex(req.ModuleID)
	if mi < 0 {
		return MoveResult{}, ErrModuleNotFound
	}
	for _, loc := range []Location{req.From, req.To} {
		if loc.IsSlot() && b.semesterIndex(int(loc)) < 0 {
			return MoveResult{}, fmt.Errorf("%w: %s", ErrSemesterNotFound, loc)
		}
	}

	mod := cloneModule(b.Modules[mi])
	current := b.LocationOf(&mod)
	if mod.Frozen && current.IsSlot() {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrFrozenModule, mod.Name)
	}

	if req.From != current {
		return MoveResult{}, fmt.Errorf("%w: 模块实际位于 %s", ErrStaleLocation, current)
	}

	if req.From == req.To {
		if req.Index == b.indexIn(current, mod.ID) {
			return MoveResult{Changed: false, Module: mod}, nil
		}
	} else if req.To.IsSlot() {
		dest := b.Semesters[b.semesterIndex(int(req.To))]
		if !mod.OfferedIn(dest.Type) {
			return MoveResult{}, fmt.Errorf("%w: %s 不在 %s 学期开设", ErrSemesterTypeMismatch, mod.Name, dest.Type)
		}
		sum := 0
		for _, m := range b.SemesterModules(dest) {
			if m.ID != mod.ID {
				sum += m.Hardness
			}
		}
		if sum+mod.Hardness > dest.HardnessLimit {
			return MoveResult{}, fmt.Errorf("%w: %s 难度 %d + %d > %d",
				ErrHardnessLimitExceeded, dest.Name, sum, mod.Hardness, dest.HardnessLimit)
		}
	}

	b.place(mi, req.To, req.Index)
	return MoveResult{Changed: true, Module: cloneModule(b.Modules[b.moduleIndex(mod.ID)])}, nil
}

// indexIn 模块在所处集合中的下标
func (b *Board) indexIn(loc Location, id string) int {
	if loc.IsSlot() {
		for i, mid := range b.Semesters[b.semesterIndex(int(loc))].ModuleIDs {
			if mid == id {
				return i
			}
		}
		return -1
	}
	for i, m := range b.Unassigned() {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// place 将注册表第 mi 个模块放入 to 的第 index 位（越界则截断到两端）
func (b *Board) place(mi int, to Location, index int) {
	mod := b.Modules[mi]
	b.detach(mod.ID)

	if to.IsSlot() {
		si := b.semesterIndex(int(to))
		ids := b.Semesters[si].ModuleIDs
		index = clamp(index, len(ids))
		ids = append(ids, "")
		copy(ids[index+1:], ids[index:])
		ids[index] = mod.ID
		b.Semesters[si].ModuleIDs = ids

		sid := int(to)
		b.Modules[mi].SemesterID = &sid
		return
	}

	// 未分配区的顺序由注册表顺序决定：把模块移到第 index 个其他未分配模块之前
	mod.SemesterID = nil
	if index < 0 {
		index = 0
	}
	b.Modules = append(b.Modules[:mi], b.Modules[mi+1:]...)
	pos := len(b.Modules)
	n := 0
	for i := range b.Modules {
		if b.LocationOf(&b.Modules[i]).IsSlot() {
			continue
		}
		if n == index {
			pos = i
			break
		}
		n++
	}
	b.Modules = append(b.Modules, model.Module{})
	copy(b.Modules[pos+1:], b.Modules[pos:])
	b.Modules[pos] = mod
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
