package planner

import (
	"fmt"
	"testing"

	"github.com/Pooyash1998/studyplanner/internal/model"
)

// newTestBoard 4 个学期（Winter 起），上限均为 5
func newTestBoard() *Board {
	return &Board{
		Modules:   []model.Module{},
		Semesters: Layout(4, model.SemesterWinter, DefaultLimits(4, 5), 5),
		Settings: model.Settings{
			FirstSemesterType: model.SemesterWinter,
			HardnessLimits:    DefaultLimits(4, 5),
		},
	}
}

func mustAdd(t *testing.T, b *Board, id string, hardness int, offering ...model.SemesterType) {
	t.Helper()
	if _, err := b.AddModule(id, ModuleInput{Name: "Module " + id, Offering: offering, Hardness: hardness, Credits: 5}); err != nil {
		t.Fatalf("添加模块 %s 失败: %v", id, err)
	}
}

func mustMove(t *testing.T, b *Board, id string, from, to Location, index int) {
	t.Helper()
	if _, err := b.AttemptMove(MoveRequest{ModuleID: id, From: from, To: to, Index: index}); err != nil {
		t.Fatalf("移动 %s %s→%s 失败: %v", id, from, to, err)
	}
}

// assertConsistent 每个模块至多出现在一个学期，且与 SemesterID 一致
func assertConsistent(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[string]int)
	for _, s := range b.Semesters {
		for _, id := range s.ModuleIDs {
			if prev, ok := seen[id]; ok {
				t.Fatalf("模块 %s 同时出现在学期 %d 与 %d", id, prev, s.ID)
			}
			seen[id] = s.ID
		}
	}
	for _, m := range b.Modules {
		sid, placed := seen[m.ID]
		switch {
		case placed && (m.SemesterID == nil || *m.SemesterID != sid):
			t.Fatalf("模块 %s 在学期 %d 中，但 SemesterID=%v", m.ID, sid, m.SemesterID)
		case !placed && m.SemesterID != nil:
			t.Fatalf("模块 %s 未分配，但 SemesterID=%d", m.ID, *m.SemesterID)
		}
	}
}

func ids(s model.Semester) string { return fmt.Sprint(s.ModuleIDs) }

func unassignedIDs(b *Board) string {
	out := make([]string, 0)
	for _, m := range b.Unassigned() {
		out = append(out, m.ID)
	}
	return fmt.Sprint(out)
}
