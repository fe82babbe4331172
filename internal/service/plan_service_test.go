package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/model"
)

func TestPlanService_SaveApplyCheck(t *testing.T) {
	env, modSvc, semSvc := setupModuleEnv(t)
	ctx := context.Background()
	svc := NewPlanService(env.ws, newTestScorer(t), zap.NewNop())

	a := createModule(t, modSvc, "a", 2, "Winter", "Summer")
	b := createModule(t, modSvc, "b", 2, "Winter")
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: a.ID, From: "unassigned", To: "1"}); err != nil {
		t.Fatal(err)
	}

	saved, err := svc.Save(ctx, &dto.SavePlanRequest{Name: "Draft", Description: "a first"})
	if err != nil {
		t.Fatalf("保存方案失败: %v", err)
	}
	// spread = 2, unassigned = 1 → 100 - 20 - 5
	if saved.Score != 75 || saved.Source != model.PlanSourceSaved {
		t.Errorf("方案评分或来源不符: %+v", saved)
	}

	// 改变排布后再应用保存的方案
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: a.ID, From: "1", To: "2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: b.ID, From: "unassigned", To: "3"}); err != nil {
		t.Fatal(err)
	}
	board, err := svc.Apply(ctx, saved.ID)
	if err != nil {
		t.Fatalf("应用方案失败: %v", err)
	}
	if len(board.Semesters[0].Modules) != 1 || board.Semesters[0].Modules[0].ID != a.ID || len(board.Unassigned) != 1 {
		t.Errorf("应用后排布应恢复为保存时: %+v", board.Semesters)
	}
	if board.Plans.Current == nil || board.Plans.Current.ID != saved.ID || len(board.Plans.Alternatives) != 1 {
		t.Errorf("应用的方案应成为当前方案且备选保留: %+v", board.Plans)
	}

	persisted, _ := env.state.LoadCurrentPlan(ctx)
	if persisted == nil || persisted.ID != saved.ID {
		t.Errorf("当前方案应已持久化")
	}

	check, err := svc.Check(ctx, saved.ID)
	if err != nil || !check.Valid {
		t.Errorf("保存的方案应通过检查: %+v (%v)", check, err)
	}
}

func TestPlanService_Check_ReportsViolations(t *testing.T) {
	env, modSvc, semSvc := setupModuleEnv(t)
	ctx := context.Background()
	svc := NewPlanService(env.ws, newTestScorer(t), zap.NewNop())

	a := createModule(t, modSvc, "a", 3, "Winter")
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: a.ID, From: "unassigned", To: "1"}); err != nil {
		t.Fatal(err)
	}
	saved, _ := svc.Save(ctx, &dto.SavePlanRequest{Name: "Heavy"})

	limits := []int{2, 5, 5, 5}
	if _, err := NewSettingsService(env.ws, zap.NewNop()).Update(ctx, &dto.UpdateSettingsRequest{HardnessLimits: limits}); err != nil {
		t.Fatal(err)
	}

	check, err := svc.Check(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if check.Valid || len(check.Violations) != 1 || check.Violations[0].SemesterID != 1 {
		t.Errorf("降低上限后应报告学期 1 超限: %+v", check)
	}
}

func TestPlanService_NotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPlanService(env.ws, newTestScorer(t), zap.NewNop())

	if _, err := svc.Apply(context.Background(), "missing"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("期望 ErrPlanNotFound，实际 %v", err)
	}
	if _, err := svc.Check(context.Background(), "missing"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("期望 ErrPlanNotFound，实际 %v", err)
	}
	list, _ := svc.List(context.Background())
	if list.Current != nil || len(list.Alternatives) != 0 {
		t.Errorf("初始应无方案")
	}
}
