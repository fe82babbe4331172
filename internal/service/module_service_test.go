package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/planner"
)

func setupModuleEnv(t *testing.T) (*testEnv, ModuleService, SemesterService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewModuleService(env.ws, zap.NewNop()), NewSemesterService(env.ws, zap.NewNop())
}

func createModule(t *testing.T, svc ModuleService, name string, hardness int, offering ...string) *dto.ModuleResponse {
	t.Helper()
	m, err := svc.Create(context.Background(), &dto.CreateModuleRequest{Name: name, Offering: offering, Hardness: hardness, Credits: 5})
	if err != nil {
		t.Fatalf("创建模块 %s 失败: %v", name, err)
	}
	return m
}

func TestModuleService_Create(t *testing.T) {
	env, svc, _ := setupModuleEnv(t)

	m := createModule(t, svc, "Linear Algebra", 2, "Winter", "Summer")
	if m.ID == "" || m.Frozen || m.SemesterID != nil {
		t.Errorf("新模块应有 ID、未冻结、未分配: %+v", m)
	}

	saved, err := env.state.LoadModules(context.Background())
	if err != nil || len(saved) != 1 || saved[0].ID != m.ID {
		t.Errorf("新模块应已持久化: %+v (%v)", saved, err)
	}
}

func TestModuleService_Create_Invalid(t *testing.T) {
	_, svc, _ := setupModuleEnv(t)
	_, err := svc.Create(context.Background(), &dto.CreateModuleRequest{Name: "X", Offering: []string{"Winter", "Winter"}, Hardness: 1, Credits: 1})
	if !errors.Is(err, ErrInvalidModule) {
		t.Errorf("期望 ErrInvalidModule，实际 %v", err)
	}
}

func TestModuleService_Update(t *testing.T) {
	_, svc, semSvc := setupModuleEnv(t)
	ctx := context.Background()
	m := createModule(t, svc, "Stats", 1, "Winter", "Summer")
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: m.ID, From: "unassigned", To: "2"}); err != nil {
		t.Fatalf("移动失败: %v", err)
	}

	_, err := svc.Update(ctx, m.ID, &dto.UpdateModuleRequest{Offering: []string{"Winter"}})
	if !errors.Is(err, ErrSemesterTypeMismatch) {
		t.Errorf("已在 Summer 学期时去掉 Summer 应被拒绝，实际 %v", err)
	}

	hardness := 3
	got, err := svc.Update(ctx, m.ID, &dto.UpdateModuleRequest{Hardness: &hardness})
	if err != nil || got.Hardness != 3 {
		t.Errorf("更新难度失败: %+v (%v)", got, err)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateModuleRequest{}); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("期望 ErrModuleNotFound，实际 %v", err)
	}
}

func TestModuleService_Delete_RemovesFromSemester(t *testing.T) {
	env, svc, semSvc := setupModuleEnv(t)
	ctx := context.Background()
	m := createModule(t, svc, "Logic", 1, "Winter")
	if _, err := semSvc.Move(ctx, &dto.MoveRequest{ModuleID: m.ID, From: "unassigned", To: "1"}); err != nil {
		t.Fatalf("移动失败: %v", err)
	}

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	env.ws.Read(func(b *planner.Board) {
		if len(b.Modules) != 0 || len(b.Semesters[0].ModuleIDs) != 0 {
			t.Errorf("模块应同时从注册表与学期中移除")
		}
	})
	saved, _ := env.state.LoadSemesters(ctx)
	if len(saved[0].ModuleIDs) != 0 {
		t.Errorf("学期的持久化状态应同步移除")
	}

	if err := svc.Delete(ctx, m.ID); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("重复删除应返回 ErrModuleNotFound，实际 %v", err)
	}
}

func TestModuleService_ToggleFrozen(t *testing.T) {
	_, svc, _ := setupModuleEnv(t)
	m := createModule(t, svc, "Algo", 2, "Summer")

	got, err := svc.ToggleFrozen(context.Background(), m.ID)
	if err != nil || !got.Frozen {
		t.Fatalf("第一次切换应冻结: %+v (%v)", got, err)
	}
	got, _ = svc.ToggleFrozen(context.Background(), m.ID)
	if got.Frozen {
		t.Errorf("第二次切换应解冻")
	}
}
