package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/model"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
)

// PlanService 方案快照业务接口
type PlanService interface {
	List(ctx context.Context) (*dto.PlansResponse, error)
	// Save 以当前排布创建方案，本地评分后追加到备选方案
	Save(ctx context.Context, req *dto.SavePlanRequest) (*dto.PlanResponse, error)
	// Apply 应用方案并设为当前方案
	Apply(ctx context.Context, planID string) (*dto.BoardResponse, error)
	// Check 列出方案在当前设置下的规则违反项（不修改状态）
	Check(ctx context.Context, planID string) (*dto.PlanCheckResponse, error)
}

type planService struct {
	ws     *Workspace
	scorer *planner.Scorer
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(ws *Workspace, scorer *planner.Scorer, logger *zap.Logger) PlanService {
	return &planService{ws: ws, scorer: scorer, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *planService) List(_ context.Context) (*dto.PlansResponse, error) {
	var out dto.PlansResponse
	s.ws.Read(func(b *planner.Board) {
		out = toPlansResponse(b)
	})
	return &out, nil
}

// ────────────────────── Save ──────────────────────

func (s *planService) Save(ctx context.Context, req *dto.SavePlanRequest) (*dto.PlanResponse, error) {
	var resp dto.PlanResponse
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		score, err := s.scorer.Score(b, b.Semesters)
		if err != nil {
			s.logger.Warn("方案评分失败，记为 0", zap.Error(err))
			score = 0
		}
		p := b.Snapshot(uuid.New().String(), req.Name, req.Description, score, model.PlanSourceSaved)
		b.AddAlternative(p)
		resp = toPlanResponse(p)
		return []repository.Concern{repository.ConcernAlternativePlans}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("方案已保存", zap.String("plan_id", resp.ID), zap.Float64("score", resp.Score))
	return &resp, nil
}

// ────────────────────── Apply ──────────────────────

func (s *planService) Apply(ctx context.Context, planID string) (*dto.BoardResponse, error) {
	var out *dto.BoardResponse
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		p, ok := b.FindPlan(planID)
		if !ok {
			return nil, ErrPlanNotFound
		}
		b.ApplyPlan(p)
		out = toBoardResponse(b)
		return []repository.Concern{
			repository.ConcernModules,
			repository.ConcernSemesters,
			repository.ConcernCurrentPlan,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("方案已应用", zap.String("plan_id", planID))
	return out, nil
}

// ────────────────────── Check ──────────────────────

func (s *planService) Check(_ context.Context, planID string) (*dto.PlanCheckResponse, error) {
	var (
		violations []planner.Violation
		found      bool
	)
	s.ws.Read(func(b *planner.Board) {
		var p model.Plan
		p, found = b.FindPlan(planID)
		if found {
			violations = b.CheckPlan(p)
		}
	})
	if !found {
		return nil, ErrPlanNotFound
	}

	out := &dto.PlanCheckResponse{
		PlanID:     planID,
		Valid:      len(violations) == 0,
		Violations: make([]dto.ViolationResponse, 0, len(violations)),
	}
	for _, v := range violations {
		out.Violations = append(out.Violations, dto.ViolationResponse{
			Kind:       v.Kind,
			SemesterID: v.SemesterID,
			ModuleID:   v.ModuleID,
			Message:    v.Message,
		})
	}
	return out, nil
}
