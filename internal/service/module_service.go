package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
)

// ModuleService 模块注册表业务接口
type ModuleService interface {
	List(ctx context.Context) ([]dto.ModuleResponse, error)
	Create(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error)
	Delete(ctx context.Context, id string) error
	ToggleFrozen(ctx context.Context, id string) (*dto.ModuleResponse, error)
}

type moduleService struct {
	ws     *Workspace
	logger *zap.Logger
}

// NewModuleService 创建 ModuleService 实例
func NewModuleService(ws *Workspace, logger *zap.Logger) ModuleService {
	return &moduleService{ws: ws, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *moduleService) List(_ context.Context) ([]dto.ModuleResponse, error) {
	var out []dto.ModuleResponse
	s.ws.Read(func(b *planner.Board) {
		out = toModuleResponses(b.Modules)
	})
	return out, nil
}

// ────────────────────── Create ──────────────────────

func (s *moduleService) Create(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	var resp dto.ModuleResponse
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		m, err := b.AddModule(uuid.New().String(), planner.ModuleInput{
			Name:     req.Name,
			Offering: toSemesterTypes(req.Offering),
			Hardness: req.Hardness,
			Credits:  req.Credits,
		})
		if err != nil {
			return nil, err
		}
		resp = toModuleResponse(m)
		return []repository.Concern{repository.ConcernModules}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("模块已创建", zap.String("module_id", resp.ID), zap.String("name", resp.Name))
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *moduleService) Update(ctx context.Context, id string, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	var resp dto.ModuleResponse
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		m, err := b.UpdateModule(id, planner.ModulePatch{
			Name:     req.Name,
			Offering: toSemesterTypes(req.Offering),
			Hardness: req.Hardness,
			Credits:  req.Credits,
		})
		if err != nil {
			return nil, err
		}
		resp = toModuleResponse(m)
		return []repository.Concern{repository.ConcernModules}, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 同一次提交内从注册表与所在学期移除
func (s *moduleService) Delete(ctx context.Context, id string) error {
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		if err := b.DeleteModule(id); err != nil {
			return nil, err
		}
		return concernsAssignment, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("模块已删除", zap.String("module_id", id))
	return nil
}

// ────────────────────── ToggleFrozen ──────────────────────

func (s *moduleService) ToggleFrozen(ctx context.Context, id string) (*dto.ModuleResponse, error) {
	var resp dto.ModuleResponse
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		m, err := b.ToggleFrozen(id)
		if err != nil {
			return nil, err
		}
		resp = toModuleResponse(m)
		return []repository.Concern{repository.ConcernModules}, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
