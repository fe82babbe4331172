package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
)

// SemesterService 学期槽位与拖放业务接口
type SemesterService interface {
	Board(ctx context.Context) (*dto.BoardResponse, error)
	List(ctx context.Context) ([]dto.SemesterResponse, error)
	Move(ctx context.Context, req *dto.MoveRequest) (*dto.MoveResponse, error)
	Reset(ctx context.Context) error
}

type semesterService struct {
	ws     *Workspace
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(ws *Workspace, logger *zap.Logger) SemesterService {
	return &semesterService{ws: ws, logger: logger}
}

// ────────────────────── Board / List ──────────────────────

func (s *semesterService) Board(_ context.Context) (*dto.BoardResponse, error) {
	var out *dto.BoardResponse
	s.ws.Read(func(b *planner.Board) {
		out = toBoardResponse(b)
	})
	return out, nil
}

func (s *semesterService) List(_ context.Context) ([]dto.SemesterResponse, error) {
	var out []dto.SemesterResponse
	s.ws.Read(func(b *planner.Board) {
		out = toSemesterResponses(b)
	})
	return out, nil
}

// ────────────────────── Move ──────────────────────

// Move 执行一次拖放；to 为空（拖放取消）时不做任何修改
func (s *semesterService) Move(ctx context.Context, req *dto.MoveRequest) (*dto.MoveResponse, error) {
	from, err := planner.ParseLocation(req.From)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.To) == "" {
		var resp *dto.MoveResponse
		s.ws.Read(func(b *planner.Board) {
			if m, ok := b.Module(req.ModuleID); ok {
				resp = &dto.MoveResponse{Changed: false, Module: toModuleResponse(m)}
			}
		})
		if resp == nil {
			return nil, ErrModuleNotFound
		}
		return resp, nil
	}

	to, err := planner.ParseLocation(req.To)
	if err != nil {
		return nil, err
	}

	var result planner.MoveResult
	err = s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		result, err = b.AttemptMove(planner.MoveRequest{
			ModuleID: req.ModuleID,
			From:     from,
			To:       to,
			Index:    req.Index,
		})
		if err != nil {
			return nil, err
		}
		if !result.Changed {
			return nil, nil
		}
		return concernsAssignment, nil
	})
	if err != nil {
		s.logger.Debug("拖放被拒绝",
			zap.String("module_id", req.ModuleID),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.MoveResponse{Changed: result.Changed, Module: toModuleResponse(result.Module)}, nil
}

// ────────────────────── Reset ──────────────────────

// Reset 清空所有学期与方案
func (s *semesterService) Reset(ctx context.Context) error {
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		b.ResetAssignments()
		return concernsPlans, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("看板已重置")
	return nil
}
