package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/model"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
)

// SettingsService 用户设置业务接口
type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	ws     *Workspace
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(ws *Workspace, logger *zap.Logger) SettingsService {
	return &settingsService{ws: ws, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *settingsService) Get(_ context.Context) (*dto.SettingsResponse, error) {
	var out *dto.SettingsResponse
	s.ws.Read(func(b *planner.Board) {
		out = toSettingsResponse(b.Settings)
	})
	return out, nil
}

// ────────────────────── Update ──────────────────────

// Update 部分更新：
//   - first_semester_type 变化时重新生成学期类型并清空所有分配
//   - hardness_limits 只更新上限，已超限的学期保持原状
//   - api_key 为空串时清除
func (s *settingsService) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var (
		out     *dto.SettingsResponse
		cleared bool
	)
	err := s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		var concerns []repository.Concern

		if req.FirstSemesterType != nil {
			changed, err := b.SetFirstSemesterType(model.SemesterType(*req.FirstSemesterType))
			if err != nil {
				return nil, err
			}
			if changed {
				cleared = true
				concerns = append(concerns,
					repository.ConcernFirstSemesterType,
					repository.ConcernSemesters,
					repository.ConcernModules,
				)
			}
		}

		if req.HardnessLimits != nil {
			if err := b.SetHardnessLimits(req.HardnessLimits); err != nil {
				return nil, err
			}
			concerns = append(concerns, repository.ConcernHardnessLimits, repository.ConcernSemesters)
		}

		if req.APIKey != nil {
			b.SetAPIKey(*req.APIKey)
			concerns = append(concerns, repository.ConcernAPIKey)
		}

		out = toSettingsResponse(b.Settings)
		return concerns, nil
	})
	if err != nil {
		return nil, err
	}

	if cleared {
		s.logger.Info("首学期类型已变更，已清空所有分配", zap.String("first_semester_type", out.FirstSemesterType))
	}
	return out, nil
}

func toSettingsResponse(st model.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		FirstSemesterType: string(st.FirstSemesterType),
		HardnessLimits:    append([]int{}, st.HardnessLimits...),
		HasAPIKey:         st.APIKey != "",
		APIKeyMasked:      maskAPIKey(st.APIKey),
	}
}

// maskAPIKey 仅保留末 4 位
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}
