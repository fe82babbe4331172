package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/dto"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
	"github.com/Pooyash1998/studyplanner/pkg/llm"
)

// ── 方案生成业务错误 ──

var (
	ErrMissingAPIKey      = errors.New("尚未设置 API Key")
	ErrGenerationInFlight = errors.New("方案正在生成中，请稍候")
	ErrGenerationUpstream = errors.New("调用方案生成服务失败")
	ErrGenerationResponse = errors.New("无法解析生成结果")
)

// GenerateService 外部方案生成业务接口
type GenerateService interface {
	// Generate 调用外部生成器，应用第一个方案，其余替换备选方案
	// 任一步失败时状态不变
	Generate(ctx context.Context) (*dto.GenerateResponse, error)
}

type generateService struct {
	ws       *Workspace
	client   llm.Client
	cfg      config.GeneratorConfig
	inFlight atomic.Bool
	logger   *zap.Logger
}

// NewGenerateService 创建 GenerateService 实例
func NewGenerateService(ws *Workspace, client llm.Client, cfg config.GeneratorConfig, logger *zap.Logger) GenerateService {
	return &generateService{ws: ws, client: client, cfg: cfg, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Generate
// ═══════════════════════════════════════════════════════════
//
// 流程：
//  1. 锁内读取密钥与生成输入
//  2. 锁外调用外部模型
//  3. 截取 JSON 并严格解析
//  4. 锁内构建方案并应用

func (s *generateService) Generate(ctx context.Context) (*dto.GenerateResponse, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer s.inFlight.Store(false)

	// 1. 读取输入
	var (
		apiKey string
		input  planner.GenerationInput
	)
	s.ws.Read(func(b *planner.Board) {
		apiKey = b.Settings.APIKey
		input = b.BuildGenerationInput()
	})
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	prompt, err := planner.BuildPrompt(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationResponse, err)
	}

	// 2. 调用外部模型
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	content, err := s.client.Complete(callCtx, llm.Request{
		APIKey:       apiKey,
		Model:        s.cfg.Model,
		SystemPrompt: s.cfg.SystemPrompt,
		Prompt:       prompt,
		Temperature:  s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Warn("方案生成调用失败", zap.String("provider", s.cfg.Provider), zap.Error(err))
		if errors.Is(err, llm.ErrMalformedResponse) || errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, fmt.Errorf("%w: %v", ErrGenerationResponse, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationUpstream, err)
	}

	// 3. 解析
	raw, ok := planner.ExtractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("%w: 响应中未找到 JSON", ErrGenerationResponse)
	}
	generated, err := planner.ParseGeneration([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationResponse, err)
	}

	// 4. 构建并应用
	var resp dto.GenerateResponse
	err = s.ws.Mutate(ctx, func(b *planner.Board) ([]repository.Concern, error) {
		plans, skipped := b.BuildPlans(generated, func() string { return uuid.New().String() })
		for _, sk := range skipped {
			fields := []zap.Field{
				zap.String("plan", sk.Plan),
				zap.String("module_id", sk.ModuleID),
				zap.String("reason", sk.Reason),
			}
			if sk.SemesterID != nil {
				fields = append(fields, zap.Int("semester_id", *sk.SemesterID))
			}
			s.logger.Warn("忽略无效的方案分配", fields...)
		}

		b.ApplyPlan(plans[0])
		b.Alternatives = plans[1:]

		resp.Plans = toPlansResponse(b)
		resp.Skipped = make([]dto.SkippedAssignmentResponse, 0, len(skipped))
		for _, sk := range skipped {
			resp.Skipped = append(resp.Skipped, dto.SkippedAssignmentResponse{
				Plan:       sk.Plan,
				ModuleID:   sk.ModuleID,
				SemesterID: sk.SemesterID,
				Reason:     sk.Reason,
			})
		}
		return concernsPlans, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("方案生成完成",
		zap.Int("plans", len(generated)),
		zap.Int("skipped", len(resp.Skipped)),
	)
	return &resp, nil
}
