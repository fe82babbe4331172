package service

import (
	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/pkg/llm"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Module   ModuleService
	Semester SemesterService
	Plan     PlanService
	Generate GenerateService
	Settings SettingsService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	ws *Workspace,
	scorer *planner.Scorer,
	generator llm.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Module:   NewModuleService(ws, logger),
		Semester: NewSemesterService(ws, logger),
		Plan:     NewPlanService(ws, scorer, logger),
		Generate: NewGenerateService(ws, generator, cfg.Generator, logger),
		Settings: NewSettingsService(ws, logger),
		Export:   NewExportService(ws, logger),
	}
}
