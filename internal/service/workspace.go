package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/model"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
	pkgerrors "github.com/Pooyash1998/studyplanner/pkg/errors"
)

// Workspace 进程内唯一的看板状态
//
// 所有修改在互斥锁内进行：先在副本上执行，成功后替换并写入变更的持久化项；
// 失败时状态不变。持久化失败只记录日志。
type Workspace struct {
	mu     sync.Mutex
	board  *planner.Board
	state  repository.StateRepository
	logger *zap.Logger
}

// NewWorkspace 以给定状态创建工作区（测试使用）
func NewWorkspace(board *planner.Board, state repository.StateRepository, logger *zap.Logger) *Workspace {
	return &Workspace{board: board, state: state, logger: logger}
}

// LoadWorkspace 启动时从存储恢复各项状态
// 键不存在时取默认值；值无法解析时记录警告并取默认值
func LoadWorkspace(ctx context.Context, cfg *config.PlannerConfig, state repository.StateRepository, logger *zap.Logger) *Workspace {
	w := &Workspace{state: state, logger: logger}
	b := &planner.Board{Modules: []model.Module{}}

	b.Settings.FirstSemesterType = model.SemesterType(cfg.DefaultFirstSemester)
	if t, err := state.LoadFirstSemesterType(ctx); w.loaded(repository.ConcernFirstSemesterType, err) {
		b.Settings.FirstSemesterType = t
	}

	b.Settings.HardnessLimits = planner.DefaultLimits(cfg.SemesterCount, cfg.DefaultHardnessLimit)
	if limits, err := state.LoadHardnessLimits(ctx); w.loaded(repository.ConcernHardnessLimits, err) && validLimits(limits) {
		b.Settings.HardnessLimits = limits
	}

	if key, err := state.LoadAPIKey(ctx); w.loaded(repository.ConcernAPIKey, err) {
		b.Settings.APIKey = key
	}

	if modules, err := state.LoadModules(ctx); w.loaded(repository.ConcernModules, err) && modules != nil {
		b.Modules = modules
	}

	b.Semesters = planner.Layout(cfg.SemesterCount, b.Settings.FirstSemesterType, b.Settings.HardnessLimits, cfg.DefaultHardnessLimit)
	if semesters, err := state.LoadSemesters(ctx); w.loaded(repository.ConcernSemesters, err) && len(semesters) > 0 {
		b.Semesters = semesters
	}

	if plan, err := state.LoadCurrentPlan(ctx); w.loaded(repository.ConcernCurrentPlan, err) {
		b.CurrentPlan = plan
	}
	if plans, err := state.LoadAlternativePlans(ctx); w.loaded(repository.ConcernAlternativePlans, err) {
		b.Alternatives = plans
	}

	b.Reconcile()
	w.board = b

	logger.Info("工作区状态已加载",
		zap.Int("modules", len(b.Modules)),
		zap.Int("semesters", len(b.Semesters)),
		zap.Bool("has_current_plan", b.CurrentPlan != nil),
		zap.Int("alternatives", len(b.Alternatives)),
	)
	return w
}

// loaded 判断一项状态是否读取成功；格式错误记录警告
func (w *Workspace) loaded(c repository.Concern, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, pkgerrors.ErrKeyNotFound):
		return false
	default:
		w.logger.Warn("读取持久化状态失败，使用默认值", zap.String("concern", string(c)), zap.Error(err))
		return false
	}
}

func validLimits(limits []int) bool {
	if len(limits) == 0 {
		return false
	}
	for _, l := range limits {
		if l <= 0 {
			return false
		}
	}
	return true
}

// Read 在锁内读取状态；fn 不得修改 board
func (w *Workspace) Read(fn func(b *planner.Board)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.board)
}

// Mutate 在副本上执行 fn，成功后提交并写入 fn 返回的持久化项
func (w *Workspace) Mutate(ctx context.Context, fn func(b *planner.Board) ([]repository.Concern, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.board.Clone()
	concerns, err := fn(next)
	if err != nil {
		return err
	}
	w.board = next
	w.persist(context.WithoutCancel(ctx), concerns)
	return nil
}

func (w *Workspace) persist(ctx context.Context, concerns []repository.Concern) {
	b := w.board
	for _, c := range concerns {
		var err error
		switch c {
		case repository.ConcernModules:
			err = w.state.SaveModules(ctx, b.Modules)
		case repository.ConcernSemesters:
			err = w.state.SaveSemesters(ctx, b.Semesters)
		case repository.ConcernFirstSemesterType:
			err = w.state.SaveFirstSemesterType(ctx, b.Settings.FirstSemesterType)
		case repository.ConcernHardnessLimits:
			err = w.state.SaveHardnessLimits(ctx, b.Settings.HardnessLimits)
		case repository.ConcernAPIKey:
			err = w.state.SaveAPIKey(ctx, b.Settings.APIKey)
		case repository.ConcernCurrentPlan:
			err = w.state.SaveCurrentPlan(ctx, b.CurrentPlan)
		case repository.ConcernAlternativePlans:
			err = w.state.SaveAlternativePlans(ctx, b.Alternatives)
		}
		if err != nil {
			w.logger.Error("持久化状态失败", zap.String("concern", string(c)), zap.Error(err))
		}
	}
}

// 常用持久化项组合
var (
	concernsAssignment = []repository.Concern{repository.ConcernModules, repository.ConcernSemesters}
	concernsPlans      = []repository.Concern{
		repository.ConcernModules,
		repository.ConcernSemesters,
		repository.ConcernCurrentPlan,
		repository.ConcernAlternativePlans,
	}
)
