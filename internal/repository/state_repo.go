package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pooyash1998/studyplanner/internal/model"
	pkgerrors "github.com/Pooyash1998/studyplanner/pkg/errors"
)

// Concern 一项独立持久化的状态，对应一个存储键
type Concern string

const (
	ConcernModules           Concern = "modules"
	ConcernSemesters         Concern = "semesters"
	ConcernFirstSemesterType Concern = "first-semester-type"
	ConcernHardnessLimits    Concern = "hardness-limits"
	ConcernAPIKey            Concern = "api-key"
	ConcernCurrentPlan       Concern = "current-plan"
	ConcernAlternativePlans  Concern = "alternative-plans"
)

// AllConcerns 全部持久化项
var AllConcerns = []Concern{
	ConcernModules,
	ConcernSemesters,
	ConcernFirstSemesterType,
	ConcernHardnessLimits,
	ConcernAPIKey,
	ConcernCurrentPlan,
	ConcernAlternativePlans,
}

// StateRepository 工作区状态读写接口
// Load* 在键不存在时返回 pkgerrors.ErrKeyNotFound，值无法解析时返回 pkgerrors.ErrMalformedValue
type StateRepository interface {
	LoadModules(ctx context.Context) ([]model.Module, error)
	SaveModules(ctx context.Context, modules []model.Module) error

	LoadSemesters(ctx context.Context) ([]model.Semester, error)
	SaveSemesters(ctx context.Context, semesters []model.Semester) error

	LoadFirstSemesterType(ctx context.Context) (model.SemesterType, error)
	SaveFirstSemesterType(ctx context.Context, t model.SemesterType) error

	LoadHardnessLimits(ctx context.Context) ([]int, error)
	SaveHardnessLimits(ctx context.Context, limits []int) error

	LoadAPIKey(ctx context.Context) (string, error)
	SaveAPIKey(ctx context.Context, key string) error

	// 当前方案为 nil 时写入 JSON null
	LoadCurrentPlan(ctx context.Context) (*model.Plan, error)
	SaveCurrentPlan(ctx context.Context, plan *model.Plan) error

	LoadAlternativePlans(ctx context.Context) ([]model.Plan, error)
	SaveAlternativePlans(ctx context.Context, plans []model.Plan) error
}

type stateRepo struct {
	store     KVStore
	namespace string
}

// NewStateRepo 创建 StateRepository，键格式为 <namespace>-<concern>
func NewStateRepo(store KVStore, namespace string) StateRepository {
	return &stateRepo{store: store, namespace: namespace}
}

// Key 持久化项对应的存储键
func Key(namespace string, c Concern) string {
	return namespace + "-" + string(c)
}

func loadJSON[T any](ctx context.Context, r *stateRepo, c Concern) (T, error) {
	var v T
	raw, err := r.store.Get(ctx, Key(r.namespace, c))
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", pkgerrors.ErrMalformedValue, Key(r.namespace, c), err)
	}
	return v, nil
}

func saveJSON(ctx context.Context, r *stateRepo, c Concern, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", Key(r.namespace, c), err)
	}
	return r.store.Set(ctx, Key(r.namespace, c), raw)
}

func (r *stateRepo) LoadModules(ctx context.Context) ([]model.Module, error) {
	return loadJSON[[]model.Module](ctx, r, ConcernModules)
}

func (r *stateRepo) SaveModules(ctx context.Context, modules []model.Module) error {
	return saveJSON(ctx, r, ConcernModules, modules)
}

func (r *stateRepo) LoadSemesters(ctx context.Context) ([]model.Semester, error) {
	return loadJSON[[]model.Semester](ctx, r, ConcernSemesters)
}

func (r *stateRepo) SaveSemesters(ctx context.Context, semesters []model.Semester) error {
	return saveJSON(ctx, r, ConcernSemesters, semesters)
}

func (r *stateRepo) LoadFirstSemesterType(ctx context.Context) (model.SemesterType, error) {
	t, err := loadJSON[model.SemesterType](ctx, r, ConcernFirstSemesterType)
	if err != nil {
		return "", err
	}
	if !t.Valid() {
		return "", fmt.Errorf("%w: 未知学期类型 %q", pkgerrors.ErrMalformedValue, t)
	}
	return t, nil
}

func (r *stateRepo) SaveFirstSemesterType(ctx context.Context, t model.SemesterType) error {
	return saveJSON(ctx, r, ConcernFirstSemesterType, t)
}

func (r *stateRepo) LoadHardnessLimits(ctx context.Context) ([]int, error) {
	return loadJSON[[]int](ctx, r, ConcernHardnessLimits)
}

func (r *stateRepo) SaveHardnessLimits(ctx context.Context, limits []int) error {
	return saveJSON(ctx, r, ConcernHardnessLimits, limits)
}

func (r *stateRepo) LoadAPIKey(ctx context.Context) (string, error) {
	return loadJSON[string](ctx, r, ConcernAPIKey)
}

func (r *stateRepo) SaveAPIKey(ctx context.Context, key string) error {
	return saveJSON(ctx, r, ConcernAPIKey, key)
}

func (r *stateRepo) LoadCurrentPlan(ctx context.Context) (*model.Plan, error) {
	return loadJSON[*model.Plan](ctx, r, ConcernCurrentPlan)
}

// SaveCurrentPlan 在 plan 为 nil 时删除键，重新加载后视为无当前方案
func (r *stateRepo) SaveCurrentPlan(ctx context.Context, plan *model.Plan) error {
	if plan == nil {
		return r.store.Delete(ctx, Key(r.namespace, ConcernCurrentPlan))
	}
	return saveJSON(ctx, r, ConcernCurrentPlan, plan)
}

func (r *stateRepo) LoadAlternativePlans(ctx context.Context) ([]model.Plan, error) {
	return loadJSON[[]model.Plan](ctx, r, ConcernAlternativePlans)
}

func (r *stateRepo) SaveAlternativePlans(ctx context.Context, plans []model.Plan) error {
	return saveJSON(ctx, r, ConcernAlternativePlans, plans)
}
