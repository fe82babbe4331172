package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
	"github.com/Pooyash1998/studyplanner/pkg/llm"
)

// ── 测试辅助 ──

func testPlannerConfig() *config.PlannerConfig {
	return &config.PlannerConfig{
		SemesterCount:        4,
		DefaultHardnessLimit: 5,
		DefaultFirstSemester: "Winter",
		ScoreFormula:         "100 - 10 * hardness_spread - 25 * over_budget - 5 * unassigned_modules",
	}
}

func testGeneratorConfig() config.GeneratorConfig {
	return config.GeneratorConfig{
		Provider:     "openai",
		Model:        "gpt-4o",
		Temperature:  0.7,
		Timeout:      5 * time.Second,
		SystemPrompt: "You are an academic advisor AI that creates optimal study plans.",
	}
}

// testEnv 内存存储上的工作区
type testEnv struct {
	store *repository.MemoryKVStore
	state repository.StateRepository
	ws    *Workspace
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryKVStore()
	state := repository.NewStateRepo(store, "studywise")
	return &testEnv{
		store: store,
		state: state,
		ws:    LoadWorkspace(context.Background(), testPlannerConfig(), state, zap.NewNop()),
	}
}

// reload 模拟重启：从同一存储重新加载
func (e *testEnv) reload(t *testing.T) *Workspace {
	t.Helper()
	return LoadWorkspace(context.Background(), testPlannerConfig(), e.state, zap.NewNop())
}

func newTestScorer(t *testing.T) *planner.Scorer {
	t.Helper()
	s, err := planner.NewScorer(testPlannerConfig().ScoreFormula)
	if err != nil {
		t.Fatalf("创建评分器失败: %v", err)
	}
	return s
}

// ── Mock KVStore：写入总是失败 ──

type failingKVStore struct {
	*repository.MemoryKVStore
}

func (s *failingKVStore) Set(_ context.Context, _ string, _ []byte) error {
	return errors.New("disk full")
}

// ── Mock llm.Client ──

type mockLLM struct {
	mu      sync.Mutex
	content string
	err     error
	calls   int
	lastReq llm.Request

	// block 非 nil 时 Complete 阻塞直到关闭；started 在进入时通知
	block   chan struct{}
	started chan struct{}
}

func (m *mockLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	m.mu.Unlock()

	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	return m.content, m.err
}
