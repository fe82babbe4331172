package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: memory
planner:
  semester_count: 6
generator:
  provider: gemini
  model: gemini-1.5-flash
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.Storage.Namespace != "studywise" {
		t.Errorf("存储配置不符: %+v", cfg.Storage)
	}
	if cfg.Planner.SemesterCount != 6 || cfg.Planner.DefaultHardnessLimit != 5 {
		t.Errorf("规划配置不符: %+v", cfg.Planner)
	}
	if cfg.Generator.Provider != "gemini" || cfg.Generator.Timeout != 90*time.Second {
		t.Errorf("生成器配置不符: %+v", cfg.Generator)
	}
	if cfg.Server.GenerateRate.Window != time.Minute {
		t.Errorf("限流窗口应为 1m，实际 %v", cfg.Server.GenerateRate.Window)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: postgres\n")
	t.Setenv("STUDYWISE_STORAGE_DRIVER", "redis")
	t.Setenv("STUDYWISE_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Storage.Driver != "redis" || cfg.Server.Port != 9090 {
		t.Errorf("环境变量未覆盖配置文件: driver=%s port=%d", cfg.Storage.Driver, cfg.Server.Port)
	}
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Storage:   StorageConfig{Driver: "memory", Namespace: "studywise"},
		Planner:   PlannerConfig{SemesterCount: 4, DefaultHardnessLimit: 5, DefaultFirstSemester: "Winter", ScoreFormula: "100 - unassigned_modules"},
		Generator: GeneratorConfig{Provider: "openai", Timeout: time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"合法", func(*Config) {}, ""},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"未知驱动", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver"},
		{"空命名空间", func(c *Config) { c.Storage.Namespace = "" }, "storage.namespace"},
		{"学期数为0", func(c *Config) { c.Planner.SemesterCount = 0 }, "semester_count"},
		{"首学期类型非法", func(c *Config) { c.Planner.DefaultFirstSemester = "Spring" }, "default_first_semester"},
		{"公式无法解析", func(c *Config) { c.Planner.ScoreFormula = "(1 +" }, "score_formula"},
		{"未知生成器", func(c *Config) { c.Generator.Provider = "claude" }, "generator.provider"},
		{"超时为0", func(c *Config) { c.Generator.Timeout = 0 }, "generator.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("期望通过，实际 %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("期望错误包含 %q，实际 %v", tt.wantErr, err)
			}
		})
	}
}
