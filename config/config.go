package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BodyLimit    int64      `mapstructure:"body_limit"`
	CORS         CORSConfig `mapstructure:"cors"`
	GenerateRate RateConfig `mapstructure:"generate_rate"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateConfig 滑动窗口限流配置
type RateConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 状态持久化配置
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`    // postgres | redis | memory
	Namespace string `mapstructure:"namespace"` // 键前缀，如 studywise-modules
}

// PlannerConfig 学习计划规则配置
type PlannerConfig struct {
	SemesterCount        int    `mapstructure:"semester_count"`
	DefaultHardnessLimit int    `mapstructure:"default_hardness_limit"`
	DefaultFirstSemester string `mapstructure:"default_first_semester"`
	ScoreFormula         string `mapstructure:"score_formula"`
}

// GeneratorConfig 外部计划生成配置
type GeneratorConfig struct {
	Provider     string        `mapstructure:"provider"` // openai | gemini
	Endpoint     string        `mapstructure:"endpoint"`
	Model        string        `mapstructure:"model"`
	Temperature  float64       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SystemPrompt string        `mapstructure:"system_prompt"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.generate_rate.limit", 5)
	v.SetDefault("server.generate_rate.window", "1m")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "studywise")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.namespace", "studywise")

	v.SetDefault("planner.semester_count", 4)
	v.SetDefault("planner.default_hardness_limit", 5)
	v.SetDefault("planner.default_first_semester", "Winter")
	v.SetDefault("planner.score_formula", "100 - 10 * hardness_spread - 25 * over_budget - 5 * unassigned_modules")

	v.SetDefault("generator.provider", "openai")
	v.SetDefault("generator.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("generator.model", "gpt-4o")
	v.SetDefault("generator.temperature", 0.7)
	v.SetDefault("generator.timeout", "90s")
	v.SetDefault("generator.system_prompt", "You are an academic advisor AI that creates optimal study plans.")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("STUDYWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Storage.Driver {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("配置校验失败: storage.driver 仅支持 postgres / redis / memory，实际为 %q", c.Storage.Driver)
	}
	if c.Storage.Namespace == "" {
		return fmt.Errorf("配置校验失败: storage.namespace 不能为空")
	}
	if c.Planner.SemesterCount <= 0 {
		return fmt.Errorf("配置校验失败: planner.semester_count 必须大于 0")
	}
	if c.Planner.DefaultHardnessLimit <= 0 {
		return fmt.Errorf("配置校验失败: planner.default_hardness_limit 必须大于 0")
	}
	if c.Planner.DefaultFirstSemester != "Winter" && c.Planner.DefaultFirstSemester != "Summer" {
		return fmt.Errorf("配置校验失败: planner.default_first_semester 仅支持 Winter / Summer")
	}
	if _, err := govaluate.NewEvaluableExpression(c.Planner.ScoreFormula); err != nil {
		return fmt.Errorf("配置校验失败: planner.score_formula 无法解析: %w", err)
	}
	switch c.Generator.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("配置校验失败: generator.provider 仅支持 openai / gemini")
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("配置校验失败: generator.timeout 必须大于 0")
	}
	return nil
}
