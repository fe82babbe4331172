package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pooyash1998/studyplanner/config"
	"github.com/Pooyash1998/studyplanner/internal/api/handler"
	"github.com/Pooyash1998/studyplanner/internal/api/router"
	"github.com/Pooyash1998/studyplanner/internal/planner"
	"github.com/Pooyash1998/studyplanner/internal/repository"
	"github.com/Pooyash1998/studyplanner/internal/service"
	"github.com/Pooyash1998/studyplanner/pkg/database"
	"github.com/Pooyash1998/studyplanner/pkg/llm"
	applogger "github.com/Pooyash1998/studyplanner/pkg/logger"
	"github.com/Pooyash1998/studyplanner/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("generator", cfg.Generator.Provider),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（redis 存储驱动必需；其余情况可选，仅用于限流）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		if cfg.Storage.Driver == "redis" {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		logger.Warn("Redis 连接失败，生成接口将不限流", zap.Error(err))
		rdb = nil
	}

	// 4. 选择存储驱动
	var (
		store repository.KVStore
		db    *gorm.DB
	)
	switch cfg.Storage.Driver {
	case "postgres":
		db, err = database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		logger.Info("数据库连接成功")

		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		store = repository.NewPostgresKVStore(db)
	case "redis":
		store = repository.NewRedisKVStore(rdb)
	default:
		logger.Warn("使用内存存储，重启后数据将丢失")
		store = repository.NewMemoryKVStore()
	}

	// 5. 加载工作区
	repo := repository.NewRepository(store, cfg.Storage.Namespace)
	ws := service.LoadWorkspace(context.Background(), &cfg.Planner, repo.State, logger)

	scorer, err := planner.NewScorer(cfg.Planner.ScoreFormula)
	if err != nil {
		logger.Fatal("评分公式无效", zap.Error(err))
	}
	generator, err := llm.NewClient(&cfg.Generator)
	if err != nil {
		logger.Fatal("初始化方案生成器失败", zap.Error(err))
	}

	// 6. 依赖注入: Workspace → Service → Handler
	svc := service.NewService(cfg, ws, scorer, generator, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	// 写超时需覆盖外部生成调用
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Generator.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if db != nil {
		if closeDB, _ := db.DB(); closeDB != nil {
			closeDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
