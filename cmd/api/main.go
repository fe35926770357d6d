package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-engine/internal/api"
	"pantry-engine/internal/core/cache"
	"pantry-engine/internal/core/pantry"
	"pantry-engine/internal/core/planner"
	"pantry-engine/internal/core/pricing"
	"pantry-engine/internal/infrastructure/config"
	"pantry-engine/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.String("match_mode", cfg.Engine.MatchMode),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("price_feed", cfg.Pricing.FeedURL != ""),
	)

	// 備用價格表
	var feed *pricing.FeedClient
	if cfg.Pricing.FeedURL != "" {
		feed = pricing.NewFeedClient(cfg.Pricing.FeedURL, cfg.Pricing.FeedTimeout)
	}
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*cfg.Pricing.FeedTimeout+time.Second)
	prices, err := pricing.Load(loadCtx, cfg.Pricing.Rates, cfg.Pricing.DefaultRate, feed)
	cancelLoad()
	if err != nil {
		common.LogFatal("Failed to build price table", zap.Error(err))
	}

	engine := pantry.NewEngine(pantry.Options{
		BufferRatio:     cfg.Engine.BufferRatio,
		MinMatchScore:   cfg.Engine.MinMatchScore,
		RemovalEpsilon:  cfg.Engine.RemovalEpsilon,
		MatchMode:       pantry.MatchMode(cfg.Engine.MatchMode),
		DefaultCategory: cfg.Engine.DefaultCategory,
	}, nil, prices)

	// 初始化快取
	store, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	svc := planner.NewService(engine, store)

	// 設置路由
	router := api.SetupRouter(cfg, svc, store)
	defer router.Close()

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
