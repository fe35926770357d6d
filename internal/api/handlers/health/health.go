package health

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"pantry-engine/internal/core/cache"
	"pantry-engine/internal/infrastructure/config"
	"pantry-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Engine    EngineStatus           `json:"engine"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// EngineStatus 引擎設定摘要
type EngineStatus struct {
	MatchMode     string  `json:"match_mode"`
	BufferRatio   float64 `json:"buffer_ratio"`
	MinMatchScore float64 `json:"min_match_score"`
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg   *config.Config
	store cache.Store
}

// NewHandler 創建健康檢查處理程序，store 可為 nil
func NewHandler(cfg *config.Config, store cache.Store) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Engine: EngineStatus{
			MatchMode:     h.cfg.Engine.MatchMode,
			BufferRatio:   h.cfg.Engine.BufferRatio,
			MinMatchScore: h.cfg.Engine.MinMatchScore,
		},
	}
	if h.store != nil {
		response.Cache = h.store.Stats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，快取後端無法存取時回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.store.Get(ctx, "pantry:readiness"); err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Cache backend not ready", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"cache":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
