package planner

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pantry-engine/internal/core/cache"
	"pantry-engine/internal/core/pantry"
	"pantry-engine/internal/core/units"
	"pantry-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 對帳服務：驗證輸入後呼叫引擎，並負責日誌、指標與結果快取
type Service struct {
	engine      *pantry.Engine
	cache       cache.Store
	fingerprint string
}

// NewService 創建對帳服務，store 可為 nil
func NewService(engine *pantry.Engine, store cache.Store) *Service {
	return &Service{
		engine:      engine,
		cache:       store,
		fingerprint: engineFingerprint(engine),
	}
}

// engineFingerprint 影響計算結果的引擎設定摘要，作為快取命名空間
func engineFingerprint(engine *pantry.Engine) string {
	state := struct {
		Options     pantry.Options     `json:"options"`
		Rules       []units.Rule       `json:"rules"`
		Rates       map[string]float64 `json:"rates"`
		DefaultRate float64            `json:"default_rate"`
	}{
		Options:     engine.Options(),
		Rules:       engine.Converter().Table().Rules(),
		Rates:       engine.Prices().Snapshot(),
		DefaultRate: engine.Prices().DefaultRate(),
	}
	data, err := common.CanonicalJSON(state)
	if err != nil {
		common.LogWarn("引擎設定摘要產生失敗", zap.Error(err))
		return common.GenerateUUID()
	}
	return common.HashBytes(data)[:16]
}

// Engine 回傳底層引擎
func (s *Service) Engine() *pantry.Engine {
	return s.engine
}

// CheckAvailability 檢查需求是否可由庫存滿足
func (s *Service) CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error) {
	start := time.Now()
	if err := validateAll(
		func() error { return pantry.ValidateEntries(req.Pantry) },
		func() error { return pantry.ValidateRequirements(req.Requirements) },
	); err != nil {
		return nil, s.fail(OpAvailability, err)
	}

	results := s.engine.CheckAvailability(req.Requirements, req.Pantry)
	resp := &AvailabilityResponse{Results: results, AllSufficient: true}
	for _, r := range results {
		if !r.Sufficient {
			resp.AllSufficient = false
		}
		if r.Degraded {
			degradedTotal.Inc()
		}
	}

	s.done(ctx, OpAvailability, start,
		zap.Int("requirement_count", len(req.Requirements)),
		zap.Bool("all_sufficient", resp.AllSufficient),
	)
	return resp, nil
}

// GenerateShoppingList 產生購物清單，新條目指派 UUID
func (s *Service) GenerateShoppingList(ctx context.Context, req *ShoppingListRequest) (*ShoppingListResponse, error) {
	start := time.Now()
	if err := validateAll(
		func() error { return pantry.ValidateEntries(req.Pantry) },
		func() error { return pantry.ValidateRequirements(req.Requirements) },
		func() error { return pantry.ValidateShoppingList(req.Existing) },
	); err != nil {
		return nil, s.fail(OpShoppingList, err)
	}

	avail := s.engine.CheckAvailability(req.Requirements, req.Pantry)
	items := s.engine.GenerateShoppingList(req.Requirements, avail, req.Existing)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = common.GenerateUUID()
		}
	}

	s.done(ctx, OpShoppingList, start,
		zap.Int("requirement_count", len(req.Requirements)),
		zap.Int("items", len(items)),
	)
	return &ShoppingListResponse{Items: items, Availability: avail}, nil
}

// Consume 依 FIFO 扣除庫存，回傳新的庫存快照
func (s *Service) Consume(ctx context.Context, req *ConsumeRequest) (*pantry.ConsumptionResult, error) {
	start := time.Now()
	if err := validateAll(
		func() error { return pantry.ValidateServings(req.Servings) },
		func() error { return pantry.ValidateEntries(req.Pantry) },
		func() error { return pantry.ValidateRequirements(req.Requirements) },
	); err != nil {
		return nil, s.fail(OpConsume, err)
	}

	result := s.engine.Consume(req.Requirements, req.Pantry, req.Servings)
	if n := len(result.Shortfalls); n > 0 {
		shortfallsTotal.Add(float64(n))
		common.LogWarn("庫存不足，部分需求未扣除",
			zap.Int("shortfalls", n),
			zap.String("request_id", common.RequestIDFromContext(ctx)),
		)
	}

	s.done(ctx, OpConsume, start,
		zap.Int("records", len(result.Records)),
		zap.Int("remaining_entries", len(result.Pantry)),
	)
	return &result, nil
}

// RankRecipes 依庫存滿足比例排序候選食譜
func (s *Service) RankRecipes(ctx context.Context, req *RankRequest) (*RankResponse, error) {
	start := time.Now()
	if err := validateAll(
		func() error { return pantry.ValidateEntries(req.Pantry) },
		func() error { return pantry.ValidateRecipes(req.Recipes) },
	); err != nil {
		return nil, s.fail(OpRank, err)
	}

	key := s.cacheKey(OpRank, req)
	var matches []pantry.RecipeMatch
	if s.lookup(ctx, OpRank, key, &matches) {
		s.done(ctx, OpRank, start, zap.Bool("cached", true))
		return &RankResponse{Matches: matches, Cached: true}, nil
	}

	matches = s.engine.RankRecipes(req.Pantry, req.Recipes)
	s.store(ctx, OpRank, key, matches)

	s.done(ctx, OpRank, start,
		zap.Int("recipe_count", len(req.Recipes)),
		zap.Int("matches", len(matches)),
	)
	return &RankResponse{Matches: matches}, nil
}

// EstimateCost 估算食譜成本
func (s *Service) EstimateCost(ctx context.Context, req *CostRequest) (*CostResponse, error) {
	start := time.Now()
	if err := validateAll(
		func() error { return pantry.ValidateServings(req.Servings) },
		func() error { return pantry.ValidateEntries(req.Pantry) },
		func() error { return pantry.ValidateRequirements(req.Requirements) },
	); err != nil {
		return nil, s.fail(OpCost, err)
	}

	key := s.cacheKey(OpCost, req)
	var est pantry.CostEstimate
	if s.lookup(ctx, OpCost, key, &est) {
		s.done(ctx, OpCost, start, zap.Bool("cached", true))
		return &CostResponse{CostEstimate: est, Cached: true}, nil
	}

	est = s.engine.EstimateCost(req.Requirements, req.Pantry, req.Servings)
	s.store(ctx, OpCost, key, est)

	s.done(ctx, OpCost, start,
		zap.Int("lines", len(est.Lines)),
		zap.Float64("total", est.Total),
	)
	return &CostResponse{CostEstimate: est}, nil
}

// Units 回傳單位詞彙、換算規則與備用價格表
func (s *Service) Units() *UnitsResponse {
	prices := s.engine.Prices()
	return &UnitsResponse{
		Vocabulary:  units.Vocabulary(),
		Rules:       s.engine.Converter().Table().Rules(),
		Rates:       prices.Snapshot(),
		DefaultRate: prices.DefaultRate(),
	}
}

// CacheStats 回傳快取統計，未啟用快取時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

func validateAll(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// fail 記錄驗證失敗並回傳原錯誤
func (s *Service) fail(op string, err error) error {
	outcome := "error"
	if common.IsValidationError(err) {
		outcome = "invalid"
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()
	common.LogWarn("請求驗證失敗",
		zap.String("operation", op),
		zap.Error(err),
	)
	return err
}

func (s *Service) done(ctx context.Context, op string, start time.Time, fields ...zap.Field) {
	elapsed := time.Since(start)
	operationsTotal.WithLabelValues(op, "ok").Inc()
	operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	common.LogOperation(op, elapsed, common.RequestIDFromContext(ctx), fields...)
}

// cacheKey 請求無法序列化時回傳空字串，視同不快取
func (s *Service) cacheKey(op string, req interface{}) string {
	if s.cache == nil {
		return ""
	}
	payload, err := common.CanonicalJSON(req)
	if err != nil {
		common.LogWarn("快取鍵產生失敗", zap.String("operation", op), zap.Error(err))
		return ""
	}
	return cache.Key(op, s.fingerprint, payload)
}

// lookup 快取失敗只記錄，不影響請求
func (s *Service) lookup(ctx context.Context, op, key string, v interface{}) bool {
	if s.cache == nil || key == "" {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("快取讀取失敗", zap.String("operation", op), zap.Error(err))
		}
		cacheLookups.WithLabelValues(op, "miss").Inc()
		common.LogCacheMiss(op)
		return false
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("operation", op), zap.Error(err))
		cacheLookups.WithLabelValues(op, "miss").Inc()
		return false
	}
	cacheLookups.WithLabelValues(op, "hit").Inc()
	common.LogCacheHit(op)
	return true
}

func (s *Service) store(ctx context.Context, op, key string, v interface{}) {
	if s.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		common.LogWarn("快取序列化失敗", zap.String("operation", op), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		common.LogWarn("快取寫入失敗", zap.String("operation", op), zap.Error(err))
	}
}
