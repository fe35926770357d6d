package cache

import (
	"context"
	"fmt"

	"pantry-engine/internal/infrastructure/config"
	"pantry-engine/internal/pkg/common"
)

// Store 結果快取後端
type Store interface {
	// Get 取得快取值，未命中時回傳 common.ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() map[string]interface{}
	Close() error
}

// Key 以操作名稱、命名空間與請求內容的 SHA-256 組成快取鍵。
// namespace 區分產生結果的引擎設定，共用同一後端的不同設定不會互相命中
func Key(operation, namespace string, payload []byte) string {
	return fmt.Sprintf("pantry:%s:%s:%s", operation, namespace, common.HashBytes(payload))
}

// New 依設定建立快取後端，停用時回傳 nil
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return NewManager(&cfg.Cache), nil
	case "redis":
		store, err := NewRedis(&cfg.Cache, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
