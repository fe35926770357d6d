package pricing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"pantry-engine/internal/pkg/common"
)

// FeedPayload 價格來源回傳格式
type FeedPayload struct {
	DefaultRate *float64           `json:"default_rate,omitempty"`
	Rates       map[string]float64 `json:"rates"`
}

// FeedClient 從外部價格來源抓取單價
type FeedClient struct {
	client *resty.Client
	url    string
}

// NewFeedClient 建立價格來源客戶端
func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &FeedClient{
		client: client,
		url:    url,
	}
}

// Fetch 抓取價格資料
func (c *FeedClient) Fetch(ctx context.Context) (*FeedPayload, error) {
	var payload FeedPayload
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode())
	}
	return &payload, nil
}

// Load 建立價格表：內建價格 -> 設定覆寫 -> 價格來源（若有設定）。
// 設定值錯誤時回傳錯誤；價格來源抓取失敗或內容不合法時記錄警告並沿用設定值，不影響啟動。
func Load(ctx context.Context, overrides map[string]float64, defaultRate float64, feed *FeedClient) (*Table, error) {
	configured, err := NewTable(overrides, defaultRate)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return configured, nil
	}

	payload, err := feed.Fetch(ctx)
	if err != nil {
		common.LogWarn("Price feed unavailable, using configured rates",
			zap.Error(err),
			zap.String("url", feed.url),
		)
		return configured, nil
	}

	merged := make(map[string]float64, len(overrides)+len(payload.Rates))
	for u, r := range overrides {
		merged[u] = r
	}
	for u, r := range payload.Rates {
		merged[u] = r
	}
	feedDefault := defaultRate
	if payload.DefaultRate != nil {
		feedDefault = *payload.DefaultRate
	}

	table, err := NewTable(merged, feedDefault)
	if err != nil {
		common.LogWarn("Price feed rejected, using configured rates",
			zap.Error(err),
			zap.String("url", feed.url),
		)
		return configured, nil
	}

	common.LogInfo("Price feed loaded",
		zap.String("url", feed.url),
		zap.Int("rates", len(payload.Rates)),
	)
	return table, nil
}
