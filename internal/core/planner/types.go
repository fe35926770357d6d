package planner

import (
	"pantry-engine/internal/core/pantry"
	"pantry-engine/internal/core/units"
)

// 操作名稱，用於日誌、指標與快取鍵
const (
	OpAvailability = "availability"
	OpShoppingList = "shopping_list"
	OpConsume      = "consume"
	OpRank         = "rank"
	OpCost         = "cost"
)

// AvailabilityRequest 可用量檢查請求
type AvailabilityRequest struct {
	Pantry       []pantry.Entry       `json:"pantry"`
	Requirements []pantry.Requirement `json:"requirements"`
}

// AvailabilityResponse 可用量檢查結果
type AvailabilityResponse struct {
	Results       []pantry.AvailabilityResult `json:"results"`
	AllSufficient bool                        `json:"all_sufficient"`
}

// ShoppingListRequest 購物清單請求
type ShoppingListRequest struct {
	Pantry       []pantry.Entry             `json:"pantry"`
	Requirements []pantry.Requirement       `json:"requirements"`
	Existing     []pantry.ShoppingListEntry `json:"existing"`
}

// ShoppingListResponse 購物清單結果
type ShoppingListResponse struct {
	Items        []pantry.ShoppingListEntry  `json:"items"`
	Availability []pantry.AvailabilityResult `json:"availability"`
}

// ConsumeRequest 扣庫請求
type ConsumeRequest struct {
	Pantry       []pantry.Entry       `json:"pantry"`
	Requirements []pantry.Requirement `json:"requirements"`
	Servings     float64              `json:"servings"`
}

// RankRequest 食譜排序請求
type RankRequest struct {
	Pantry  []pantry.Entry  `json:"pantry"`
	Recipes []pantry.Recipe `json:"recipes"`
}

// RankResponse 食譜排序結果
type RankResponse struct {
	Matches []pantry.RecipeMatch `json:"matches"`
	Cached  bool                 `json:"cached"`
}

// CostRequest 成本估算請求
type CostRequest struct {
	Pantry       []pantry.Entry       `json:"pantry"`
	Requirements []pantry.Requirement `json:"requirements"`
	Servings     float64              `json:"servings"`
}

// CostResponse 成本估算結果
type CostResponse struct {
	pantry.CostEstimate
	Cached bool `json:"cached"`
}

// UnitsResponse 單位詞彙與換算規則
type UnitsResponse struct {
	Vocabulary  map[string][]units.Unit `json:"vocabulary"`
	Rules       []units.Rule            `json:"rules"`
	Rates       map[string]float64      `json:"rates"`
	DefaultRate float64                 `json:"default_rate"`
}
