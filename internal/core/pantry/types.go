package pantry

import (
	"time"

	"pantry-engine/internal/core/units"
)

// Entry 庫存條目
type Entry struct {
	ID           string     `json:"id" validate:"required"`
	IngredientID string     `json:"ingredient_id,omitempty"`
	Name         string     `json:"name" validate:"required,notblank"`
	Quantity     float64    `json:"quantity" validate:"finite,gte=0"`
	Unit         units.Unit `json:"unit" validate:"unit"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	UnitCost     *float64   `json:"unit_cost,omitempty" validate:"omitempty,finite,gte=0"`
	Location     string     `json:"location,omitempty"`
	Category     string     `json:"category,omitempty"`
}

// Amount 以 Quantity 形式回傳庫存量
func (e Entry) Amount() units.Quantity {
	return units.Quantity{Amount: e.Quantity, Unit: e.Unit}
}

// Requirement 食譜每份所需食材
type Requirement struct {
	Name         string     `json:"name" validate:"required,notblank"`
	IngredientID string     `json:"ingredient_id,omitempty"`
	Quantity     float64    `json:"quantity" validate:"finite,gte=0"`
	Unit         units.Unit `json:"unit" validate:"unit"`
	Optional     bool       `json:"optional"`
	Category     string     `json:"category,omitempty"`
}

// Recipe 候選食譜
type Recipe struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Ingredients []Requirement `json:"ingredients" validate:"dive"`
}

// AvailabilityResult 單一需求的可用量檢查結果
type AvailabilityResult struct {
	Name       string     `json:"name"`
	Required   float64    `json:"required"`
	Available  float64    `json:"available"`
	Unit       units.Unit `json:"unit"`
	Sufficient bool       `json:"sufficient"`
	MatchedIDs []string   `json:"matched_ids"`
	// Degraded 至少一筆庫存因單位無法換算而以原始數值累加
	Degraded bool `json:"degraded,omitempty"`
}

// Priority 購物清單優先順序
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
)

// ShoppingListEntry 購物清單條目
type ShoppingListEntry struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name" validate:"required"`
	Quantity float64    `json:"quantity" validate:"finite,gte=0"`
	Unit     units.Unit `json:"unit"`
	Category string     `json:"category"`
	Priority Priority   `json:"priority"`
	Checked  bool       `json:"checked"`
}

// ConsumptionRecord 單筆扣庫紀錄，數量以該庫存條目自己的單位表示
type ConsumptionRecord struct {
	EntryID     string     `json:"entry_id"`
	Requirement string     `json:"requirement"`
	Quantity    float64    `json:"quantity"`
	Unit        units.Unit `json:"unit"`
	Removed     bool       `json:"removed"`
}

// Shortfall 扣庫後仍未滿足的數量（以需求單位表示）
type Shortfall struct {
	Name     string     `json:"name"`
	Missing  float64    `json:"missing"`
	Unit     units.Unit `json:"unit"`
	Optional bool       `json:"optional"`
}

// ConsumptionResult 扣庫結果：紀錄、更新後的庫存快照與不足項目
type ConsumptionResult struct {
	Records    []ConsumptionRecord `json:"records"`
	Pantry     []Entry             `json:"pantry"`
	Shortfalls []Shortfall         `json:"shortfalls"`
}

// RecipeMatch 食譜配對分數
type RecipeMatch struct {
	Recipe             Recipe   `json:"recipe"`
	Score              float64  `json:"score"`
	AvailableCount     int      `json:"available_count"`
	TotalCount         int      `json:"total_count"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// CostSource 成本來源
type CostSource string

const (
	CostSourcePantry   CostSource = "pantry"
	CostSourceFallback CostSource = "fallback"
)

// CostLine 單一食材成本
type CostLine struct {
	Name        string     `json:"name"`
	Quantity    float64    `json:"quantity"`
	Unit        units.Unit `json:"unit"`
	CostPerUnit float64    `json:"cost_per_unit"`
	Cost        float64    `json:"cost"`
	Source      CostSource `json:"source"`
}

// CostEstimate 食譜成本估算
type CostEstimate struct {
	Total float64    `json:"total"`
	Lines []CostLine `json:"lines"`
}
