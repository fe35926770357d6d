package pricing

import (
	"fmt"
	"math"

	"pantry-engine/internal/core/units"
)

// DefaultRate 單位不在價格表時使用的通用單價
const DefaultRate = 1.0

// defaultRates 各單位的預估單價（每單位金額）
var defaultRates = map[units.Unit]float64{
	units.Unit(units.Milligram): 0.00001,
	units.Unit(units.Gram):      0.01,
	units.Unit(units.Kilogram):  10,
	units.Unit(units.Ounce):     0.28,
	units.Unit(units.Pound):     4.5,

	units.Unit(units.Milliliter): 0.005,
	units.Unit(units.Liter):      5,
	units.Unit(units.FluidOunce): 0.15,
	units.Unit(units.Cup):        1.2,
	units.Unit(units.Tablespoon): 0.08,
	units.Unit(units.Teaspoon):   0.03,
	units.Unit(units.Pinch):      0.01,

	units.Unit(units.Count): 0.5,
	units.Unit(units.Dozen): 6,
}

// Table 備用單價表，建立後唯讀
type Table struct {
	rates       map[units.Unit]float64
	defaultRate float64
}

// NewTable 以預設價格為基礎套用覆寫值；覆寫的單位必須屬於詞彙表且價格非負
func NewTable(overrides map[string]float64, defaultRate float64) (*Table, error) {
	if math.IsNaN(defaultRate) || math.IsInf(defaultRate, 0) || defaultRate < 0 {
		return nil, fmt.Errorf("invalid default rate %v", defaultRate)
	}
	rates := make(map[units.Unit]float64, len(defaultRates)+len(overrides))
	for u, r := range defaultRates {
		rates[u] = r
	}
	for raw, r := range overrides {
		u, ok := units.Parse(raw)
		if !ok {
			return nil, fmt.Errorf("unknown unit %q in price table", raw)
		}
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return nil, fmt.Errorf("invalid rate %v for unit %q", r, raw)
		}
		rates[u] = r
	}
	return &Table{rates: rates, defaultRate: defaultRate}, nil
}

var defaultTable = &Table{rates: defaultRates, defaultRate: DefaultRate}

// Default 回傳內建價格表
func Default() *Table {
	return defaultTable
}

// Rate 查詢單位單價，找不到時回傳通用單價
func (t *Table) Rate(u units.Unit) float64 {
	if r, ok := t.rates[u]; ok {
		return r
	}
	return t.defaultRate
}

// DefaultRate 回傳通用單價
func (t *Table) DefaultRate() float64 {
	return t.defaultRate
}

// Snapshot 回傳價格表副本，供 API 顯示
func (t *Table) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for u, r := range t.rates {
		out[string(u)] = r
	}
	return out
}
