package units

import (
	"fmt"
	"math"
)

// Rule 單向換算規則：to 數量 = from 數量 * Factor
type Rule struct {
	From   Unit    `json:"from"`
	To     Unit    `json:"to"`
	Factor float64 `json:"factor"`
}

// RuleSpec 經過類別檢查的規則，只能由同類別建構函式產生
type RuleSpec struct {
	rule Rule
}

// WeightRule 重量換算規則
func WeightRule(from, to WeightUnit, factor float64) RuleSpec {
	return RuleSpec{rule: Rule{From: Unit(from), To: Unit(to), Factor: factor}}
}

// VolumeRule 容量換算規則
func VolumeRule(from, to VolumeUnit, factor float64) RuleSpec {
	return RuleSpec{rule: Rule{From: Unit(from), To: Unit(to), Factor: factor}}
}

// CountRule 計數換算規則
func CountRule(from, to CountUnit, factor float64) RuleSpec {
	return RuleSpec{rule: Rule{From: Unit(from), To: Unit(to), Factor: factor}}
}

type pair struct {
	from, to Unit
}

// Table 單位換算表，只存正向規則，建立後不可修改
type Table struct {
	rules []Rule
	index map[pair]float64
}

// NewTable 建立換算表，拒絕非正係數、自我換算以及重複或衝突的單位對
func NewTable(specs ...RuleSpec) (*Table, error) {
	t := &Table{
		rules: make([]Rule, 0, len(specs)),
		index: make(map[pair]float64, len(specs)),
	}
	for _, spec := range specs {
		r := spec.rule
		if r.Factor <= 0 || math.IsNaN(r.Factor) || math.IsInf(r.Factor, 0) {
			return nil, fmt.Errorf("invalid factor %v for %s -> %s", r.Factor, r.From, r.To)
		}
		if r.From == r.To {
			return nil, fmt.Errorf("rule %s -> %s converts a unit to itself", r.From, r.To)
		}
		if _, dup := t.index[pair{r.From, r.To}]; dup {
			return nil, fmt.Errorf("duplicate rule %s -> %s", r.From, r.To)
		}
		if _, rev := t.index[pair{r.To, r.From}]; rev {
			return nil, fmt.Errorf("rule %s -> %s conflicts with existing reverse rule", r.From, r.To)
		}
		t.index[pair{r.From, r.To}] = r.Factor
		t.rules = append(t.rules, r)
	}
	return t, nil
}

// MustTable 同 NewTable，失敗時 panic
func MustTable(specs ...RuleSpec) *Table {
	t, err := NewTable(specs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules 回傳規則副本
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Factor 查詢單步換算係數：先找正向規則，再由反向規則推導 1/factor
func (t *Table) Factor(from, to Unit) (float64, bool) {
	if from == to {
		return 1, true
	}
	if f, ok := t.index[pair{from, to}]; ok {
		return f, true
	}
	if f, ok := t.index[pair{to, from}]; ok {
		return 1 / f, true
	}
	return 0, false
}

// defaultTable 全域換算表，程式啟動時建立一次
var defaultTable = MustTable(
	WeightRule(Kilogram, Gram, 1000),
	WeightRule(Gram, Milligram, 1000),
	WeightRule(Pound, Gram, 453.59237),
	WeightRule(Ounce, Gram, 28.349523125),
	WeightRule(Pound, Ounce, 16),
	WeightRule(Kilogram, Pound, 2.20462262185),

	VolumeRule(Liter, Milliliter, 1000),
	VolumeRule(Cup, Milliliter, 236.5882365),
	VolumeRule(Tablespoon, Milliliter, 14.78676478125),
	VolumeRule(Teaspoon, Milliliter, 4.92892159375),
	VolumeRule(FluidOunce, Milliliter, 29.5735295625),
	VolumeRule(Liter, Cup, 4.22675283773),
	VolumeRule(Cup, Tablespoon, 16),
	VolumeRule(Cup, Teaspoon, 48),
	VolumeRule(Tablespoon, Teaspoon, 3),
	VolumeRule(FluidOunce, Tablespoon, 2),
	VolumeRule(Teaspoon, Pinch, 16),

	CountRule(Dozen, Count, 12),
)

// Default 回傳全域換算表
func Default() *Table {
	return defaultTable
}
