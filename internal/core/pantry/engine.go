package pantry

import (
	"pantry-engine/internal/core/pricing"
	"pantry-engine/internal/core/units"
)

// Options 引擎參數
type Options struct {
	// BufferRatio 新增購物清單條目的安全係數
	BufferRatio float64
	// MinMatchScore 分數小於等於此值的食譜不列入推薦
	MinMatchScore float64
	// RemovalEpsilon 扣庫後低於此值的條目自快照移除
	RemovalEpsilon  float64
	MatchMode       MatchMode
	DefaultCategory string
}

// DefaultOptions 預設參數
func DefaultOptions() Options {
	return Options{
		BufferRatio:     1.1,
		MinMatchScore:   0.3,
		RemovalEpsilon:  0.001,
		MatchMode:       MatchSubstring,
		DefaultCategory: "other",
	}
}

// Engine 庫存與食譜對帳引擎。純計算、無狀態，可在多個 goroutine 間共用
type Engine struct {
	opts      Options
	converter *units.Converter
	matcher   Matcher
	prices    *pricing.Table
}

// NewEngine 建立引擎；table 與 prices 為 nil 時使用預設值
func NewEngine(opts Options, table *units.Table, prices *pricing.Table) *Engine {
	def := DefaultOptions()
	if opts.BufferRatio <= 0 {
		opts.BufferRatio = def.BufferRatio
	}
	if opts.RemovalEpsilon <= 0 {
		opts.RemovalEpsilon = def.RemovalEpsilon
	}
	if opts.MatchMode == "" {
		opts.MatchMode = def.MatchMode
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = def.DefaultCategory
	}
	if prices == nil {
		prices = pricing.Default()
	}
	return &Engine{
		opts:      opts,
		converter: units.NewConverter(table),
		matcher:   NewMatcher(opts.MatchMode),
		prices:    prices,
	}
}

// Options 回傳引擎參數
func (e *Engine) Options() Options {
	return e.opts
}

// Converter 回傳引擎使用的換算器
func (e *Engine) Converter() *units.Converter {
	return e.converter
}

// Prices 回傳備用價格表
func (e *Engine) Prices() *pricing.Table {
	return e.prices
}
