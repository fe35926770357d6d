package pantry

import (
	"testing"

	"pantry-engine/internal/core/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCostFromPantry(t *testing.T) {
	e := newTestEngine()
	pantry := []Entry{
		{ID: "p1", Name: "cheese", Quantity: 1, Unit: kilo, UnitCost: costPtr(20)},
		{ID: "p2", Name: "cheese", Quantity: 1000, Unit: gram, UnitCost: costPtr(0.01)},
		{ID: "p3", Name: "cheese", Quantity: 500, Unit: gram},
	}
	reqs := []Requirement{{Name: "cheese", Quantity: 100, Unit: gram}}

	est := e.EstimateCost(reqs, pantry, 2)
	require.Len(t, est.Lines, 1)

	line := est.Lines[0]
	assert.Equal(t, CostSourcePantry, line.Source)
	// (1*20 + 1000*0.01) / 2000 g
	assert.InDelta(t, 0.015, line.CostPerUnit, 1e-12)
	assert.Equal(t, 200.0, line.Quantity)
	assert.InDelta(t, 3.0, line.Cost, 1e-9)
	assert.InDelta(t, 3.0, est.Total, 1e-9)
}

func TestEstimateCostFallback(t *testing.T) {
	prices, err := pricing.NewTable(map[string]float64{"g": 0.02}, 0.5)
	require.NoError(t, err)
	e := NewEngine(DefaultOptions(), nil, prices)

	pantry := []Entry{{ID: "p1", Name: "flour", Quantity: 0, Unit: gram, UnitCost: costPtr(1)}}
	reqs := []Requirement{
		{Name: "flour", Quantity: 250, Unit: gram},
		{Name: "egg", Quantity: 2, Unit: count},
	}

	est := e.EstimateCost(reqs, pantry, 1)
	require.Len(t, est.Lines, 2)

	assert.Equal(t, CostSourceFallback, est.Lines[0].Source)
	assert.InDelta(t, 5.0, est.Lines[0].Cost, 1e-9)
	assert.Equal(t, CostSourceFallback, est.Lines[1].Source)
	assert.Equal(t, prices.Rate(count), est.Lines[1].CostPerUnit)
	assert.InDelta(t, est.Lines[0].Cost+est.Lines[1].Cost, est.Total, 1e-9)
}

func TestEstimateCostNeverNegative(t *testing.T) {
	e := newTestEngine()
	reqs := []Requirement{{Name: "water", Quantity: 0, Unit: liter}}

	est := e.EstimateCost(reqs, nil, 3)
	require.Len(t, est.Lines, 1)
	assert.Zero(t, est.Lines[0].Cost)
	assert.Zero(t, est.Total)
}
