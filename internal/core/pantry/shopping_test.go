package pantry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListSkipsSufficientAndOptionalPriority(t *testing.T) {
	e := newTestEngine()
	pantry := []Entry{{ID: "p1", Name: "rice", Quantity: 1, Unit: kilo}}
	reqs := []Requirement{
		{Name: "rice", Quantity: 500, Unit: gram},
		{Name: "parsley", Quantity: 10, Unit: gram, Optional: true, Category: "herbs"},
	}

	list := e.GenerateShoppingList(reqs, e.CheckAvailability(reqs, pantry), nil)
	require.Len(t, list, 1)
	assert.Equal(t, "parsley", list[0].Name)
	assert.Equal(t, PriorityLow, list[0].Priority)
	assert.Equal(t, "herbs", list[0].Category)
	assert.Equal(t, 11.0, list[0].Quantity)
}

func TestShoppingListMergesDuplicateRequirements(t *testing.T) {
	e := newTestEngine()
	reqs := []Requirement{
		{Name: "Sugar", Quantity: 100, Unit: gram, Optional: true},
		{Name: "sugar", Quantity: 0.2, Unit: kilo},
	}

	list := e.GenerateShoppingList(reqs, e.CheckAvailability(reqs, nil), nil)
	require.Len(t, list, 1)
	assert.Equal(t, "Sugar", list[0].Name)
	assert.Equal(t, gram, list[0].Unit)
	assert.Equal(t, 330.0, list[0].Quantity)
	assert.Equal(t, PriorityMedium, list[0].Priority)
}

func TestShoppingListMergesWithExisting(t *testing.T) {
	e := newTestEngine()
	reqs := []Requirement{
		{Name: "milk", Quantity: 2, Unit: liter},
		{Name: "butter", Quantity: 200, Unit: gram},
	}
	existing := []ShoppingListEntry{
		{ID: "s1", Name: "Milk", Quantity: 500, Unit: milli, Category: "dairy", Checked: true},
		{ID: "s2", Name: "butter", Quantity: 1, Unit: kilo, Category: "dairy", Checked: true},
	}

	list := e.GenerateShoppingList(reqs, e.CheckAvailability(reqs, nil), existing)
	require.Len(t, list, 2)

	// 需求量大於既有數量：取 max 並取消勾選
	assert.Equal(t, "s1", list[0].ID)
	assert.Equal(t, 2.0, list[0].Quantity)
	assert.Equal(t, liter, list[0].Unit)
	assert.Equal(t, "dairy", list[0].Category)
	assert.False(t, list[0].Checked)

	// 既有數量足夠：保留數量與勾選狀態
	assert.Equal(t, "s2", list[1].ID)
	assert.InDelta(t, 1000, list[1].Quantity, 1e-9)
	assert.True(t, list[1].Checked)
}

func TestShoppingListMisalignedInputs(t *testing.T) {
	e := newTestEngine()
	reqs := []Requirement{
		{Name: "a", Quantity: 1, Unit: count},
		{Name: "b", Quantity: 1, Unit: count},
	}
	avail := e.CheckAvailability(reqs[:1], nil)

	list := e.GenerateShoppingList(reqs, avail, nil)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Name)
}

func TestBufferedRoundsUp(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, 330.0, e.buffered(300))
	assert.Equal(t, 2.0, e.buffered(1))
	assert.Equal(t, 1.0, e.buffered(0.5))
	assert.Equal(t, 111.0, e.buffered(100.1))
}

func TestBufferedIsAtLeastNeeded(t *testing.T) {
	e := newTestEngine()
	for _, needed := range []float64{0.001, 0.9, 3, 17.5, 299.99, 1000} {
		got := e.buffered(needed)
		assert.GreaterOrEqual(t, got, needed)
		assert.GreaterOrEqual(t, got, needed*1.1-1e-6)
	}
}
