package units

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		want  Unit
		valid bool
	}{
		{"g", Unit(Gram), true},
		{" Grams ", Unit(Gram), true},
		{"L", Unit(Liter), true},
		{"tablespoons", Unit(Tablespoon), true},
		{"pcs", Unit(Count), true},
		{"fl oz", Unit(FluidOunce), true},
		{"handful", Unit("handful"), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalTextNormalizes(t *testing.T) {
	var u Unit
	require.NoError(t, u.UnmarshalText([]byte("Kilograms")))
	assert.Equal(t, Unit(Kilogram), u)
	assert.Equal(t, CategoryWeight, u.Category())
}

func TestConvertIdentity(t *testing.T) {
	faker := gofakeit.New(7)
	for unit := range vocabulary {
		q := faker.Float64Range(0, 10000)
		got, ok := Convert(q, unit, unit)
		require.True(t, ok)
		assert.Equal(t, q, got)
	}
	// 未知單位同樣適用
	got, ok := Convert(3, Unit("handful"), Unit("handful"))
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)
}

func TestConvertDirectAndReverse(t *testing.T) {
	got, ok := Convert(2, Unit(Kilogram), Unit(Gram))
	require.True(t, ok)
	assert.InDelta(t, 2000, got, 1e-9)

	got, ok = Convert(500, Unit(Gram), Unit(Kilogram))
	require.True(t, ok)
	assert.InDelta(t, 0.5, got, 1e-12)

	got, ok = Convert(1, Unit(Cup), Unit(Tablespoon))
	require.True(t, ok)
	assert.InDelta(t, 16, got, 1e-12)

	got, ok = Convert(24, Unit(Count), Unit(Dozen))
	require.True(t, ok)
	assert.InDelta(t, 2, got, 1e-12)
}

func TestConvertReciprocal(t *testing.T) {
	faker := gofakeit.New(42)
	for _, r := range Default().Rules() {
		q := faker.Float64Range(0.001, 5000)
		forward, ok := Convert(q, r.From, r.To)
		require.True(t, ok)
		back, ok := Convert(forward, r.To, r.From)
		require.True(t, ok)
		assert.InDelta(t, q, back, q*1e-9, "%s <-> %s", r.From, r.To)
	}
}

func TestConvertSingleHopOnly(t *testing.T) {
	// mg -> g -> kg 需要兩步
	_, ok := Convert(1000000, Unit(Milligram), Unit(Kilogram))
	assert.False(t, ok)

	// 跨類別
	_, ok = Convert(1, Unit(Gram), Unit(Liter))
	assert.False(t, ok)
	_, ok = Convert(1, Unit(Liter), Unit(Count))
	assert.False(t, ok)
}

func TestConvertOrRaw(t *testing.T) {
	c := NewConverter(nil)
	v, converted := c.ConvertOrRaw(3, Unit(Count), Unit(Liter))
	assert.False(t, converted)
	assert.Equal(t, 3.0, v)

	q, ok := c.ConvertQuantity(Quantity{Amount: 1, Unit: Unit(Liter)}, Unit(Milliliter))
	require.True(t, ok)
	assert.Equal(t, Quantity{Amount: 1000, Unit: Unit(Milliliter)}, q)
}

func TestNewTableRejectsBadRules(t *testing.T) {
	_, err := NewTable(WeightRule(Kilogram, Gram, 1000), WeightRule(Gram, Kilogram, 0.001))
	assert.ErrorContains(t, err, "conflicts")

	_, err = NewTable(WeightRule(Kilogram, Gram, 1000), WeightRule(Kilogram, Gram, 1000))
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewTable(VolumeRule(Cup, Milliliter, 0))
	assert.Error(t, err)

	_, err = NewTable(CountRule(Count, Count, 1))
	assert.Error(t, err)

	assert.Panics(t, func() { MustTable(VolumeRule(Cup, Milliliter, -1)) })
}

func TestDefaultTableRulesAreSameCategory(t *testing.T) {
	for _, r := range Default().Rules() {
		assert.Equal(t, r.From.Category(), r.To.Category(), "%s -> %s", r.From, r.To)
		assert.NotEqual(t, CategoryUnknown, r.From.Category())
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	rules := Default().Rules()
	rules[0].Factor = -1
	f, ok := Default().Factor(rules[0].From, rules[0].To)
	require.True(t, ok)
	assert.Greater(t, f, 0.0)
}
