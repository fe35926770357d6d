package pantry

import (
	"fmt"
	"testing"

	"pantry-engine/internal/core/units"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

var fakeNames = []string{"tomato", "onion", "garlic", "milk", "flour", "rice", "butter", "egg"}

var fakeUnits = []units.Unit{gram, kilo, milli, liter, cup, count}

func fakePantry(f *gofakeit.Faker, n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		e := Entry{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fakeNames[f.Number(0, len(fakeNames)-1)],
			Quantity: f.Float64Range(0, 1000),
			Unit:     fakeUnits[f.Number(0, len(fakeUnits)-1)],
		}
		if f.Bool() {
			d := day(f.Number(1, 28))
			e.ExpiresAt = d
		}
		entries = append(entries, e)
	}
	return entries
}

func fakeRequirements(f *gofakeit.Faker, n int) []Requirement {
	reqs := make([]Requirement, 0, n)
	for i := 0; i < n; i++ {
		reqs = append(reqs, Requirement{
			Name:     fakeNames[f.Number(0, len(fakeNames)-1)],
			Quantity: f.Float64Range(0, 800),
			Unit:     fakeUnits[f.Number(0, len(fakeUnits)-1)],
			Optional: f.Bool(),
		})
	}
	return reqs
}

func TestPropertyConsumeNeverNegative(t *testing.T) {
	f := gofakeit.New(42)
	e := newTestEngine()

	for round := 0; round < 200; round++ {
		pantry := fakePantry(f, f.Number(0, 12))
		reqs := fakeRequirements(f, f.Number(1, 6))
		servings := f.Float64Range(0.5, 4)

		res := e.Consume(reqs, pantry, servings)

		assert.LessOrEqual(t, len(res.Pantry), len(pantry))
		for _, entry := range res.Pantry {
			assert.GreaterOrEqual(t, entry.Quantity, 0.0)
		}
		for _, rec := range res.Records {
			assert.GreaterOrEqual(t, rec.Quantity, 0.0)
		}
	}
}

func TestPropertyAvailabilityMonotonic(t *testing.T) {
	f := gofakeit.New(7)
	e := newTestEngine()

	for round := 0; round < 200; round++ {
		pantry := fakePantry(f, f.Number(0, 10))
		reqs := fakeRequirements(f, f.Number(1, 5))

		before := e.CheckAvailability(reqs, pantry)

		// 增加庫存量不會讓可用量減少
		grown := make([]Entry, len(pantry))
		copy(grown, pantry)
		for i := range grown {
			grown[i].Quantity += f.Float64Range(0, 100)
		}
		after := e.CheckAvailability(reqs, grown)

		for i := range before {
			assert.GreaterOrEqual(t, after[i].Available, before[i].Available)
			if before[i].Sufficient {
				assert.True(t, after[i].Sufficient)
			}
		}
	}
}

func TestPropertyShoppingCoversShortfall(t *testing.T) {
	f := gofakeit.New(99)
	e := newTestEngine()

	for round := 0; round < 200; round++ {
		pantry := fakePantry(f, f.Number(0, 10))
		reqs := fakeRequirements(f, 1)
		avail := e.CheckAvailability(reqs, pantry)

		list := e.GenerateShoppingList(reqs, avail, nil)
		if avail[0].Sufficient || avail[0].Required-avail[0].Available <= 0 {
			assert.Empty(t, list)
			continue
		}
		needed := avail[0].Required - avail[0].Available
		if assert.Len(t, list, 1) {
			assert.GreaterOrEqual(t, list[0].Quantity, needed)
		}
	}
}

func TestPropertyScoreBounds(t *testing.T) {
	f := gofakeit.New(3)
	e := newTestEngine()

	for round := 0; round < 100; round++ {
		pantry := fakePantry(f, f.Number(0, 10))
		recipes := make([]Recipe, 0, 5)
		for i := 0; i < 5; i++ {
			recipes = append(recipes, Recipe{ID: fmt.Sprintf("r%d", i), Ingredients: fakeRequirements(f, f.Number(0, 6))})
		}

		matches := e.RankRecipes(pantry, recipes)
		for i, m := range matches {
			assert.Greater(t, m.Score, 0.3)
			assert.LessOrEqual(t, m.Score, 1.0)
			assert.Equal(t, m.TotalCount-m.AvailableCount, len(m.MissingIngredients))
			if i > 0 {
				assert.GreaterOrEqual(t, matches[i-1].Score, m.Score)
			}
		}
	}
}
