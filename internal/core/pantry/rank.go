package pantry

import "sort"

// RankRecipes 依可由庫存滿足的食材比例為候選食譜排序（高到低，同分保持輸入順序），
// 分數小於等於 MinMatchScore 的食譜不列入
func (e *Engine) RankRecipes(entries []Entry, recipes []Recipe) []RecipeMatch {
	matches := make([]RecipeMatch, 0, len(recipes))
	for _, recipe := range recipes {
		m := e.scoreRecipe(recipe, entries)
		if m.Score <= e.opts.MinMatchScore {
			continue
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func (e *Engine) scoreRecipe(recipe Recipe, entries []Entry) RecipeMatch {
	m := RecipeMatch{
		Recipe:             recipe,
		TotalCount:         len(recipe.Ingredients),
		MissingIngredients: []string{},
	}
	for i, res := range e.CheckAvailability(recipe.Ingredients, entries) {
		if res.Sufficient {
			m.AvailableCount++
			continue
		}
		m.MissingIngredients = append(m.MissingIngredients, recipe.Ingredients[i].Name)
	}
	if m.TotalCount > 0 {
		m.Score = float64(m.AvailableCount) / float64(m.TotalCount)
	}
	return m
}
