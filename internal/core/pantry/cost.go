package pantry

import "math"

// EstimateCost 估算食譜成本。有單價的相符庫存以加權平均計價，否則使用備用單位價格表。
// 不會失敗，每一行成本皆非負。
func (e *Engine) EstimateCost(reqs []Requirement, entries []Entry, servings float64) CostEstimate {
	est := CostEstimate{Lines: make([]CostLine, 0, len(reqs))}

	for _, req := range reqs {
		qty := req.Quantity * servings
		line := CostLine{
			Name:     req.Name,
			Quantity: qty,
			Unit:     req.Unit,
		}

		if perUnit, ok := e.pantryCostPerUnit(req, entries); ok {
			line.CostPerUnit = perUnit
			line.Source = CostSourcePantry
		} else {
			line.CostPerUnit = e.prices.Rate(req.Unit)
			line.Source = CostSourceFallback
		}

		line.Cost = line.CostPerUnit * qty
		if !(line.Cost > 0) || math.IsInf(line.Cost, 0) {
			line.Cost = 0
		}
		est.Total += line.Cost
		est.Lines = append(est.Lines, line)
	}
	return est
}

// pantryCostPerUnit 以需求單位計算的加權單價：總成本 / 總數量
func (e *Engine) pantryCostPerUnit(req Requirement, entries []Entry) (float64, bool) {
	var totalCost, totalQty float64
	for _, i := range e.matcher.MatchIndices(req, entries) {
		entry := entries[i]
		if entry.UnitCost == nil || entry.Quantity <= 0 {
			continue
		}
		qty, _ := e.converter.ConvertOrRaw(entry.Quantity, entry.Unit, req.Unit)
		totalCost += entry.Quantity * *entry.UnitCost
		totalQty += qty
	}
	if totalQty <= 0 {
		return 0, false
	}
	return totalCost / totalQty, true
}
