package pantry

// CheckAvailability 逐項彙總庫存可用量（換算為需求單位）並判斷是否足夠，結果順序與 reqs 相同
func (e *Engine) CheckAvailability(reqs []Requirement, entries []Entry) []AvailabilityResult {
	results := make([]AvailabilityResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, e.checkOne(req, entries))
	}
	return results
}

func (e *Engine) checkOne(req Requirement, entries []Entry) AvailabilityResult {
	res := AvailabilityResult{
		Name:       req.Name,
		Required:   req.Quantity,
		Unit:       req.Unit,
		MatchedIDs: []string{},
	}

	idx := e.matcher.MatchIndices(req, entries)
	if len(idx) == 0 {
		return res
	}

	for _, i := range idx {
		entry := entries[i]
		// 無法換算時以原始數值累加
		v, converted := e.converter.ConvertOrRaw(entry.Quantity, entry.Unit, req.Unit)
		if !converted {
			res.Degraded = true
		}
		res.Available += v
		res.MatchedIDs = append(res.MatchedIDs, entry.ID)
	}
	res.Sufficient = res.Available >= res.Required
	return res
}
