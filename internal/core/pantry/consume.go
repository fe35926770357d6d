package pantry

import (
	"math"
	"sort"
)

// Consume 依到期日先進先出扣除食譜所需庫存。
// 不修改 entries，回傳新的庫存快照；低於 RemovalEpsilon 的條目會被移除。
// 庫存不足時只扣到用完為止，剩餘量列在 Shortfalls。
func (e *Engine) Consume(reqs []Requirement, entries []Entry, servings float64) ConsumptionResult {
	working := make([]Entry, len(entries))
	copy(working, entries)
	removed := make([]bool, len(working))

	result := ConsumptionResult{
		Records:    []ConsumptionRecord{},
		Shortfalls: []Shortfall{},
	}

	for _, req := range reqs {
		remaining := req.Quantity * servings
		if !(remaining > 0) {
			continue
		}

		candidates := make([]int, 0)
		for _, i := range e.matcher.MatchIndices(req, working) {
			if !removed[i] {
				candidates = append(candidates, i)
			}
		}
		sortByExpiry(candidates, working)

		for _, i := range candidates {
			if remaining <= 0 {
				break
			}
			entry := &working[i]
			available, _ := e.converter.ConvertOrRaw(entry.Quantity, entry.Unit, req.Unit)
			if available <= 0 {
				continue
			}

			take := math.Min(available, remaining)
			native := entry.Quantity
			if take < available {
				native, _ = e.converter.ConvertOrRaw(take, req.Unit, entry.Unit)
				native = math.Min(native, entry.Quantity)
			}

			entry.Quantity -= native
			if entry.Quantity < 0 {
				entry.Quantity = 0
			}
			remaining -= take

			rec := ConsumptionRecord{
				EntryID:     entry.ID,
				Requirement: req.Name,
				Quantity:    native,
				Unit:        entry.Unit,
			}
			if entry.Quantity < e.opts.RemovalEpsilon {
				removed[i] = true
				rec.Removed = true
			}
			result.Records = append(result.Records, rec)
		}

		if remaining > e.opts.RemovalEpsilon {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				Name:     req.Name,
				Missing:  remaining,
				Unit:     req.Unit,
				Optional: req.Optional,
			})
		}
	}

	result.Pantry = make([]Entry, 0, len(working))
	for i, entry := range working {
		if !removed[i] {
			result.Pantry = append(result.Pantry, entry)
		}
	}
	return result
}

// sortByExpiry 依到期日由早到晚排序，沒有到期日的排最後
func sortByExpiry(idx []int, entries []Entry) {
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := entries[idx[a]].ExpiresAt, entries[idx[b]].ExpiresAt
		if ea == nil {
			return false
		}
		if eb == nil {
			return true
		}
		return ea.Before(*eb)
	})
}
