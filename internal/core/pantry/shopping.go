package pantry

import "math"

type pendingItem struct {
	entry     ShoppingListEntry
	needed    float64
	mandatory bool
	existing  *ShoppingListEntry
}

// GenerateShoppingList 依可用量結果產生購物清單。
// reqs 與 avail 以索引對齊；同名需求合併為一筆；已存在於 existing 的項目取 max(needed, 既有數量)，
// 新項目數量為 ceil(needed * BufferRatio)。新項目 ID 留空，由呼叫端指派。
func (e *Engine) GenerateShoppingList(reqs []Requirement, avail []AvailabilityResult, existing []ShoppingListEntry) []ShoppingListEntry {
	n := len(reqs)
	if len(avail) < n {
		n = len(avail)
	}

	existingByName := make(map[string]*ShoppingListEntry, len(existing))
	for i := range existing {
		key := normalizeName(existing[i].Name)
		if _, seen := existingByName[key]; !seen {
			existingByName[key] = &existing[i]
		}
	}

	var items []*pendingItem
	byName := make(map[string]*pendingItem)

	for i := 0; i < n; i++ {
		req, res := reqs[i], avail[i]
		if res.Sufficient {
			continue
		}
		needed := res.Required - res.Available
		if needed <= 0 {
			continue
		}

		key := normalizeName(req.Name)
		if item, ok := byName[key]; ok {
			add, _ := e.converter.ConvertOrRaw(needed, req.Unit, item.entry.Unit)
			item.needed += add
			if !req.Optional {
				item.mandatory = true
			}
			continue
		}

		item := &pendingItem{
			entry: ShoppingListEntry{
				Name:     req.Name,
				Unit:     req.Unit,
				Category: e.categoryFor(req),
			},
			needed:    needed,
			mandatory: !req.Optional,
			existing:  existingByName[key],
		}
		byName[key] = item
		items = append(items, item)
	}

	out := make([]ShoppingListEntry, 0, len(items))
	for _, item := range items {
		entry := item.entry
		entry.Priority = PriorityLow
		if item.mandatory {
			entry.Priority = PriorityMedium
		}

		if ex := item.existing; ex != nil {
			have, _ := e.converter.ConvertOrRaw(ex.Quantity, ex.Unit, entry.Unit)
			entry.ID = ex.ID
			entry.Quantity = math.Max(item.needed, have)
			if ex.Category != "" {
				entry.Category = ex.Category
			}
			// 數量沒有增加才保留勾選狀態
			entry.Checked = ex.Checked && entry.Quantity <= have
		} else {
			entry.Quantity = e.buffered(item.needed)
		}
		out = append(out, entry)
	}
	return out
}

// buffered 加上安全係數後無條件進位
func (e *Engine) buffered(needed float64) float64 {
	v := needed * e.opts.BufferRatio
	// 去掉浮點誤差，避免 300*1.1 進位成 331
	if rounded := math.Round(v*1e6) / 1e6; rounded > 0 {
		v = rounded
	}
	return math.Ceil(v)
}

func (e *Engine) categoryFor(req Requirement) string {
	if req.Category != "" {
		return req.Category
	}
	return e.opts.DefaultCategory
}
