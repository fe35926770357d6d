package pantry

import "strings"

// MatchMode 食材配對模式
type MatchMode string

const (
	// MatchSubstring 名稱雙向子字串包含（不分大小寫）
	MatchSubstring MatchMode = "substring"
	// MatchIdentity 先以 ingredient_id 精確比對，找不到才退回子字串比對
	MatchIdentity MatchMode = "identity"
)

// Valid 是否為支援的模式
func (m MatchMode) Valid() bool {
	return m == MatchSubstring || m == MatchIdentity
}

// Matcher 將需求食材名稱對應到庫存條目
type Matcher struct {
	mode MatchMode
}

// NewMatcher 建立配對器
func NewMatcher(mode MatchMode) Matcher {
	if !mode.Valid() {
		mode = MatchSubstring
	}
	return Matcher{mode: mode}
}

// Match 回傳符合的庫存條目，保持輸入順序
func (m Matcher) Match(req Requirement, entries []Entry) []Entry {
	idx := m.MatchIndices(req, entries)
	out := make([]Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, entries[i])
	}
	return out
}

// MatchIndices 回傳符合條目在 entries 中的索引
func (m Matcher) MatchIndices(req Requirement, entries []Entry) []int {
	if m.mode == MatchIdentity && req.IngredientID != "" {
		var byID []int
		for i, e := range entries {
			if e.IngredientID == req.IngredientID {
				byID = append(byID, i)
			}
		}
		if len(byID) > 0 {
			return byID
		}
		// 退回子字串比對，只看沒有 ingredient_id 的舊資料
		var legacy []int
		for i, e := range entries {
			if e.IngredientID == "" && namesMatch(req.Name, e.Name) {
				legacy = append(legacy, i)
			}
		}
		return legacy
	}

	var out []int
	for i, e := range entries {
		if namesMatch(req.Name, e.Name) {
			out = append(out, i)
		}
	}
	return out
}

// namesMatch 任一方包含另一方即視為同一食材
func namesMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
