package units

// Converter 單位換算器，只做單步換算，不會經由基準單位串接
type Converter struct {
	table *Table
}

// NewConverter 建立換算器，table 為 nil 時使用全域換算表
func NewConverter(table *Table) *Converter {
	if table == nil {
		table = defaultTable
	}
	return &Converter{table: table}
}

// Table 回傳使用中的換算表
func (c *Converter) Table() *Table {
	return c.table
}

// Convert 換算數量；ok 為 false 表示無法換算（呼叫端應視為單位未知，而非錯誤）
func (c *Converter) Convert(amount float64, from, to Unit) (float64, bool) {
	if from == to {
		return amount, true
	}
	fc, tc := from.Category(), to.Category()
	if fc != CategoryUnknown && tc != CategoryUnknown && fc != tc {
		return 0, false
	}
	f, ok := c.table.Factor(from, to)
	if !ok {
		return 0, false
	}
	return amount * f, true
}

// ConvertOrRaw 盡力換算，無法換算時回傳原始數值
func (c *Converter) ConvertOrRaw(amount float64, from, to Unit) (float64, bool) {
	if v, ok := c.Convert(amount, from, to); ok {
		return v, true
	}
	return amount, false
}

// ConvertQuantity 換算 Quantity
func (c *Converter) ConvertQuantity(q Quantity, to Unit) (Quantity, bool) {
	v, ok := c.Convert(q.Amount, q.Unit, to)
	if !ok {
		return Quantity{}, false
	}
	return Quantity{Amount: v, Unit: to}, true
}

var defaultConverter = NewConverter(nil)

// Convert 使用全域換算表換算
func Convert(amount float64, from, to Unit) (float64, bool) {
	return defaultConverter.Convert(amount, from, to)
}
