package units

import "strings"

// Unit 單位標籤，值必須屬於封閉詞彙表
type Unit string

// Category 單位類別
type Category int

const (
	CategoryUnknown Category = iota
	CategoryWeight
	CategoryVolume
	CategoryCount
)

// String 實現 fmt.Stringer
func (c Category) String() string {
	switch c {
	case CategoryWeight:
		return "weight"
	case CategoryVolume:
		return "volume"
	case CategoryCount:
		return "count"
	default:
		return "unknown"
	}
}

// WeightUnit 重量單位
type WeightUnit Unit

// VolumeUnit 容量單位（含湯匙、茶匙等烹飪量具）
type VolumeUnit Unit

// CountUnit 計數單位
type CountUnit Unit

// 重量
const (
	Milligram WeightUnit = "mg"
	Gram      WeightUnit = "g"
	Kilogram  WeightUnit = "kg"
	Ounce     WeightUnit = "oz"
	Pound     WeightUnit = "lb"
)

// 容量
const (
	Milliliter VolumeUnit = "ml"
	Liter      VolumeUnit = "l"
	FluidOunce VolumeUnit = "fl_oz"
	Cup        VolumeUnit = "cup"
	Tablespoon VolumeUnit = "tbsp"
	Teaspoon   VolumeUnit = "tsp"
	Pinch      VolumeUnit = "pinch"
)

// 計數
const (
	Count CountUnit = "count"
	Dozen CountUnit = "dozen"
)

var vocabulary = map[Unit]Category{
	Unit(Milligram): CategoryWeight,
	Unit(Gram):      CategoryWeight,
	Unit(Kilogram):  CategoryWeight,
	Unit(Ounce):     CategoryWeight,
	Unit(Pound):     CategoryWeight,

	Unit(Milliliter): CategoryVolume,
	Unit(Liter):      CategoryVolume,
	Unit(FluidOunce): CategoryVolume,
	Unit(Cup):        CategoryVolume,
	Unit(Tablespoon): CategoryVolume,
	Unit(Teaspoon):   CategoryVolume,
	Unit(Pinch):      CategoryVolume,

	Unit(Count): CategoryCount,
	Unit(Dozen): CategoryCount,
}

// aliases 常見寫法對應到標準標籤
var aliases = map[string]Unit{
	"gram": Unit(Gram), "grams": Unit(Gram), "gr": Unit(Gram),
	"milligram": Unit(Milligram), "milligrams": Unit(Milligram),
	"kilogram": Unit(Kilogram), "kilograms": Unit(Kilogram), "kgs": Unit(Kilogram),
	"ounce": Unit(Ounce), "ounces": Unit(Ounce),
	"pound": Unit(Pound), "pounds": Unit(Pound), "lbs": Unit(Pound),

	"milliliter": Unit(Milliliter), "milliliters": Unit(Milliliter),
	"millilitre": Unit(Milliliter), "millilitres": Unit(Milliliter),
	"liter": Unit(Liter), "liters": Unit(Liter), "litre": Unit(Liter), "litres": Unit(Liter),
	"floz": Unit(FluidOunce), "fl oz": Unit(FluidOunce), "fl-oz": Unit(FluidOunce),
	"fluid ounce": Unit(FluidOunce), "fluid ounces": Unit(FluidOunce),
	"cups": Unit(Cup),
	"tablespoon": Unit(Tablespoon), "tablespoons": Unit(Tablespoon), "tbs": Unit(Tablespoon), "tbl": Unit(Tablespoon),
	"teaspoon": Unit(Teaspoon), "teaspoons": Unit(Teaspoon),
	"pinches": Unit(Pinch),

	"piece": Unit(Count), "pieces": Unit(Count), "pc": Unit(Count), "pcs": Unit(Count),
	"each": Unit(Count), "ea": Unit(Count), "unit": Unit(Count), "units": Unit(Count),
	"dozens": Unit(Dozen),
}

// Parse 解析單位字串，回傳標準標籤以及是否屬於詞彙表
func Parse(s string) (Unit, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := vocabulary[Unit(key)]; ok {
		return Unit(key), true
	}
	if u, ok := aliases[key]; ok {
		return u, true
	}
	return Unit(s), false
}

// Normalize 將已知寫法轉成標準標籤，未知單位原樣保留以便驗證時回報
func Normalize(s string) Unit {
	u, _ := Parse(s)
	return u
}

// Category 回傳單位類別，未知單位為 CategoryUnknown
func (u Unit) Category() Category {
	return vocabulary[u]
}

// Valid 是否屬於封閉詞彙表
func (u Unit) Valid() bool {
	_, ok := vocabulary[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// UnmarshalText 解碼時先正規化
func (u *Unit) UnmarshalText(b []byte) error {
	*u = Normalize(string(b))
	return nil
}

// Vocabulary 依類別列出所有標準單位
func Vocabulary() map[string][]Unit {
	out := map[string][]Unit{
		CategoryWeight.String(): {Unit(Milligram), Unit(Gram), Unit(Kilogram), Unit(Ounce), Unit(Pound)},
		CategoryVolume.String(): {Unit(Milliliter), Unit(Liter), Unit(FluidOunce), Unit(Cup), Unit(Tablespoon), Unit(Teaspoon), Unit(Pinch)},
		CategoryCount.String():  {Unit(Count), Unit(Dozen)},
	}
	return out
}

// Quantity 數量與單位
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}
