package pantry

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"pantry-engine/internal/core/units"
	"pantry-engine/internal/pkg/common"
)

// ErrInvalidServings 份數必須為正的有限數
var ErrInvalidServings = errors.New("servings must be a positive finite number")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// 錯誤訊息使用 json 欄位名稱
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "unit", func(fl validator.FieldLevel) bool {
		return units.Unit(fl.Field().String()).Valid()
	})
	mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// mustRegister 註冊自訂驗證規則，失敗時 panic，與 units.MustTable 相同
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// ValidateEntries 驗證庫存快照
func ValidateEntries(entries []Entry) error {
	for i := range entries {
		if err := validateStruct(fmt.Sprintf("pantry[%d]", i), entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRequirements 驗證食材需求
func ValidateRequirements(reqs []Requirement) error {
	for i := range reqs {
		if err := validateStruct(fmt.Sprintf("requirements[%d]", i), reqs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRecipes 驗證候選食譜
func ValidateRecipes(recipes []Recipe) error {
	for i := range recipes {
		if err := validateStruct(fmt.Sprintf("recipes[%d]", i), recipes[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateShoppingList 驗證既有購物清單
func ValidateShoppingList(list []ShoppingListEntry) error {
	for i := range list {
		if err := validateStruct(fmt.Sprintf("existing[%d]", i), list[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateServings 驗證份數
func ValidateServings(servings float64) error {
	if !(servings > 0) || math.IsInf(servings, 0) {
		return common.NewValidationError(ErrInvalidServings.Error())
	}
	return nil
}

func validateStruct(prefix string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.NewValidationError(fmt.Sprintf("%s: %v", prefix, err))
	}
	fe := verrs[0]
	return common.NewValidationError(fmt.Sprintf("%s.%s: %s", prefix, fieldPath(fe), describe(fe)))
}

// fieldPath 去掉最外層型別名稱，例如 Recipe.ingredients[0].unit -> ingredients[0].unit
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "unit":
		return fmt.Sprintf("unknown unit %q", fe.Value())
	case "finite":
		return "must be a finite number"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
