package domain

// MealType classifies a recipe by the meal it is served at.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeDessert   MealType = "dessert"
	MealTypeSnack     MealType = "snack"
	MealTypeAppetizer MealType = "appetizer"
)

// MealTypes lists every recognized meal type in display order.
var MealTypes = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeDessert,
	MealTypeSnack,
	MealTypeAppetizer,
}

func (m MealType) String() string { return string(m) }

func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner,
		MealTypeDessert, MealTypeSnack, MealTypeAppetizer:
		return true
	}
	return false
}
