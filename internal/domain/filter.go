package domain

// RecipeFilter holds the criteria of the recipe list view.
// Zero values mean "no restriction" for every field.
type RecipeFilter struct {
	Query    string
	MealType MealType
	Cuisine  string
}

// IsZero reports whether the filter matches every recipe.
func (f RecipeFilter) IsZero() bool {
	return f.Query == "" && f.MealType == "" && f.Cuisine == ""
}
