package transcode

import (
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/recipediary/internal/domain"
)

// Encode converts form input into a wire row. ID, UserID and CreatedAt are
// left zero; the caller stamps the owner and the store assigns the rest.
//
// Empty text fields become absent, numbers that do not parse (or are out of
// range) become absent, and TotalTime is derived from PrepTime and CookTime.
func Encode(form domain.RecipeForm) WireRecipe {
	prep := parseMinutes(form.PrepTime)
	cook := parseMinutes(form.CookTime)

	return WireRecipe{
		Title:        strings.TrimSpace(form.Title),
		Ingredients:  domain.SplitLines(form.Ingredients),
		Instructions: domain.SplitLines(form.Instructions),
		PrepTime:     prep,
		CookTime:     cook,
		TotalTime:    totalTime(prep, cook),
		Servings:     parseServings(form.Servings),
		ImageURL:     optionalText(form.ImageURL),
		SourceURL:    optionalText(form.SourceURL),
		Tags:         domain.SplitTags(form.Tags),
		Author:       optionalText(form.Author),
		Cuisine:      optionalText(form.Cuisine),
		MealType:     mealType(form.MealType),
	}
}

// Decode converts a stored row into the client model.
// Missing list columns decode to empty lists.
func Decode(row WireRecipe) domain.Recipe {
	r := domain.Recipe{
		ID:           row.ID,
		Title:        row.Title,
		Ingredients:  nonNil(row.Ingredients),
		Instructions: nonNil(row.Instructions),
		PrepTime:     row.PrepTime,
		CookTime:     row.CookTime,
		TotalTime:    row.TotalTime,
		Servings:     row.Servings,
		ImageURL:     row.ImageURL,
		SourceURL:    row.SourceURL,
		Tags:         nonNil(row.Tags),
		Author:       row.Author,
		Cuisine:      row.Cuisine,
		DateAdded:    row.CreatedAt,
		UserID:       row.UserID,
	}
	if row.MealType != nil {
		if m := domain.MealType(*row.MealType); m.IsValid() {
			r.MealType = &m
		}
	}
	return r.Clone()
}

// FromRecipe converts an imported client record into a wire row.
// Identity fields are dropped; the record is normalized the same way as
// form input so imported and typed recipes are indistinguishable.
func FromRecipe(r domain.Recipe) WireRecipe {
	prep := nonNegative(r.PrepTime)
	cook := nonNegative(r.CookTime)

	row := WireRecipe{
		Title:        strings.TrimSpace(r.Title),
		Ingredients:  domain.CleanList(r.Ingredients),
		Instructions: domain.CleanList(r.Instructions),
		PrepTime:     prep,
		CookTime:     cook,
		TotalTime:    totalTime(prep, cook),
		Servings:     positive(r.Servings),
		ImageURL:     optionalTextPtr(r.ImageURL),
		SourceURL:    optionalTextPtr(r.SourceURL),
		Tags:         domain.CleanList(r.Tags),
		Author:       optionalTextPtr(r.Author),
		Cuisine:      optionalTextPtr(r.Cuisine),
	}
	if r.MealType != nil {
		row.MealType = mealType(string(*r.MealType))
	}
	return row
}

// ToForm renders a recipe back into form input, e.g. to prefill an edit
// form. Encode(ToForm(r)) yields the same content as r.
func ToForm(r domain.Recipe) domain.RecipeForm {
	form := domain.RecipeForm{
		Title:        r.Title,
		Ingredients:  strings.Join(r.Ingredients, "\n"),
		Instructions: strings.Join(r.Instructions, "\n"),
		PrepTime:     formatInt(r.PrepTime),
		CookTime:     formatInt(r.CookTime),
		Servings:     formatInt(r.Servings),
		ImageURL:     deref(r.ImageURL),
		SourceURL:    deref(r.SourceURL),
		Tags:         strings.Join(r.Tags, ", "),
		Author:       deref(r.Author),
		Cuisine:      deref(r.Cuisine),
	}
	if r.MealType != nil {
		form.MealType = r.MealType.String()
	}
	return form
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// maxNumber is the largest value the stores' integer columns hold.
const maxNumber = math.MaxInt32

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxNumber {
		return 0, false
	}
	return n, true
}

// parseMinutes accepts non-negative whole minutes.
func parseMinutes(s string) *int {
	n, ok := parseInt(s)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

// parseServings accepts positive whole numbers.
func parseServings(s string) *int {
	n, ok := parseInt(s)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

func totalTime(prep, cook *int) *int {
	if prep == nil || cook == nil {
		return nil
	}
	// Both are within [0, maxNumber], so the sum cannot wrap.
	t := *prep + *cook
	if t > maxNumber {
		return nil
	}
	return &t
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalTextPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return optionalText(*p)
}

func mealType(s string) *string {
	m := domain.MealType(strings.TrimSpace(s))
	if !m.IsValid() {
		return nil
	}
	v := m.String()
	return &v
}

func nonNegative(p *int) *int {
	if p == nil || *p < 0 || *p > maxNumber {
		return nil
	}
	v := *p
	return &v
}

func positive(p *int) *int {
	if p == nil || *p <= 0 || *p > maxNumber {
		return nil
	}
	v := *p
	return &v
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func formatInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
