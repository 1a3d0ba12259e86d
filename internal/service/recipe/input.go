package recipe

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/recipediary/internal/domain"
)

const maxTitleLength = 500

// validateForm checks the fields a recipe cannot be saved without.
func validateForm(form domain.RecipeForm) error {
	var errs []domain.FieldError

	title := strings.TrimSpace(form.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 500)"})
	}
	if len(domain.SplitLines(form.Ingredients)) == 0 {
		errs = append(errs, domain.FieldError{Field: "ingredients", Message: "required"})
	}
	if len(domain.SplitLines(form.Instructions)) == 0 {
		errs = append(errs, domain.FieldError{Field: "instructions", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
