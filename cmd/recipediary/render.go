package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/heartmarshall/recipediary/internal/domain"
)

const (
	ansiBold  = "\033[1m"
	ansiBlue  = "\033[34m"
	ansiReset = "\033[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func recipeRows(recipes []domain.Recipe) [][]string {
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			r.ID.String(),
			r.Title,
			mealTypeText(r.MealType),
			r.CuisineName(),
			minutesText(r.TotalTime),
			r.DateAdded.Local().Format("2006-01-02"),
		})
	}
	return rows
}

var recipeHeaders = []string{"ID", "Title", "Meal", "Cuisine", "Total", "Added"}

var recipeAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}

// renderRecipe formats a single recipe for reading in the terminal.
func renderRecipe(r domain.Recipe, colorize bool) string {
	var b strings.Builder

	title := r.Title
	if colorize {
		title = ansiBold + ansiBlue + title + ansiReset
	}
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("-", len([]rune(r.Title))))

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-12s %s\n", label+":", value)
		}
	}
	field("ID", r.ID.String())
	field("Meal", mealTypeText(r.MealType))
	field("Cuisine", r.CuisineName())
	field("Author", stringText(r.Author))
	field("Prep", minutesText(r.PrepTime))
	field("Cook", minutesText(r.CookTime))
	field("Total", minutesText(r.TotalTime))
	field("Servings", intText(r.Servings))
	field("Tags", strings.Join(r.Tags, ", "))
	field("Source", stringText(r.SourceURL))
	field("Image", stringText(r.ImageURL))
	field("Added", r.DateAdded.Local().Format("2006-01-02 15:04"))

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Ingredients")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", ing)
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Instructions")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	return b.String()
}

func mealTypeText(m *domain.MealType) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func minutesText(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p) + " min"
}

func intText(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func stringText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
