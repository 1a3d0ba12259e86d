package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/recipediary/internal/app"
	"github.com/heartmarshall/recipediary/internal/domain"
	"github.com/heartmarshall/recipediary/internal/service/recipe"
	"github.com/heartmarshall/recipediary/internal/transcode"
)

func newRecipeCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newShowCommand(ctx),
		newAddCommand(ctx),
		newEditCommand(ctx),
		newDeleteCommand(ctx),
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var filter domain.RecipeFilter
	var mealType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recipes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mealType != "" {
				m, err := parseMealType(mealType)
				if err != nil {
					return err
				}
				filter.MealType = m
			}
			return ctx.withRecipes(cmd, func(a *app.App) error {
				recipes := a.Recipes.Filter(filter)
				if asJSON {
					return writeJSON(cmd, recipes)
				}
				if len(recipes) == 0 {
					if filter.IsZero() {
						fmt.Fprintln(cmd.OutOrStdout(), "No recipes yet")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "No recipes match")
					}
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(recipeHeaders, recipeRows(recipes), recipeAligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Match title, ingredients or tags")
	cmd.Flags().StringVar(&mealType, "meal-type", "", "Only this meal type ("+mealTypeList()+")")
	cmd.Flags().StringVar(&filter.Cuisine, "cuisine", "", "Only this cuisine (exact)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				r, err := resolveRecipe(a.Recipes, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, r)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderRecipe(*r, shouldColorize(cmd.OutOrStdout())))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	flags := &formFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.apply(cmd, domain.RecipeForm{})
			if err != nil {
				return err
			}
			return ctx.withRecipes(cmd, func(a *app.App) error {
				r, err := a.Recipes.Create(cmd.Context(), form)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", r.Title, r.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	flags := &formFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a recipe; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				current, err := resolveRecipe(a.Recipes, args[0])
				if err != nil {
					return err
				}
				form, err := flags.apply(cmd, transcode.ToForm(*current))
				if err != nil {
					return err
				}
				r, err := a.Recipes.Update(cmd.Context(), current.ID, form)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s)\n", r.Title, r.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				r, err := resolveRecipe(a.Recipes, args[0])
				if err != nil {
					return err
				}
				if err := a.Recipes.Delete(cmd.Context(), r.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", r.Title)
				return nil
			})
		},
	}
}

// formFlags maps command-line flags onto the recipe form.
type formFlags struct {
	title        string
	ingredients  []string
	instructions []string
	prepTime     string
	cookTime     string
	servings     string
	imageURL     string
	sourceURL    string
	tags         string
	author       string
	cuisine      string
	mealType     string
}

func (f *formFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "Recipe title")
	fl.StringArrayVar(&f.ingredients, "ingredient", nil, "Ingredient line (repeatable)")
	fl.StringArrayVar(&f.instructions, "step", nil, "Instruction step (repeatable, in order)")
	fl.StringVar(&f.prepTime, "prep", "", "Preparation time in minutes")
	fl.StringVar(&f.cookTime, "cook", "", "Cooking time in minutes")
	fl.StringVar(&f.servings, "servings", "", "Number of servings")
	fl.StringVar(&f.imageURL, "image-url", "", "Image URL")
	fl.StringVar(&f.sourceURL, "source-url", "", "Source URL")
	fl.StringVar(&f.tags, "tags", "", "Comma-separated tags")
	fl.StringVar(&f.author, "author", "", "Author")
	fl.StringVar(&f.cuisine, "cuisine", "", "Cuisine")
	fl.StringVar(&f.mealType, "meal-type", "", "Meal type ("+mealTypeList()+")")
}

// apply overlays the flags the user set onto base.
func (f *formFlags) apply(cmd *cobra.Command, base domain.RecipeForm) (domain.RecipeForm, error) {
	changed := cmd.Flags().Changed
	form := base

	if changed("title") {
		form.Title = f.title
	}
	if changed("ingredient") {
		form.Ingredients = strings.Join(f.ingredients, "\n")
	}
	if changed("step") {
		form.Instructions = strings.Join(f.instructions, "\n")
	}
	if changed("prep") {
		form.PrepTime = f.prepTime
	}
	if changed("cook") {
		form.CookTime = f.cookTime
	}
	if changed("servings") {
		form.Servings = f.servings
	}
	if changed("image-url") {
		form.ImageURL = f.imageURL
	}
	if changed("source-url") {
		form.SourceURL = f.sourceURL
	}
	if changed("tags") {
		form.Tags = f.tags
	}
	if changed("author") {
		form.Author = f.author
	}
	if changed("cuisine") {
		form.Cuisine = f.cuisine
	}
	if changed("meal-type") {
		form.MealType = ""
		if strings.TrimSpace(f.mealType) != "" {
			m, err := parseMealType(f.mealType)
			if err != nil {
				return domain.RecipeForm{}, err
			}
			form.MealType = m.String()
		}
	}
	return form, nil
}

// resolveRecipe finds a recipe by full id or unique id prefix.
func resolveRecipe(svc *recipe.Service, arg string) (*domain.Recipe, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if id, err := uuid.Parse(arg); err == nil {
		r, err := svc.Get(id)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", arg, err)
		}
		return r, nil
	}
	if arg == "" {
		return nil, fmt.Errorf("recipe id is required")
	}

	var match *domain.Recipe
	for _, r := range svc.Recipes() {
		if strings.HasPrefix(r.ID.String(), arg) {
			if match != nil {
				return nil, fmt.Errorf("recipe id prefix %q is ambiguous", arg)
			}
			match = &r
		}
	}
	if match == nil {
		return nil, fmt.Errorf("recipe %s: %w", arg, domain.ErrNotFound)
	}
	return match, nil
}

func parseMealType(s string) (domain.MealType, error) {
	m := domain.MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown meal type %q (want one of %s)", s, mealTypeList())
	}
	return m, nil
}

func mealTypeList() string {
	names := make([]string, len(domain.MealTypes))
	for i, m := range domain.MealTypes {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
