package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/recipediary/internal/app"
	"github.com/heartmarshall/recipediary/internal/domain"
)

func newCuisinesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cuisines",
		Short: "List the cuisines used by your recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				cuisines := a.Recipes.Cuisines()
				if asJSON {
					return writeJSON(cmd, cuisines)
				}
				for _, c := range cuisines {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize your recipe collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				st, err := a.Recipes.Stats()
				if err != nil {
					return err
				}

				rows := [][]string{{"Recipes", strconv.Itoa(st.Total)}}
				for _, m := range domain.MealTypes {
					rows = append(rows, []string{m.String(), strconv.Itoa(st.ByMealType[m])})
				}
				rows = append(rows,
					[]string{"no meal type", strconv.Itoa(st.Untyped)},
					[]string{"Cuisines", strconv.Itoa(st.Cuisines)},
					[]string{"Export size", fmt.Sprintf("%d KB", (st.ExportSize+512)/1024)},
				)
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "recipediary %s\n", app.BuildVersion())
			return nil
		},
	}
}
