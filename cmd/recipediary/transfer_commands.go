package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/recipediary/internal/app"
	"github.com/heartmarshall/recipediary/internal/impex"
)

func newTransferCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newImportCommand(ctx),
		newExportCommand(ctx),
		newClearCommand(ctx),
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import recipes from an export document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer f.Close()
				in = f
			}

			records, err := impex.ReadImport(in)
			if err != nil {
				return err
			}

			return ctx.withRecipes(cmd, func(a *app.App) error {
				imported, err := a.Recipes.ImportMany(cmd.Context(), records)
				if err != nil {
					return describeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes\n", len(imported))
				return nil
			})
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all recipes to a dated JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRecipes(cmd, func(a *app.App) error {
				if toStdout {
					return impex.WriteExport(cmd.OutOrStdout(), a.Recipes.Recipes())
				}
				if dir == "" {
					dir = a.Config.Export.Dir
				}
				path, err := a.Recipes.ExportAll(cmd.Context(), dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", len(a.Recipes.Recipes()), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config export.dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the document to stdout instead of a file")
	return cmd
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all of your recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all recipes without --yes")
			}
			return ctx.withRecipes(cmd, func(a *app.App) error {
				n, err := a.Recipes.ClearAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d recipes\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting every recipe")
	return cmd
}
