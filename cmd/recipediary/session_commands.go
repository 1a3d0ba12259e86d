package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/recipediary/internal/app"
	"github.com/heartmarshall/recipediary/internal/session"
)

func newSessionCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newLoginCommand(ctx),
		newLogoutCommand(ctx),
		newWhoamiCommand(ctx),
	}
}

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := session.LocalIdentity(email, name)
			if err != nil {
				return describeError(err)
			}
			return ctx.withApp(cmd, func(a *app.App) error {
				if _, err := a.Session.SignIn(cmd.Context(), id); err != nil {
					return err
				}
				if err := a.Recipes.Sync(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> (%d recipes)\n",
					id.Name, id.Email, len(a.Recipes.Recipes()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the email's local part)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				if err := a.Session.SignOut(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app.App) error {
				id := a.Session.Current()
				if asJSON {
					return writeJSON(cmd, id)
				}
				if id == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n%s\n", id.Name, id.Email, id.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
