package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/recipediary/internal/app"
	"github.com/heartmarshall/recipediary/internal/config"
	"github.com/heartmarshall/recipediary/internal/domain"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.LoadFrom(path)
	})
	return c.config, c.configErr
}

// withApp opens the application for the duration of fn.
func (c *commandContext) withApp(cmd *cobra.Command, fn func(*app.App) error) (err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}

// withRecipes opens the application, requires a signed-in user and loads
// their recipes before calling fn.
func (c *commandContext) withRecipes(cmd *cobra.Command, fn func(*app.App) error) error {
	return c.withApp(cmd, func(a *app.App) error {
		if a.Session.Current() == nil {
			return errNotSignedIn
		}
		if err := a.Recipes.Sync(cmd.Context()); err != nil {
			return err
		}
		return fn(a)
	})
}

var errNotSignedIn = fmt.Errorf("%w: not signed in; run `recipediary login --email <address>` first", domain.ErrUnauthenticated)

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// describeError turns domain errors into messages for the terminal.
func describeError(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		parts := make([]string, len(ve.Errors))
		for i, fe := range ve.Errors {
			parts[i] = fe.Field + " " + fe.Message
		}
		return fmt.Errorf("invalid recipe: %s", strings.Join(parts, "; "))
	}
	return err
}
