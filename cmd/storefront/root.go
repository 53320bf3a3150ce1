package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/spf13/cobra"
)

type appKey struct{}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

// newRootCommand builds the command tree. cleanup releases the store
// opened for whichever command ran.
func newRootCommand() (*cobra.Command, func()) {

	var (
		configPath string
		opened     *app
	)

	cleanup := func() {
		if opened == nil {
			return
		}
		if err := opened.Close(); err != nil {
			slog.Warn("Failed to close store", slog.String("error", err.Error()))
		}
	}

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client for the e-commerce backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

			if !needsApp(cmd) {
				return nil
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				err = fmt.Errorf("can not read config file: %w", err)
				cmd.PrintErrln(err)
				return err
			}

			log := logger.New(cfg.Log, logOutput(cmd))
			slog.SetDefault(log)

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				slog.Error("Failed to start storefront", slog.String("error", err.Error()))
				return err
			}
			opened = a

			ctx := logger.WithContext(cmd.Context(), log)
			cmd.SetContext(context.WithValue(ctx, appKey{}, a))

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config (default $CONFIG_PATH)")

	rootCmd.AddCommand(
		newServeCommand(),
		newProductsCommand(),
		newProductCommand(),
		newSearchCommand(),
		newCartCommand(),
		newWishlistCommand(),
		newCheckoutCommand(),
		newOrderCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newSignupCommand(),
		newProfileCommand(),
	)

	return rootCmd, cleanup
}

// needsApp is false for cobra's own help and completion commands, which
// must work without a config.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "completion":
			return false
		}
	}

	return true
}

// logOutput keeps stdout for the rendered envelope; only serve logs there.
func logOutput(cmd *cobra.Command) io.Writer {
	if cmd.Name() == "serve" {
		return os.Stdout
	}

	return cmd.ErrOrStderr()
}

// render prints the result in the same envelope the HTTP views use. A
// failed command prints the error envelope and exits non-zero.
func render(w io.Writer, data any, err error) error {

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err != nil {
		resp := response.APIResponse{Success: false, Error: errorBody(err)}
		_ = enc.Encode(resp)
		return err
	}

	return enc.Encode(response.APIResponse{Success: true, Data: data})
}

func errorBody(err error) *response.ErrorResponse {

	if appErr, ok := errors.IsAppError(err); ok {
		body := &response.ErrorResponse{Code: appErr.Code, Message: appErr.Message, Redirect: appErr.Redirect}
		if appErr.Detail != "" {
			body.Details = []string{appErr.Detail}
		}
		return body
	}

	return &response.ErrorResponse{Code: errors.ErrCodeInternal, Message: err.Error()}
}
