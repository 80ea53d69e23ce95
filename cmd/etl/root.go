package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
	_ "github.com/JonMunkholm/barista/internal/core/tables" // register all models
	"github.com/JonMunkholm/barista/internal/logging"
)

// errRejected marks an import stopped by critical validation findings.
// The result has already been printed; the process exits with status 2.
var errRejected = errors.New("import rejected by critical validation errors")

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "etl",
		Short:         "Import barista back-office spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration (empty to skip)")

	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// loadConfig reads the dotenv file and the environment, and points logging at
// the command's stderr so stdout only carries results.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if o.envFile != "" {
		if err := godotenv.Overload(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func Execute() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}

	if errors.Is(err, errRejected) {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	var userErr *core.UserError
	if errors.As(err, &userErr) {
		slog.Debug("command failed", "error", userErr.Technical)
		fmt.Fprintln(os.Stderr, core.FormatUserError(userErr.Technical))
	} else {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(1)
}
