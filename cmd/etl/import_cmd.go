package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/store"
)

// modelValue adapts core.ModelType to a pflag value.
type modelValue struct {
	m *core.ModelType
}

func (v modelValue) String() string {
	if v.m == nil || *v.m == 0 {
		return ""
	}
	return v.m.String()
}

func (v modelValue) Set(s string) error {
	m, err := core.ParseModelType(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v modelValue) Type() string { return "model" }

func newImportCmd(root *rootOptions) *cobra.Command {
	var model core.ModelType

	cmd := &cobra.Command{
		Use:   "import --model <tag> <file>",
		Short: "Import a .csv, .xls or .xlsx file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if model == 0 {
				return errors.New("--model is required")
			}

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			gw, err := store.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer gw.Close()

			svc := core.NewService(gw, cfg.Upload)
			return runImport(cmd.Context(), svc, cmd.OutOrStdout(), args[0], model)
		},
	}
	cmd.Flags().Var(modelValue{&model}, "model", "model tag to import as (see \"etl models\")")
	return cmd
}

// runImport imports path and writes the indented result to w.
// Critical findings print the result and then return errRejected.
func runImport(ctx context.Context, svc *core.Service, w io.Writer, path string, model core.ModelType) error {
	res, err := svc.ImportFile(ctx, path, model)
	if err != nil {
		return core.NewUserError(err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}

	if res.Rejected() {
		return errRejected
	}
	return nil
}
