package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/barista/internal/config"
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
	"github.com/JonMunkholm/barista/internal/store/sqlite"
)

func newSeedCmd(root *rootOptions) *cobra.Command {
	var statuses, coffeeTypes map[string]string

	cmd := &cobra.Command{
		Use:   "seed --status ID=Name --coffee-type ID=Name",
		Short: "Insert reference rows that have no import model into the SQLite store",
		Long: "Equipment service statuses and coffee product types are only ever referenced by\n" +
			"imported rows. seed inserts them so those references resolve. Ids that already\n" +
			"exist are left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := seedRows(statuses, coffeeTypes)
			if len(rows) == 0 {
				return errors.New("nothing to seed: pass --status or --coffee-type")
			}

			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverSQLite {
				return fmt.Errorf("seed writes through the sqlite store, DATABASE_DRIVER is %q", cfg.Database.Driver)
			}

			st, err := sqlite.Open(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Seed(cmd.Context(), rows...)
			if err != nil {
				return core.NewUserError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d row(s)\n", n, len(rows))
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&statuses, "status", nil, "equipment service status as ID=Name (repeatable)")
	cmd.Flags().StringToStringVar(&coffeeTypes, "coffee-type", nil, "coffee product type as ID=Name (repeatable)")
	return cmd
}

// seedRows builds reference entities ordered by id within each collection.
func seedRows(statuses, coffeeTypes map[string]string) []core.Entity {
	var rows []core.Entity
	for _, id := range sortedKeys(statuses) {
		rows = append(rows, &entities.EquipmentServiceStatus{ID: id, Name: statuses[id]})
	}
	for _, id := range sortedKeys(coffeeTypes) {
		rows = append(rows, &entities.CoffeeProductType{ID: id, Name: coffeeTypes[id]})
	}
	return rows
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
