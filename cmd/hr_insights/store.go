package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/config"
	"github.com/jonathan/hr-insights/internal/db"
	"github.com/jonathan/hr-insights/internal/types"
)

// openStore connects to PostgreSQL and ensures the schema when a database URL
// is configured, and falls back to an in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (db.Store, error) {
	if !cfg.UseDatabase() {
		log.Warn("DATABASE_URL not set, requirement sets and analyses are kept in memory")
		return db.NewMemoryStore(), nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	log.Info("connected to database")
	return database, nil
}

// connectDatabase opens the configured database for the maintenance commands.
func connectDatabase(ctx context.Context) (*db.DB, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, err
	}
	if !cfg.UseDatabase() {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		database, err := connectDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "Manage stored requirement sets",
}

var requirementsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Validate requirement set files and save them to the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		database, err := connectDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		return importRequirementSets(ctx, cmd.OutOrStdout(), database, args)
	},
}

var requirementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored requirement sets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		database, err := connectDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		return listRequirementSets(ctx, cmd.OutOrStdout(), database)
	},
}

func init() {
	requirementsCmd.AddCommand(requirementsImportCmd, requirementsListCmd)
	rootCmd.AddCommand(migrateCmd, requirementsCmd)
}

// importRequirementSets validates every file before saving any of them.
func importRequirementSets(ctx context.Context, out io.Writer, store db.Store, paths []string) error {
	sets := make([]*types.RequirementSet, 0, len(paths))
	for _, path := range paths {
		set, err := readRequirementSet(path)
		if err != nil {
			return err
		}
		if set.ID == "" {
			return fmt.Errorf("requirement set %s has no id", path)
		}
		sets = append(sets, set)
	}

	for _, set := range sets {
		if err := store.SaveRequirementSet(ctx, set); err != nil {
			return fmt.Errorf("failed to save requirement set %s: %w", set.ID, err)
		}
		_, _ = fmt.Fprintf(out, "Saved %s (%d skills)\n", set.ID, len(set.Skills))
	}
	return nil
}

func listRequirementSets(ctx context.Context, out io.Writer, store db.Store) error {
	sets, err := store.ListRequirementSets(ctx)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		_, _ = fmt.Fprintln(out, "No requirement sets stored")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSKILLS\tMINIMUM")
	for _, set := range sets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", set.ID, set.Title, len(set.Skills), set.Threshold())
	}
	return w.Flush()
}
