package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/schemas"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate keyword catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file against the catalog schema",
	Long:  "Validate a catalog file. Without a file the embedded default catalog is checked.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runCatalogValidate(cmd.OutOrStdout(), path)
	},
}

var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the catalog JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(catalog.Schema())
		return err
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd, catalogSchemaCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(out io.Writer, path string) error {
	name := path
	if name == "" {
		name = "embedded catalog"
	}

	c, err := catalog.Load(path)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%s failed schema validation with %d errors", name, len(validationErr.Errors))
		}
		return err
	}

	skillCount := 0
	for _, cat := range c.SkillCategories {
		skillCount += len(cat.Skills)
	}
	_, err = fmt.Fprintf(out, "%s is valid (version %q): %d skills in %d categories, %d intents, %d levels, %d degrees\n",
		name, c.Version, skillCount, len(c.SkillCategories), len(c.Intents), len(c.Levels), len(c.Degrees))
	return err
}
