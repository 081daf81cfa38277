package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/conversation"
	"github.com/jonathan/hr-insights/internal/intent"
	"github.com/jonathan/hr-insights/internal/observability"
	"github.com/jonathan/hr-insights/internal/types"
)

var (
	classifyCatalog string
	classifyJSON    bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <query>",
	Short: "Classify the intent of an HR question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(cmd.OutOrStdout(), classifyCatalog, strings.Join(args, " "), classifyJSON)
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyCatalog, "catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print JSON with the score of every category")
	rootCmd.AddCommand(classifyCmd)
}

// classifyOutput is the JSON printed by classify --json
type classifyOutput struct {
	Query    string         `json:"query"`
	Intent   types.Intent   `json:"intent"`
	Entities types.Entities `json:"entities"`
	Scores   []intent.Score `json:"scores"`
}

func runClassify(out io.Writer, catalogPath, query string, asJSON bool) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	classifier := intent.NewClassifier(c)
	result := classifier.Classify(query)
	entities := conversation.ExtractEntities(query)
	if asJSON {
		return writeJSON(out, classifyOutput{
			Query:    query,
			Intent:   result,
			Entities: entities,
			Scores:   classifier.Scores(query),
		})
	}
	observability.NewPrinter(out).PrintIntent(query, result, entities)
	return nil
}
