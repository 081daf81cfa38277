package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/extraction"
	"github.com/jonathan/hr-insights/internal/observability"
)

var (
	extractInputFile string
	extractCatalog   string
	extractJSON      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills, experience and education from a document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExtract(cmd.OutOrStdout(), extractCatalog, extractInputFile, extractJSON)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to a plain-text document (required)")
	extractCmd.Flags().StringVar(&extractCatalog, "catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print JSON instead of a summary")
	_ = extractCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(out io.Writer, catalogPath, inputPath string, asJSON bool) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	text, err := readText(inputPath)
	if err != nil {
		return err
	}

	features := extraction.New(c).Extract(text)
	if asJSON {
		return writeJSON(out, features)
	}
	observability.NewPrinter(out).PrintFeatures(&features)
	return nil
}
