package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/observability"
	"github.com/jonathan/hr-insights/internal/ranking"
	"github.com/jonathan/hr-insights/internal/types"
)

var (
	analyzeResumeFile   string
	analyzeRequirements string
	analyzeCatalog      string
	analyzeJSON         bool

	screenApplications string
	screenConcurrency  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a requirement set",
	Long:  "Extract skills, experience and education from a plain-text resume and score them against a requirement set file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAnalyze(cmd.OutOrStdout(), analyzeCatalog, analyzeResumeFile, analyzeRequirements, analyzeJSON)
	},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a batch of applications against a requirement set",
	Long: `Score every application against a requirement set and recommend a shortlist.
--applications is either a JSON file holding an array of {"id","candidate_name","text"} objects
or a directory of .txt/.md files, one application per file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScreen(cmd.Context(), cmd.OutOrStdout(), analyzeCatalog, screenApplications, analyzeRequirements, screenConcurrency, analyzeJSON)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "i", "", "Path to a plain-text resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeRequirements, "requirements", "r", "", "Path to a requirement set JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeCatalog, "catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of a summary")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("requirements")

	screenCmd.Flags().StringVarP(&screenApplications, "applications", "a", "", "JSON file or directory of applications (required)")
	screenCmd.Flags().StringVarP(&analyzeRequirements, "requirements", "r", "", "Path to a requirement set JSON file (required)")
	screenCmd.Flags().StringVar(&analyzeCatalog, "catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	screenCmd.Flags().IntVar(&screenConcurrency, "concurrency", ranking.DefaultScreeningConcurrency, "Applications scored in parallel")
	screenCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of a summary")
	_ = screenCmd.MarkFlagRequired("applications")
	_ = screenCmd.MarkFlagRequired("requirements")

	rootCmd.AddCommand(analyzeCmd, screenCmd)
}

// analysisOutput is the JSON printed by analyze --json
type analysisOutput struct {
	RequirementSetID string            `json:"requirement_set_id"`
	FileName         string            `json:"file_name"`
	Analysis         types.ScoreResult `json:"analysis"`
	Features         types.FeatureSet  `json:"features"`
}

func runAnalyze(out io.Writer, catalogPath, resumePath, requirementsPath string, asJSON bool) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	req, err := readRequirementSet(requirementsPath)
	if err != nil {
		return err
	}
	text, err := readText(resumePath)
	if err != nil {
		return err
	}

	features, result := ranking.NewAnalyzer(c, nil, 0).Evaluate(text, req)
	if asJSON {
		return writeJSON(out, analysisOutput{
			RequirementSetID: req.ID,
			FileName:         filepath.Base(resumePath),
			Analysis:         result,
			Features:         features,
		})
	}

	p := observability.NewPrinter(out)
	p.PrintFeatures(&features)
	title := "RESUME ANALYSIS"
	if req.Title != "" {
		title += ": " + strings.ToUpper(req.Title)
	}
	p.PrintScoreResult(title, &result)
	return nil
}

func runScreen(ctx context.Context, out io.Writer, catalogPath, applicationsPath, requirementsPath string, concurrency int, asJSON bool) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	req, err := readRequirementSet(requirementsPath)
	if err != nil {
		return err
	}
	apps, err := readApplications(applicationsPath)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		return fmt.Errorf("no applications found in %s", applicationsPath)
	}

	summary, err := ranking.NewAnalyzer(c, nil, concurrency).Screen(ctx, req, apps)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(out, summary)
	}
	observability.NewPrinter(out).PrintScreening(summary)
	return nil
}

// readApplications loads applications from a JSON array file or from the
// text files of a directory, using each file name without extension as the id.
func readApplications(path string) ([]types.Application, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !info.IsDir() {
		var apps []types.Application
		if err := readJSONFile(path, &apps); err != nil {
			return nil, err
		}
		for i, app := range apps {
			if strings.TrimSpace(app.ID) == "" {
				return nil, fmt.Errorf("application %d in %s has no id", i, path)
			}
		}
		return apps, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	var apps []types.Application
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".txt" && ext != ".md") {
			continue
		}
		text, err := readText(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		apps = append(apps, types.Application{
			ID:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Text: text,
		})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}
