package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hr-insights/internal/observability"
	"github.com/jonathan/hr-insights/internal/ranking"
	"github.com/jonathan/hr-insights/internal/skills"
	"github.com/jonathan/hr-insights/internal/types"
)

var (
	gapSkillsFile   string
	gapRequirements string
	gapRole         string
	gapSetsFile     string
	gapCatalog      string
	gapJSON         bool
)

var skillGapsCmd = &cobra.Command{
	Use:   "skill-gaps",
	Short: "Compare a candidate's skills with a requirement set or a role",
	Long: `Compare the skills in --skills (a JSON array of {"name","level"} objects) with either
a requirement set file (--requirements) or a role target aggregated from the
requirement sets in --sets whose title contains --role.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSkillGaps(cmd.OutOrStdout(), gapOptions{
			catalogPath:      gapCatalog,
			skillsPath:       gapSkillsFile,
			requirementsPath: gapRequirements,
			role:             gapRole,
			setsPath:         gapSetsFile,
			asJSON:           gapJSON,
		})
	},
}

func init() {
	skillGapsCmd.Flags().StringVarP(&gapSkillsFile, "skills", "s", "", "Path to the candidate's skills JSON file (required)")
	skillGapsCmd.Flags().StringVarP(&gapRequirements, "requirements", "r", "", "Path to the target requirement set JSON file")
	skillGapsCmd.Flags().StringVar(&gapRole, "role", "", "Target role title, aggregated from --sets")
	skillGapsCmd.Flags().StringVar(&gapSetsFile, "sets", "", "Path to a JSON array of requirement sets (used with --role)")
	skillGapsCmd.Flags().StringVar(&gapCatalog, "catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	skillGapsCmd.Flags().BoolVar(&gapJSON, "json", false, "Print JSON instead of a summary")
	_ = skillGapsCmd.MarkFlagRequired("skills")
	skillGapsCmd.MarkFlagsMutuallyExclusive("requirements", "role")
	skillGapsCmd.MarkFlagsRequiredTogether("role", "sets")
	skillGapsCmd.MarkFlagsOneRequired("requirements", "role")
	rootCmd.AddCommand(skillGapsCmd)
}

type gapOptions struct {
	catalogPath      string
	skillsPath       string
	requirementsPath string
	role             string
	setsPath         string
	asJSON           bool
}

// gapOutput is the JSON printed by skill-gaps --json
type gapOutput struct {
	Target   *types.RequirementSet `json:"target"`
	Analysis types.SkillGapReport  `json:"analysis"`
}

func runSkillGaps(out io.Writer, opts gapOptions) error {
	c, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	var candidate []types.CandidateSkill
	if err := readJSONFile(opts.skillsPath, &candidate); err != nil {
		return err
	}

	var target *types.RequirementSet
	switch {
	case opts.requirementsPath != "":
		target, err = readRequirementSet(opts.requirementsPath)
		if err != nil {
			return err
		}
	case opts.role != "" && opts.setsPath != "":
		var sets []types.RequirementSet
		if err := readJSONFile(opts.setsPath, &sets); err != nil {
			return err
		}
		target, err = skills.NewAggregator(c).BuildRoleTarget(opts.role, sets)
		if err != nil {
			return fmt.Errorf("role %q: %w", opts.role, err)
		}
	default:
		return fmt.Errorf("either --requirements or --role with --sets is required")
	}

	report := ranking.NewScorer(c).AnalyzeSkillGaps(candidate, target)
	if opts.asJSON {
		return writeJSON(out, gapOutput{Target: target, Analysis: report})
	}

	name := target.Title
	if name == "" {
		name = target.ID
	}
	observability.NewPrinter(out).PrintSkillGaps(name, &report)
	return nil
}
