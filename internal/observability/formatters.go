// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hr-insights/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// writeList appends up to limit items under a heading, noting how many were left out.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintFeatures outputs a summary of the features extracted from a document.
func (p *Printer) PrintFeatures(features *types.FeatureSet) {
	if features == nil {
		return
	}

	var sb strings.Builder
	if features.Contact.Email != "" {
		fmt.Fprintf(&sb, "Email:    %s\n", features.Contact.Email)
	}
	if features.Contact.Phone != "" {
		fmt.Fprintf(&sb, "Phone:    %s\n", features.Contact.Phone)
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}

	skills := make([]string, 0, len(features.Skills))
	for _, s := range features.Skills {
		skills = append(skills, fmt.Sprintf("%s (%s, %s, %.2f)", s.Name, s.Category, s.Level, s.Confidence))
	}
	writeList(&sb, "Skills", skills, maxItemsToShow)

	experience := make([]string, 0, len(features.Experience))
	for _, e := range features.Experience {
		line := e.Description
		if e.Years > 0 {
			line = fmt.Sprintf("[%.1fy] %s", e.Years, line)
		}
		experience = append(experience, line)
	}
	writeList(&sb, "Experience", experience, 3)

	education := make([]string, 0, len(features.Education))
	for _, e := range features.Education {
		line := e.Degree
		if e.Institution != "" {
			line += ", " + e.Institution
		}
		if e.Year > 0 {
			line += fmt.Sprintf(" (%d)", e.Year)
		}
		education = append(education, strings.TrimPrefix(line, ", "))
	}
	writeList(&sb, "Education", education, 3)

	if sb.Len() == 0 {
		sb.WriteString("Nothing extracted\n")
	}
	p.printBox("EXTRACTED FEATURES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreResult outputs the overall score, its components and the generated insights.
func (p *Printer) PrintScoreResult(title string, result *types.ScoreResult) {
	if result == nil {
		return
	}
	if result.NoData {
		p.printBox(title, "No data to score")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:    %d/100 (confidence %.2f)\n", result.OverallScore, result.Confidence)
	fmt.Fprintf(&sb, "Skills:     %.2f\n", result.SkillsMatch)
	fmt.Fprintf(&sb, "Experience: %.2f\n", result.ExperienceMatch)
	fmt.Fprintf(&sb, "Education:  %.2f\n", result.EducationMatch)
	fmt.Fprintf(&sb, "Keywords:   %.2f\n", result.KeywordMatch)
	sb.WriteString("\n")

	writeList(&sb, "Matched", result.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing", result.MissingSkills, maxItemsToShow)
	writeList(&sb, "Strengths", result.Strengths, 3)
	writeList(&sb, "Weaknesses", result.Weaknesses, 3)
	writeList(&sb, "Recommendations", result.Recommendations, maxItemsToShow)

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScreening outputs the verdict counts and one line per application.
func (p *Printer) PrintScreening(summary *types.ScreeningSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %d  Shortlisted: %d  Review: %d  Manual: %d\n\n",
		summary.Total, summary.Shortlisted, summary.Review, summary.Manual)

	for _, r := range summary.Results {
		name := r.ApplicationID
		if r.CandidateName != "" {
			name = fmt.Sprintf("%s (%s)", r.CandidateName, r.ApplicationID)
		}
		if r.Score != nil {
			fmt.Fprintf(&sb, "%-14s %3d  %s\n", r.Recommendation, r.Score.OverallScore, name)
		} else {
			fmt.Fprintf(&sb, "%-14s   -  %s\n", r.Recommendation, name)
		}
	}

	p.printBox("SCREENING RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGaps outputs the gaps, strengths and learning plan of a report.
func (p *Printer) PrintSkillGaps(target string, report *types.SkillGapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if target != "" {
		fmt.Fprintf(&sb, "Target:   %s\n\n", target)
	}

	gaps := make([]string, 0, len(report.Gaps))
	for _, g := range report.Gaps {
		gaps = append(gaps, fmt.Sprintf("%s: %s -> %s (priority %d)", g.Skill, g.CurrentLevel, g.TargetLevel, g.Priority))
	}
	writeList(&sb, "Gaps", gaps, maxItemsToShow)

	strengths := make([]string, 0, len(report.Strengths))
	for _, s := range report.Strengths {
		strengths = append(strengths, fmt.Sprintf("%s (%s, +%d)", s.Skill, s.Level, s.Advantage))
	}
	writeList(&sb, "Strengths", strengths, maxItemsToShow)

	plan := make([]string, 0, len(report.Recommendations))
	for _, step := range report.Recommendations {
		plan = append(plan, fmt.Sprintf("%s [%dw]", step.Action, step.EstimatedWeeks))
	}
	writeList(&sb, "Plan", plan, maxItemsToShow)

	if report.TimelineWeeks > 0 {
		fmt.Fprintf(&sb, "Timeline: %d weeks\n", report.TimelineWeeks)
	} else if len(report.Gaps) == 0 {
		sb.WriteString("No gaps found\n")
	}

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIntent outputs a classified query and the entities found in it.
func (p *Printer) PrintIntent(query string, intent types.Intent, entities types.Entities) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query:      %s\n", query)
	fmt.Fprintf(&sb, "Intent:     %s\n", intent.Category)
	fmt.Fprintf(&sb, "Confidence: %.2f\n", intent.Confidence)
	if len(entities.Dates) > 0 {
		fmt.Fprintf(&sb, "Dates:      %s\n", strings.Join(entities.Dates, ", "))
	}
	if len(entities.Numbers) > 0 {
		fmt.Fprintf(&sb, "Numbers:    %s\n", strings.Join(entities.Numbers, ", "))
	}

	p.printBox("INTENT", strings.TrimSuffix(sb.String(), "\n"))
}
