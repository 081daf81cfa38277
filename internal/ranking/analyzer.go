package ranking

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/extraction"
	"github.com/jonathan/hr-insights/internal/types"
)

// DefaultScreeningConcurrency bounds how many applications are scored at once.
const DefaultScreeningConcurrency = 4

// Analyzer runs extraction and scoring over raw documents.
type Analyzer struct {
	extractor   *extraction.Extractor
	scorer      *Scorer
	concurrency int
}

// NewAnalyzer creates an Analyzer. A concurrency below 1 uses DefaultScreeningConcurrency.
func NewAnalyzer(c *catalog.Catalog, extractor *extraction.Extractor, concurrency int) *Analyzer {
	if c == nil {
		c = catalog.Default()
	}
	if extractor == nil {
		extractor = extraction.New(c)
	}
	if concurrency < 1 {
		concurrency = DefaultScreeningConcurrency
	}
	return &Analyzer{
		extractor:   extractor,
		scorer:      NewScorer(c),
		concurrency: concurrency,
	}
}

// Scorer returns the underlying scorer.
func (a *Analyzer) Scorer() *Scorer {
	return a.scorer
}

// Analyze scores a document. Blank text yields the no-data result.
func (a *Analyzer) Analyze(text string, req *types.RequirementSet) types.ScoreResult {
	_, result := a.Evaluate(text, req)
	return result
}

// Evaluate is Analyze that also returns the extracted features.
func (a *Analyzer) Evaluate(text string, req *types.RequirementSet) (types.FeatureSet, types.ScoreResult) {
	if strings.TrimSpace(text) == "" {
		return a.extractor.Extract(""), NoDataResult()
	}
	features := a.extractor.ExtractFor(text, requiredNames(req))
	return features, a.scorer.Score(features, req)
}

func requiredNames(req *types.RequirementSet) []string {
	if req == nil {
		return nil
	}
	names := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		names = append(names, s.Name)
	}
	return names
}

// Screen scores every application against one requirement set, in parallel.
// Applications scoring at least the set's minimum are shortlisted, the rest go
// to review; applications that cannot be scored go to manual review.
// Results keep the input order.
func (a *Analyzer) Screen(ctx context.Context, req *types.RequirementSet, apps []types.Application) (*types.ScreeningSummary, error) {
	results := make([]types.ScreeningResult, len(apps))
	threshold := req.Threshold()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, app := range apps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.screenOne(app, req, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screening interrupted: %w", err)
	}

	summary := &types.ScreeningSummary{Total: len(results), Results: results}
	for _, r := range results {
		switch r.Recommendation {
		case types.RecommendShortlist:
			summary.Shortlisted++
		case types.RecommendReview:
			summary.Review++
		default:
			summary.Manual++
		}
	}
	return summary, nil
}

func (a *Analyzer) screenOne(app types.Application, req *types.RequirementSet, threshold int) types.ScreeningResult {
	result := types.ScreeningResult{
		ApplicationID: app.ID,
		CandidateName: app.CandidateName,
	}
	if strings.TrimSpace(app.Text) == "" {
		result.Recommendation = types.RecommendManualReview
		result.Error = "application has no text to analyze"
		return result
	}

	score := a.Analyze(app.Text, req)
	result.Score = &score
	if score.OverallScore >= threshold {
		result.Recommendation = types.RecommendShortlist
	} else {
		result.Recommendation = types.RecommendReview
	}
	return result
}
