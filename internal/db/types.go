package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hr-insights/internal/types"
)

// Analysis is a stored resume score against one requirement set
type Analysis struct {
	ID               uuid.UUID         `json:"id"`
	RequirementSetID string            `json:"requirement_set_id"`
	Subject          string            `json:"subject"`
	OverallScore     int               `json:"overall_score"`
	Result           types.ScoreResult `json:"result"`
	CreatedAt        time.Time         `json:"created_at"`
}

// NewAnalysis builds an Analysis with a fresh id.
func NewAnalysis(requirementSetID, subject string, result types.ScoreResult) *Analysis {
	return &Analysis{
		ID:               uuid.New(),
		RequirementSetID: requirementSetID,
		Subject:          subject,
		OverallScore:     result.OverallScore,
		Result:           result,
	}
}

// DefaultAnalysesLimit bounds ListAnalyses when no limit is given.
const DefaultAnalysesLimit = 50
