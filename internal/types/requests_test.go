//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestFeedbackRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request FeedbackRequest
		wantErr bool
		errTag  string
	}{
		{
			name:    "valid request",
			request: FeedbackRequest{ConversationID: "u1_1", MessageIndex: intPtr(1), Rating: 5},
		},
		{
			name:    "index zero is allowed",
			request: FeedbackRequest{ConversationID: "u1_1", MessageIndex: intPtr(0), Rating: 1},
		},
		{
			name:    "missing index",
			request: FeedbackRequest{ConversationID: "u1_1", Rating: 3},
			wantErr: true,
			errTag:  "required",
		},
		{
			name:    "rating too high",
			request: FeedbackRequest{ConversationID: "u1_1", MessageIndex: intPtr(1), Rating: 6},
			wantErr: true,
			errTag:  "max",
		},
		{
			name:    "rating zero",
			request: FeedbackRequest{ConversationID: "u1_1", MessageIndex: intPtr(1), Rating: 0},
			wantErr: true,
			errTag:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.errTag, verrs[0].Tag())
		})
	}
}

func TestSkillGapRequest_Validation(t *testing.T) {
	t.Run("needs a target", func(t *testing.T) {
		req := SkillGapRequest{Skills: []CandidateSkill{{Name: "go"}}}
		assert.Error(t, req.Validate())
	})

	t.Run("role title is enough", func(t *testing.T) {
		req := SkillGapRequest{TargetRole: "Backend Engineer"}
		assert.NoError(t, req.Validate())
	})

	t.Run("requirement set is enough", func(t *testing.T) {
		req := SkillGapRequest{RequirementSetID: "rs-1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("skill without name", func(t *testing.T) {
		req := SkillGapRequest{TargetRole: "x", Skills: []CandidateSkill{{Level: "expert"}}}
		assert.Error(t, req.Validate())
	})
}

func TestScreenApplicationsRequest_Validation(t *testing.T) {
	assert.Error(t, (&ScreenApplicationsRequest{RequirementSetID: "rs"}).Validate())
	assert.Error(t, (&ScreenApplicationsRequest{
		RequirementSetID: "rs",
		Applications:     []Application{{Text: "no id"}},
	}).Validate())
	assert.NoError(t, (&ScreenApplicationsRequest{
		RequirementSetID: "rs",
		Applications:     []Application{{ID: "a1", Text: "resume"}},
	}).Validate())
}

func TestRequirementSet_Validate(t *testing.T) {
	rs := RequirementSet{ID: "rs", Skills: []RequiredSkill{{Name: "go", Importance: "urgent"}}}
	assert.Error(t, rs.Validate())

	rs.Skills[0].Importance = ImportanceHigh
	assert.NoError(t, rs.Validate())
}

func TestRequirementSet_Threshold(t *testing.T) {
	var nilSet *RequirementSet
	assert.Equal(t, DefaultMinimumScore, nilSet.Threshold())
	assert.Equal(t, DefaultMinimumScore, (&RequirementSet{}).Threshold())
	assert.Equal(t, 75, (&RequirementSet{MinimumScore: 75}).Threshold())
}

func TestRequiredSkill_ImportanceOrDefault(t *testing.T) {
	assert.Equal(t, ImportanceMedium, RequiredSkill{}.ImportanceOrDefault())
	assert.Equal(t, ImportanceMedium, RequiredSkill{Importance: "critical"}.ImportanceOrDefault())
	assert.Equal(t, ImportanceLow, RequiredSkill{Importance: ImportanceLow}.ImportanceOrDefault())
}
