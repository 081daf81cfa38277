//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AnalyzeResumeRequest asks for a document to be scored against a stored requirement set.
// Blank text is accepted and scores as no data.
type AnalyzeResumeRequest struct {
	RequirementSetID string `json:"requirement_set_id" validate:"required"`
	Text             string `json:"text"`
}

// ScreenApplicationsRequest asks for a batch of applications to be scored.
type ScreenApplicationsRequest struct {
	RequirementSetID string        `json:"requirement_set_id" validate:"required"`
	Applications     []Application `json:"applications" validate:"required,min=1,max=100,dive"`
}

// ExtractRequest asks for features to be extracted from a document.
type ExtractRequest struct {
	Text string `json:"text" validate:"required"`
}

// ClassifyRequest asks for the intent of a query.
type ClassifyRequest struct {
	Query string `json:"query"`
}

// SkillGapRequest compares a candidate's skills with a stored requirement set or a role title.
type SkillGapRequest struct {
	Skills           []CandidateSkill `json:"skills" validate:"dive"`
	RequirementSetID string           `json:"requirement_set_id,omitempty" validate:"required_without=TargetRole"`
	TargetRole       string           `json:"target_role,omitempty" validate:"required_without=RequirementSetID"`
}

// CandidateSkill is a skill the candidate claims at a given level.
type CandidateSkill struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level,omitempty"`
}

// SentimentRequest asks for the polarity of a piece of text.
type SentimentRequest struct {
	Text    string `json:"text" validate:"required"`
	Context string `json:"context,omitempty"`
}

// ChatMessageRequest is a user message sent to the assistant.
type ChatMessageRequest struct {
	Message        string `json:"message" validate:"required,max=4000"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// FeedbackRequest rates an assistant message.
type FeedbackRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	MessageIndex   *int   `json:"message_index" validate:"required,min=0"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Comment        string `json:"comment,omitempty" validate:"max=1000"`
}

// Validate validates the AnalyzeResumeRequest.
func (r *AnalyzeResumeRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ScreenApplicationsRequest.
func (r *ScreenApplicationsRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ExtractRequest.
func (r *ExtractRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SkillGapRequest.
func (r *SkillGapRequest) Validate() error { return validate.Struct(r) }

// Validate validates the SentimentRequest.
func (r *SentimentRequest) Validate() error { return validate.Struct(r) }

// Validate validates the ChatMessageRequest.
func (r *ChatMessageRequest) Validate() error { return validate.Struct(r) }

// Validate validates the FeedbackRequest.
func (r *FeedbackRequest) Validate() error { return validate.Struct(r) }

// Validate validates the RequirementSet and its skills.
func (r *RequirementSet) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i := range r.Skills {
		if err := validate.Struct(&r.Skills[i]); err != nil {
			return err
		}
	}
	return nil
}
