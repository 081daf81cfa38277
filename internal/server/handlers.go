package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/conversation"
	"github.com/jonathan/hr-insights/internal/db"
	"github.com/jonathan/hr-insights/internal/ingestion"
	"github.com/jonathan/hr-insights/internal/intent"
	"github.com/jonathan/hr-insights/internal/server/middleware"
	"github.com/jonathan/hr-insights/internal/types"
)

// EventAnalysisCompleted is published to the caller's room after a resume is scored.
const EventAnalysisCompleted = "analysis_completed"

// inlineSubject names analyses submitted as JSON text rather than as a file.
const inlineSubject = "inline"

// AnalyzeResumeResponse represents the response for /ai/analyze-resume
type AnalyzeResumeResponse struct {
	AnalysisID       string            `json:"analysis_id"`
	RequirementSetID string            `json:"requirement_set_id"`
	JobTitle         string            `json:"job_title,omitempty"`
	FileName         string            `json:"file_name,omitempty"`
	Analysis         types.ScoreResult `json:"analysis"`
	Features         types.FeatureSet  `json:"features"`
}

// analysisEvent is the real-time payload for EventAnalysisCompleted
type analysisEvent struct {
	AnalysisID       string `json:"analysis_id"`
	RequirementSetID string `json:"requirement_set_id"`
	Subject          string `json:"subject"`
	OverallScore     int    `json:"overall_score"`
}

// ScreeningResponse represents the response for /ai/screen-applications
type ScreeningResponse struct {
	RequirementSetID string `json:"requirement_set_id"`
	JobTitle         string `json:"job_title,omitempty"`
	*types.ScreeningSummary
}

// ClassifyResponse represents the response for /ai/classify
type ClassifyResponse struct {
	Intent   types.Intent   `json:"intent"`
	Entities types.Entities `json:"entities"`
	Scores   []intent.Score `json:"scores"`
}

// SkillGapResponse represents the response for /ai/skill-gaps
type SkillGapResponse struct {
	Target   *types.RequirementSet `json:"target"`
	Analysis types.SkillGapReport  `json:"analysis"`
}

// SentimentResponse represents the response for /ai/sentiment
type SentimentResponse struct {
	types.Sentiment
	Context string `json:"context,omitempty"`
}

// StatusResponse represents the response for /ai/status
type StatusResponse struct {
	Status         string          `json:"status"`
	CatalogVersion string          `json:"catalog_version,omitempty"`
	Storage        string          `json:"storage"`
	Generative     bool            `json:"generative"`
	Features       map[string]bool `json:"features"`
	DroppedEvents  int64           `json:"dropped_events"`
	UptimeSeconds  int64           `json:"uptime_seconds"`
}

// decodeJSON decodes the request body into dst, reporting malformed bodies
// as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// limitBody caps the request body at the configured upload size.
func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}
}

// requirementSet loads a stored set, mapping a missing one to ErrRequirementSetNotFound.
func (s *Server) requirementSet(ctx context.Context, id string) (*types.RequirementSet, error) {
	set, err := s.store.GetRequirementSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, &ErrRequirementSetNotFound{ID: id}
	}
	return set, nil
}

// handleStatus reports which features are available
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Status:         "ok",
		CatalogVersion: s.catalog.Version,
		Storage:        "memory",
		Generative:     s.chat.Assistant().GenerativeEnabled(),
		DroppedEvents:  s.hub.Dropped(),
		UptimeSeconds:  int64(time.Since(s.started).Seconds()),
	}
	if s.cfg.UseDatabase() {
		resp.Storage = "postgres"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	storageUp := true
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("storage ping failed", zap.Error(err))
		resp.Status = "degraded"
		storageUp = false
	}

	resp.Features = map[string]bool{
		"resume_screening":   storageUp,
		"feature_extraction": true,
		"skill_gap_analysis": storageUp,
		"sentiment_analysis": true,
		"intent_detection":   true,
		"chatbot":            true,
		"generative_answers": resp.Generative,
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeResume scores one resume against a stored requirement set
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	s.limitBody(w, r)
	req, fileName, err := s.readAnalyzeRequest(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	set, err := s.requirementSet(r.Context(), req.RequirementSetID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	features, result := s.analyzer.Evaluate(req.Text, set)

	subject := fileName
	if subject == "" {
		subject = inlineSubject
	}
	analysis := db.NewAnalysis(set.ID, subject, result)
	if err := s.store.SaveAnalysis(r.Context(), analysis); err != nil {
		s.handleError(w, r, err)
		return
	}

	if user, err := middleware.GetUser(r); err == nil {
		s.hub.PublishToUser(user.UserID, EventAnalysisCompleted, analysisEvent{
			AnalysisID:       analysis.ID.String(),
			RequirementSetID: set.ID,
			Subject:          subject,
			OverallScore:     result.OverallScore,
		})
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResumeResponse{
		AnalysisID:       analysis.ID.String(),
		RequirementSetID: set.ID,
		JobTitle:         set.Title,
		FileName:         fileName,
		Analysis:         result,
		Features:         features,
	})
}

// readAnalyzeRequest accepts a JSON body or a multipart form carrying a
// plain-text "resume" file. It returns the uploaded file name, if any.
func (s *Server) readAnalyzeRequest(r *http.Request) (types.AnalyzeResumeRequest, string, error) {
	var req types.AnalyzeResumeRequest

	contentType := r.Header.Get("Content-Type")
	mediaType := "application/json"
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return req, "", &ErrUnsupportedMedia{ContentType: contentType}
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		if err := decodeJSON(r, &req); err != nil {
			return req, "", err
		}
		if err := req.Validate(); err != nil {
			return req, "", validationError(err)
		}
		req.Text = ingestion.CleanText(req.Text)
		return req, "", nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return req, "", err
			}
			return req, "", &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()}
		}
		req.RequirementSetID = strings.TrimSpace(r.FormValue("requirement_set_id"))
		if req.RequirementSetID == "" {
			return req, "", &ErrValidation{Field: "requirement_set_id", Message: "required"}
		}

		file, header, err := r.FormFile("resume")
		if err != nil {
			return req, "", &ErrValidation{Field: "resume", Message: "file is required"}
		}
		defer file.Close() //nolint:errcheck

		data, err := io.ReadAll(file)
		if err != nil {
			return req, "", err
		}
		if err := checkTextUpload(header.Header.Get("Content-Type"), data); err != nil {
			return req, "", err
		}
		req.Text = ingestion.CleanText(string(data))
		return req, header.Filename, nil

	default:
		return req, "", &ErrUnsupportedMedia{ContentType: mediaType}
	}
}

// checkTextUpload accepts only text/* uploads that decode as UTF-8. A missing
// or generic declared type is replaced by a sniffed one.
func checkTextUpload(declared string, data []byte) error {
	if declared == "" || declared == "application/octet-stream" {
		declared = http.DetectContentType(data)
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || !strings.HasPrefix(mediaType, "text/") {
		return &ErrUnsupportedMedia{ContentType: declared}
	}
	if !utf8.Valid(data) {
		return &ErrUnsupportedMedia{ContentType: declared + " (invalid UTF-8)"}
	}
	return nil
}

// handleScreenApplications scores a batch of applications against one requirement set
func (s *Server) handleScreenApplications(w http.ResponseWriter, r *http.Request) {
	s.limitBody(w, r)
	var req types.ScreenApplicationsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	set, err := s.requirementSet(r.Context(), req.RequirementSetID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	summary, err := s.analyzer.Screen(r.Context(), set, req.Applications)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	for _, result := range summary.Results {
		if result.Score == nil {
			continue
		}
		if err := s.store.SaveAnalysis(r.Context(), db.NewAnalysis(set.ID, result.ApplicationID, *result.Score)); err != nil {
			s.handleError(w, r, err)
			return
		}
	}

	s.logger.Info("applications screened",
		zap.String("requirement_set_id", set.ID),
		zap.Int("total", summary.Total),
		zap.Int("shortlisted", summary.Shortlisted),
	)
	s.jsonResponse(w, http.StatusOK, ScreeningResponse{
		RequirementSetID: set.ID,
		JobTitle:         set.Title,
		ScreeningSummary: summary,
	})
}

// handleExtract returns the features found in a document
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	s.limitBody(w, r)
	var req types.ExtractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, s.extractor.Extract(req.Text))
}

// handleClassify returns the intent of a query with every category's score
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ClassifyResponse{
		Intent:   s.classifier.Classify(req.Query),
		Entities: conversation.ExtractEntities(req.Query),
		Scores:   s.classifier.Scores(req.Query),
	})
}

// handleSkillGaps compares a skill list with a stored set or a role built from similar sets
func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	var req types.SkillGapRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	var target *types.RequirementSet
	var err error
	if req.RequirementSetID != "" {
		target, err = s.requirementSet(r.Context(), req.RequirementSetID)
	} else {
		target, err = s.roleTarget(r.Context(), req.TargetRole)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SkillGapResponse{
		Target:   target,
		Analysis: s.analyzer.Scorer().AnalyzeSkillGaps(req.Skills, target),
	})
}

// roleTarget builds a requirement set for a role title from the stored sets.
func (s *Server) roleTarget(ctx context.Context, role string) (*types.RequirementSet, error) {
	sets, err := s.store.ListRequirementSets(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.BuildRoleTarget(role, sets)
}

// handleSentiment returns the polarity of a piece of text
func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req types.SentimentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, SentimentResponse{
		Sentiment: s.sentiment.Analyze(req.Text),
		Context:   req.Context,
	})
}
