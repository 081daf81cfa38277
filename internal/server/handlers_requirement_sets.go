package server

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/db"
	"github.com/jonathan/hr-insights/internal/types"
)

// maxAnalysesLimit caps the limit query parameter of the analyses listing.
const maxAnalysesLimit = 500

// RequirementSetListResponse represents the response for GET /requirement-sets
type RequirementSetListResponse struct {
	RequirementSets []types.RequirementSet `json:"requirement_sets"`
	Count           int                    `json:"count"`
}

// AnalysisListResponse represents the response for GET /requirement-sets/{id}/analyses
type AnalysisListResponse struct {
	RequirementSetID string        `json:"requirement_set_id"`
	Analyses         []db.Analysis `json:"analyses"`
	Count            int           `json:"count"`
}

// handleListRequirementSets lists all stored requirement sets
func (s *Server) handleListRequirementSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.store.ListRequirementSets(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if sets == nil {
		sets = []types.RequirementSet{}
	}
	s.jsonResponse(w, http.StatusOK, RequirementSetListResponse{RequirementSets: sets, Count: len(sets)})
}

// handleGetRequirementSet returns one requirement set
func (s *Server) handleGetRequirementSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.requirementSet(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, set)
}

// handlePutRequirementSet creates or replaces the requirement set named in the path
func (s *Server) handlePutRequirementSet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "required"})
		return
	}

	s.limitBody(w, r)
	var set types.RequirementSet
	if err := decodeJSON(r, &set); err != nil {
		s.handleError(w, r, err)
		return
	}
	if set.ID != "" && set.ID != id {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "does not match the path"})
		return
	}
	set.ID = id
	if err := set.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	if err := s.store.SaveRequirementSet(r.Context(), &set); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.logger.Info("requirement set saved", zap.String("id", set.ID), zap.Int("skills", len(set.Skills)))
	s.jsonResponse(w, http.StatusOK, set)
}

// handleDeleteRequirementSet removes a requirement set
func (s *Server) handleDeleteRequirementSet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := s.store.DeleteRequirementSet(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !deleted {
		s.handleError(w, r, &ErrRequirementSetNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListAnalyses lists stored analyses of a requirement set, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	set, err := s.requirementSet(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	limit := db.DefaultAnalysesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxAnalysesLimit {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxAnalysesLimit)})
			return
		}
		limit = parsed
	}

	analyses, err := s.store.ListAnalyses(r.Context(), set.ID, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}
	s.jsonResponse(w, http.StatusOK, AnalysisListResponse{
		RequirementSetID: set.ID,
		Analyses:         analyses,
		Count:            len(analyses),
	})
}
