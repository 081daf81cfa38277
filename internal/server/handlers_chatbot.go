package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/server/middleware"
	"github.com/jonathan/hr-insights/internal/types"
)

// ConversationResponse represents the response for GET /chatbot/conversation/{id}
type ConversationResponse struct {
	ConversationID string                   `json:"conversation_id"`
	Messages       []types.ConversationTurn `json:"messages"`
	MessageCount   int                      `json:"message_count"`
}

// SuggestionsResponse represents the response for GET /chatbot/suggestions
type SuggestionsResponse struct {
	Role        string                    `json:"role"`
	Suggestions []string                  `json:"suggestions"`
	Groups      []catalog.SuggestionGroup `json:"groups"`
}

// currentUser returns the authenticated user. Routes are always wrapped in
// AuthMiddleware, so a missing user is a wiring bug.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (types.UserContext, bool) {
	user, err := middleware.GetUser(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return types.UserContext{}, false
	}
	return user, true
}

// handleChatMessage answers a message and records it in the conversation
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req types.ChatMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	result, err := s.chat.HandleMessage(r.Context(), user, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetConversation returns the caller's conversation history
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	history, err := s.chat.History(user, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if history == nil {
		history = []types.ConversationTurn{}
	}
	s.jsonResponse(w, http.StatusOK, ConversationResponse{
		ConversationID: id,
		Messages:       history,
		MessageCount:   len(history),
	})
}

// handleClearConversation discards the caller's conversation
func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if err := s.chat.Clear(user, r.PathValue("id")); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSuggestions returns suggested questions for the caller's role,
// narrowed by an optional intent category
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	assistant := s.chat.Assistant()
	category := r.URL.Query().Get("category")
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{
		Role:        user.Role,
		Suggestions: assistant.Suggestions(user.Role, category),
		Groups:      assistant.RoleSuggestions(user.Role),
	})
}

// handleFeedback records a rating for an assistant message
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var req types.FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	if err := s.chat.Feedback(user, req); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// handleChatAnalytics summarizes chatbot usage
func (s *Server) handleChatAnalytics(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.chat.Analytics())
}
