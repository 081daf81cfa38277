// Package conversation holds the HR assistant: reply generation, suggestions
// and the in-memory conversation history.
package conversation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/hr-insights/internal/types"
)

// Store defaults
const (
	DefaultHistoryLimit  = 50
	DefaultContextWindow = 10
	analyticsTopUsers    = 10
	analyticsPeriod      = 30 * 24 * time.Hour
)

// Errors returned by Store and Manager
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotOwner             = errors.New("conversation belongs to another user")
)

// State is the lifecycle state of a conversation
type State string

// Conversation states
const (
	StateNew    State = "new"
	StateActive State = "active"
)

// Store keeps conversation turns in memory for the lifetime of the process.
// Histories are truncated to the most recent limit turns.
type Store struct {
	mu            sync.RWMutex
	conversations map[string][]types.ConversationTurn
	limit         int
}

// NewStore creates an empty store. A limit below 1 uses DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &Store{
		conversations: make(map[string][]types.ConversationTurn),
		limit:         limit,
	}
}

// NewConversationID builds an id of the form <userID>_<unixMillis>.
func NewConversationID(userID string, now time.Time) string {
	return fmt.Sprintf("%s_%d", userID, now.UnixMilli())
}

// OwnedBy reports whether a conversation id was issued to userID: the id must be
// exactly userID, an underscore and a millisecond timestamp.
func OwnedBy(conversationID, userID string) bool {
	if userID == "" {
		return false
	}
	millis, ok := strings.CutPrefix(conversationID, userID+"_")
	if !ok {
		return false
	}
	_, err := strconv.ParseUint(millis, 10, 64)
	return err == nil
}

// ownerOf returns the user part of a conversation id.
func ownerOf(conversationID string) string {
	if idx := strings.LastIndex(conversationID, "_"); idx > 0 {
		return conversationID[:idx]
	}
	return conversationID
}

// State returns StateActive once a conversation has any turns.
func (s *Store) State(id string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.conversations[id]) > 0 {
		return StateActive
	}
	return StateNew
}

// Append adds turns to a conversation and truncates it to the limit.
func (s *Store) Append(id string, turns ...types.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := append(s.conversations[id], turns...)
	if len(history) > s.limit {
		history = append([]types.ConversationTurn(nil), history[len(history)-s.limit:]...)
	}
	s.conversations[id] = history
}

// History returns a copy of a conversation, empty if it does not exist.
func (s *Store) History(id string) []types.ConversationTurn {
	return s.Recent(id, 0)
}

// Recent returns a copy of the last n turns; n below 1 returns all of them.
func (s *Store) Recent(id string, n int) []types.ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.conversations[id]
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]types.ConversationTurn, len(history))
	copy(out, history)
	return out
}

// Clear discards a conversation, returning it to StateNew.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
}

// SetFeedback attaches feedback to the turn at index and returns the updated turn.
func (s *Store) SetFeedback(id string, index int, feedback types.Feedback) (types.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, ok := s.conversations[id]
	if !ok {
		return types.ConversationTurn{}, ErrConversationNotFound
	}
	if index < 0 || index >= len(history) {
		return types.ConversationTurn{}, fmt.Errorf("%w: index %d", ErrMessageNotFound, index)
	}
	history[index].Feedback = &feedback
	return history[index], nil
}

// Analytics summarizes chatbot usage
type Analytics struct {
	Overview AnalyticsOverview `json:"overview"`
	Intents  map[string]int    `json:"intents"`
	TopUsers []UserActivity    `json:"top_users"`
	Period   AnalyticsPeriod   `json:"period"`
}

// AnalyticsOverview holds the headline counts
type AnalyticsOverview struct {
	TotalConversations             int     `json:"total_conversations"`
	TotalMessages                  int     `json:"total_messages"`
	AverageMessagesPerConversation float64 `json:"average_messages_per_conversation"`
	TotalFeedback                  int     `json:"total_feedback"`
	AverageRating                  float64 `json:"average_rating"`
}

// UserActivity counts conversations per user
type UserActivity struct {
	UserID            string `json:"user_id"`
	ConversationCount int    `json:"conversation_count"`
}

// AnalyticsPeriod is the reporting window
type AnalyticsPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Analytics computes usage statistics across all stored conversations.
func (s *Store) Analytics(now time.Time) Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := Analytics{
		Intents:  map[string]int{},
		TopUsers: []UserActivity{},
		Period:   AnalyticsPeriod{Start: now.Add(-analyticsPeriod), End: now},
	}
	ratingSum := 0
	perUser := map[string]int{}
	for id, history := range s.conversations {
		result.Overview.TotalConversations++
		result.Overview.TotalMessages += len(history)
		perUser[ownerOf(id)]++
		for _, turn := range history {
			if turn.Role == types.RoleAssistant && turn.Intent != "" {
				result.Intents[turn.Intent]++
			}
			if turn.Feedback != nil {
				result.Overview.TotalFeedback++
				ratingSum += turn.Feedback.Rating
			}
		}
	}

	if result.Overview.TotalConversations > 0 {
		result.Overview.AverageMessagesPerConversation =
			float64(result.Overview.TotalMessages) / float64(result.Overview.TotalConversations)
	}
	if result.Overview.TotalFeedback > 0 {
		avg := float64(ratingSum) / float64(result.Overview.TotalFeedback)
		result.Overview.AverageRating = float64(int(avg*100+0.5)) / 100
	}

	for user, count := range perUser {
		result.TopUsers = append(result.TopUsers, UserActivity{UserID: user, ConversationCount: count})
	}
	sort.Slice(result.TopUsers, func(i, j int) bool {
		if result.TopUsers[i].ConversationCount != result.TopUsers[j].ConversationCount {
			return result.TopUsers[i].ConversationCount > result.TopUsers[j].ConversationCount
		}
		return result.TopUsers[i].UserID < result.TopUsers[j].UserID
	})
	if len(result.TopUsers) > analyticsTopUsers {
		result.TopUsers = result.TopUsers[:analyticsTopUsers]
	}
	return result
}
