//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// IntentUnknown is the category returned when no intent clears the threshold.
const IntentUnknown = "unknown"

// Intent is the classified purpose of a conversational query
type Intent struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a conversation
type ConversationTurn struct {
	Role       string    `json:"role"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Feedback   *Feedback `json:"feedback,omitempty"`
}

// Feedback is a user's rating of an assistant message
type Feedback struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserContext personalizes conversational responses
type UserContext struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Entities are structured values pulled from a query
type Entities struct {
	Dates   []string `json:"dates,omitempty"`
	Numbers []string `json:"numbers,omitempty"`
}

// Reply is the assistant's answer to a query
type Reply struct {
	Response    string   `json:"response"`
	Intent      Intent   `json:"intent"`
	Entities    Entities `json:"entities"`
	Suggestions []string `json:"suggestions"`
}
