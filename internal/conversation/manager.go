package conversation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/types"
)

// EventChatbotResponse is published to the user's room after each reply.
const EventChatbotResponse = "chatbot_response"

// Publisher delivers real-time events to a user
type Publisher interface {
	PublishToUser(userID, eventType string, data any)
}

// MessageResult is the outcome of one chat message
type MessageResult struct {
	ConversationID string         `json:"conversation_id"`
	Response       string         `json:"response"`
	Intent         types.Intent   `json:"intent"`
	Confidence     float64        `json:"confidence"`
	Entities       types.Entities `json:"entities"`
	Suggestions    []string       `json:"suggestions"`
	Timestamp      time.Time      `json:"timestamp"`
}

// chatbotEvent is the real-time payload for EventChatbotResponse
type chatbotEvent struct {
	ConversationID string       `json:"conversation_id"`
	Message        string       `json:"message"`
	Intent         types.Intent `json:"intent"`
	Confidence     float64      `json:"confidence"`
}

// Manager ties the assistant to conversation history and event delivery.
type Manager struct {
	assistant     *Assistant
	store         *Store
	publisher     Publisher
	contextWindow int
	logger        *zap.Logger
	now           func() time.Time
}

// ManagerConfig configures a Manager
type ManagerConfig struct {
	Assistant     *Assistant
	Store         *Store
	Publisher     Publisher
	ContextWindow int
	Logger        *zap.Logger
	Clock         func() time.Time
}

// NewManager creates a Manager. Nil fields get working defaults.
func NewManager(cfg ManagerConfig) *Manager {
	m := &Manager{
		assistant:     cfg.Assistant,
		store:         cfg.Store,
		publisher:     cfg.Publisher,
		contextWindow: cfg.ContextWindow,
		logger:        cfg.Logger,
		now:           cfg.Clock,
	}
	if m.assistant == nil {
		m.assistant = NewAssistant(nil)
	}
	if m.store == nil {
		m.store = NewStore(DefaultHistoryLimit)
	}
	if m.contextWindow < 1 {
		m.contextWindow = DefaultContextWindow
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Assistant returns the underlying assistant.
func (m *Manager) Assistant() *Assistant {
	return m.assistant
}

// HandleMessage records the user's message, answers it with the recent
// conversation as context, and publishes the reply to the user's room.
func (m *Manager) HandleMessage(ctx context.Context, user types.UserContext, req types.ChatMessageRequest) (*MessageResult, error) {
	id := req.ConversationID
	if id == "" {
		id = NewConversationID(user.UserID, m.now())
	} else if !OwnedBy(id, user.UserID) {
		return nil, ErrNotOwner
	}

	m.store.Append(id, types.ConversationTurn{
		Role:      types.RoleUser,
		Text:      req.Message,
		Timestamp: m.now(),
	})

	reply := m.assistant.respond(ctx, req.Message, user, m.store.Recent(id, m.contextWindow))
	answeredAt := m.now()
	m.store.Append(id, types.ConversationTurn{
		Role:       types.RoleAssistant,
		Text:       reply.Response,
		Timestamp:  answeredAt,
		Intent:     reply.Intent.Category,
		Confidence: reply.Intent.Confidence,
	})

	m.logger.Debug("chatbot reply",
		zap.String("conversation_id", id),
		zap.String("intent", reply.Intent.Category),
		zap.Float64("confidence", reply.Intent.Confidence),
	)

	if m.publisher != nil {
		m.publisher.PublishToUser(user.UserID, EventChatbotResponse, chatbotEvent{
			ConversationID: id,
			Message:        reply.Response,
			Intent:         reply.Intent,
			Confidence:     reply.Intent.Confidence,
		})
	}

	return &MessageResult{
		ConversationID: id,
		Response:       reply.Response,
		Intent:         reply.Intent,
		Confidence:     reply.Intent.Confidence,
		Entities:       reply.Entities,
		Suggestions:    reply.Suggestions,
		Timestamp:      answeredAt,
	}, nil
}

// History returns the turns of a conversation owned by the user.
func (m *Manager) History(user types.UserContext, id string) ([]types.ConversationTurn, error) {
	if !OwnedBy(id, user.UserID) {
		return nil, ErrNotOwner
	}
	return m.store.History(id), nil
}

// Clear discards a conversation owned by the user.
func (m *Manager) Clear(user types.UserContext, id string) error {
	if !OwnedBy(id, user.UserID) {
		return ErrNotOwner
	}
	m.store.Clear(id)
	return nil
}

// Feedback rates a message in a conversation owned by the user.
func (m *Manager) Feedback(user types.UserContext, req types.FeedbackRequest) error {
	if !OwnedBy(req.ConversationID, user.UserID) {
		return ErrNotOwner
	}
	if req.MessageIndex == nil {
		return fmt.Errorf("%w: index missing", ErrMessageNotFound)
	}
	turn, err := m.store.SetFeedback(req.ConversationID, *req.MessageIndex, types.Feedback{
		Rating:    req.Rating,
		Comment:   req.Comment,
		Timestamp: m.now(),
	})
	if err != nil {
		return err
	}
	m.logger.Info("chatbot feedback",
		zap.String("conversation_id", req.ConversationID),
		zap.Int("message_index", *req.MessageIndex),
		zap.Int("rating", req.Rating),
		zap.String("intent", turn.Intent),
		zap.String("user_id", user.UserID),
	)
	return nil
}

// Analytics summarizes usage across all conversations.
func (m *Manager) Analytics() Analytics {
	return m.store.Analytics(m.now())
}
