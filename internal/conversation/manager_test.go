package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/hr-insights/internal/types"
)

type published struct {
	userID    string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) PublishToUser(userID, eventType string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID, eventType, data})
}

func fixedClock() func() time.Time {
	now := time.UnixMilli(1718000000000).UTC()
	return func() time.Time { return now }
}

func intPtr(i int) *int { return &i }

func TestHandleMessage_NewConversation(t *testing.T) {
	pub := &recordingPublisher{}
	m := NewManager(ManagerConfig{Publisher: pub, Clock: fixedClock()})

	res, err := m.HandleMessage(context.Background(), alice, types.ChatMessageRequest{Message: "How do I request vacation leave?"})
	require.NoError(t, err)

	assert.Equal(t, "alice_1718000000000", res.ConversationID)
	assert.Equal(t, "leave_request", res.Intent.Category)
	assert.Equal(t, res.Intent.Confidence, res.Confidence)
	assert.NotEmpty(t, res.Suggestions)

	history, err := m.History(alice, res.ConversationID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, types.RoleUser, history[0].Role)
	assert.Equal(t, types.RoleAssistant, history[1].Role)
	assert.Equal(t, "leave_request", history[1].Intent)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "alice", pub.events[0].userID)
	assert.Equal(t, EventChatbotResponse, pub.events[0].eventType)
	event, ok := pub.events[0].data.(chatbotEvent)
	require.True(t, ok)
	assert.Equal(t, res.Response, event.Message)
}

func TestHandleMessage_ContinuesConversation(t *testing.T) {
	m := NewManager(ManagerConfig{Clock: fixedClock()})
	ctx := context.Background()

	first, err := m.HandleMessage(ctx, alice, types.ChatMessageRequest{Message: "hello"})
	require.NoError(t, err)
	_, err = m.HandleMessage(ctx, alice, types.ChatMessageRequest{Message: "When is my performance review?", ConversationID: first.ConversationID})
	require.NoError(t, err)

	history, err := m.History(alice, first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestHandleMessage_PassesRecentContextToModel(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	m := NewManager(ManagerConfig{
		Assistant:     NewAssistant(nil, WithLLM(client)),
		ContextWindow: 2,
		Clock:         fixedClock(),
	})
	ctx := context.Background()

	first, err := m.HandleMessage(ctx, alice, types.ChatMessageRequest{Message: "first question"})
	require.NoError(t, err)
	_, err = m.HandleMessage(ctx, alice, types.ChatMessageRequest{Message: "second question", ConversationID: first.ConversationID})
	require.NoError(t, err)

	require.Len(t, client.prompts, 2)
	last := client.prompts[1]
	assert.Contains(t, last, "assistant: ok")
	assert.Contains(t, last, "user: second question")
	assert.NotContains(t, last, "user: first question")
}

func TestHandleMessage_RejectsForeignConversation(t *testing.T) {
	m := NewManager(ManagerConfig{Clock: fixedClock()})
	_, err := m.HandleMessage(context.Background(), alice, types.ChatMessageRequest{Message: "hi", ConversationID: "bob_1"})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestManager_ClearAndOwnership(t *testing.T) {
	m := NewManager(ManagerConfig{Clock: fixedClock()})
	res, err := m.HandleMessage(context.Background(), alice, types.ChatMessageRequest{Message: "hi"})
	require.NoError(t, err)

	bob := types.UserContext{UserID: "bob"}
	_, err = m.History(bob, res.ConversationID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, m.Clear(bob, res.ConversationID), ErrNotOwner)

	require.NoError(t, m.Clear(alice, res.ConversationID))
	history, err := m.History(alice, res.ConversationID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestManager_UnderscoreUserIDsStayIsolated(t *testing.T) {
	m := NewManager(ManagerConfig{Clock: fixedClock()})
	owner := types.UserContext{UserID: "emp_42", Name: "Owner", Role: "employee"}
	res, err := m.HandleMessage(context.Background(), owner, types.ChatMessageRequest{Message: "hi"})
	require.NoError(t, err)

	other := types.UserContext{UserID: "emp"}
	_, err = m.History(other, res.ConversationID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, m.Clear(other, res.ConversationID), ErrNotOwner)
	err = m.Feedback(other, types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(1), Rating: 1})
	assert.ErrorIs(t, err, ErrNotOwner)

	history, err := m.History(owner, res.ConversationID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestManager_Feedback(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewManager(ManagerConfig{Logger: zap.New(core), Clock: fixedClock()})
	res, err := m.HandleMessage(context.Background(), alice, types.ChatMessageRequest{Message: "When does payroll pay my salary?"})
	require.NoError(t, err)

	err = m.Feedback(alice, types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(1), Rating: 5, Comment: "great"})
	require.NoError(t, err)

	history, _ := m.History(alice, res.ConversationID)
	require.NotNil(t, history[1].Feedback)
	assert.Equal(t, "great", history[1].Feedback.Comment)

	entries := logs.FilterMessage("chatbot feedback").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "general_hr", entries[0].ContextMap()["intent"])

	err = m.Feedback(alice, types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(7), Rating: 3})
	assert.ErrorIs(t, err, ErrMessageNotFound)

	err = m.Feedback(alice, types.FeedbackRequest{ConversationID: "alice_999", MessageIndex: intPtr(0), Rating: 3})
	assert.ErrorIs(t, err, ErrConversationNotFound)

	err = m.Feedback(types.UserContext{UserID: "bob"}, types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(0), Rating: 3})
	assert.ErrorIs(t, err, ErrNotOwner)

	analytics := m.Analytics()
	assert.Equal(t, 1, analytics.Overview.TotalFeedback)
	assert.Equal(t, 5.0, analytics.Overview.AverageRating)
}
