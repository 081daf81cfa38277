package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-insights/internal/conversation"
	"github.com/jonathan/hr-insights/internal/types"
)

func intPtr(i int) *int { return &i }

func (e *testEnv) sendMessage(t *testing.T, user types.UserContext, req types.ChatMessageRequest) conversation.MessageResult {
	t.Helper()
	w := e.do(t, http.MethodPost, "/chatbot/message", user, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody[conversation.MessageResult](t, w)
}

func TestChatbot_Conversation(t *testing.T) {
	env := newTestEnv(t)

	first := env.sendMessage(t, testEmployee, types.ChatMessageRequest{Message: "How do I request vacation leave?"})
	assert.True(t, strings.HasPrefix(first.ConversationID, testEmployee.UserID+"_"))
	assert.Equal(t, "leave_request", first.Intent.Category)
	assert.NotEmpty(t, first.Response)
	assert.NotEmpty(t, first.Suggestions)

	second := env.sendMessage(t, testEmployee, types.ChatMessageRequest{
		Message:        "When is my next performance review and rating?",
		ConversationID: first.ConversationID,
	})
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "performance_inquiry", second.Intent.Category)

	w := env.do(t, http.MethodGet, "/chatbot/conversation/"+first.ConversationID, testEmployee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	conv := decodeBody[ConversationResponse](t, w)
	assert.Equal(t, 4, conv.MessageCount)
	assert.Equal(t, types.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, types.RoleAssistant, conv.Messages[3].Role)

	w = env.do(t, http.MethodDelete, "/chatbot/conversation/"+first.ConversationID, testEmployee, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/chatbot/conversation/"+first.ConversationID, testEmployee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeBody[ConversationResponse](t, w).MessageCount)
}

func TestChatbot_ForeignConversation(t *testing.T) {
	env := newTestEnv(t)
	res := env.sendMessage(t, testEmployee, types.ChatMessageRequest{Message: "What is the leave policy?"})

	// a user id that is a prefix of the owner's does not grant access
	prefixUser := types.UserContext{UserID: "emp", Role: "employee"}
	for _, user := range []types.UserContext{testHR, prefixUser} {
		w := env.do(t, http.MethodGet, "/chatbot/conversation/"+res.ConversationID, user, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, user.UserID)

		w = env.do(t, http.MethodDelete, "/chatbot/conversation/"+res.ConversationID, user, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, user.UserID)

		w = env.do(t, http.MethodPost, "/chatbot/message", user, types.ChatMessageRequest{Message: "hi", ConversationID: res.ConversationID})
		assert.Equal(t, http.StatusForbidden, w.Code, user.UserID)

		w = env.do(t, http.MethodPost, "/chatbot/feedback", user, types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(1), Rating: 5})
		assert.Equal(t, http.StatusForbidden, w.Code, user.UserID)
	}
}

func TestChatbot_MessageValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/chatbot/message", testEmployee, types.ChatMessageRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/chatbot/message", testEmployee, types.ChatMessageRequest{Message: strings.Repeat("a", 4001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatbot_Feedback(t *testing.T) {
	env := newTestEnv(t)
	res := env.sendMessage(t, testEmployee, types.ChatMessageRequest{Message: "How do I request vacation leave?"})

	w := env.do(t, http.MethodPost, "/chatbot/feedback", testEmployee, types.FeedbackRequest{
		ConversationID: res.ConversationID,
		MessageIndex:   intPtr(1),
		Rating:         4,
		Comment:        "helpful",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"recorded"}`, w.Body.String())

	feedbackLogs := env.logs.FilterMessage("chatbot feedback").All()
	require.Len(t, feedbackLogs, 1)
	assert.Equal(t, "leave_request", feedbackLogs[0].ContextMap()["intent"])

	tests := []struct {
		name string
		req  types.FeedbackRequest
		want int
	}{
		{"index out of range", types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(9), Rating: 3}, http.StatusNotFound},
		{"unknown conversation", types.FeedbackRequest{ConversationID: testEmployee.UserID + "_1", MessageIndex: intPtr(0), Rating: 3}, http.StatusNotFound},
		{"rating too high", types.FeedbackRequest{ConversationID: res.ConversationID, MessageIndex: intPtr(1), Rating: 6}, http.StatusBadRequest},
		{"missing index", types.FeedbackRequest{ConversationID: res.ConversationID, Rating: 3}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/chatbot/feedback", testEmployee, tt.req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestChatbot_Suggestions(t *testing.T) {
	env := newTestEnv(t)
	manager := types.UserContext{UserID: "m-1", Role: "manager"}

	w := env.do(t, http.MethodGet, "/chatbot/suggestions", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[SuggestionsResponse](t, w)
	assert.Equal(t, "manager", resp.Role)
	assert.NotEmpty(t, resp.Suggestions)
	require.NotEmpty(t, resp.Groups)
	assert.Equal(t, "Team", resp.Groups[0].Category)

	w = env.do(t, http.MethodGet, "/chatbot/suggestions?category=general_hr", testEmployee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody[SuggestionsResponse](t, w).Suggestions)
}

func TestChatbot_Analytics(t *testing.T) {
	env := newTestEnv(t)
	first := env.sendMessage(t, testEmployee, types.ChatMessageRequest{Message: "Question 0 about payroll and salary"})
	for i := 1; i < 3; i++ {
		env.sendMessage(t, testEmployee, types.ChatMessageRequest{
			Message:        fmt.Sprintf("Question %d about payroll and salary", i),
			ConversationID: first.ConversationID,
		})
	}

	w := env.do(t, http.MethodGet, "/chatbot/analytics", testHR, nil)
	require.Equal(t, http.StatusOK, w.Code)

	analytics := decodeBody[conversation.Analytics](t, w)
	assert.Equal(t, 1, analytics.Overview.TotalConversations)
	assert.Equal(t, 6, analytics.Overview.TotalMessages)
	assert.Equal(t, 3, analytics.Intents["general_hr"])
	require.NotEmpty(t, analytics.TopUsers)
	assert.Equal(t, testEmployee.UserID, analytics.TopUsers[0].UserID)
}
