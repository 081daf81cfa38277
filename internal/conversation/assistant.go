package conversation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/intent"
	"github.com/jonathan/hr-insights/internal/llm"
	"github.com/jonathan/hr-insights/internal/prompts"
	"github.com/jonathan/hr-insights/internal/types"
	"github.com/jonathan/hr-insights/internal/validation"
)

// Placeholder values used when the caller's context is incomplete
const (
	defaultName       = "there"
	defaultRole       = "employee"
	defaultDepartment = "your department"
)

// keyDatedLeave is the leave template used when the query names dates.
const keyDatedLeave = "leave_request_dates"

// Assistant answers HR questions with templated replies. When an LLM client
// is configured, queries with no recognized intent are answered by the model.
type Assistant struct {
	catalog    *catalog.Catalog
	classifier *intent.Classifier
	llm        llm.Client
	logger     *zap.Logger
}

// Option configures an Assistant
type Option func(*Assistant)

// WithLLM enables the generative fallback for unrecognized queries.
func WithLLM(client llm.Client) Option {
	return func(a *Assistant) { a.llm = client }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assistant) { a.logger = logger }
}

// NewAssistant creates an Assistant over a catalog.
func NewAssistant(c *catalog.Catalog, opts ...Option) *Assistant {
	if c == nil {
		c = catalog.Default()
	}
	a := &Assistant{
		catalog:    c,
		classifier: intent.NewClassifier(c),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerativeEnabled reports whether an LLM client is configured.
func (a *Assistant) GenerativeEnabled() bool {
	return a.llm != nil
}

// Classifier returns the intent classifier.
func (a *Assistant) Classifier() *intent.Classifier {
	return a.classifier
}

// Respond classifies a query and produces a personalized reply.
func (a *Assistant) Respond(ctx context.Context, query string, user types.UserContext) types.Reply {
	return a.respond(ctx, query, user, nil)
}

func (a *Assistant) respond(ctx context.Context, query string, user types.UserContext, history []types.ConversationTurn) types.Reply {
	detected := a.classifier.Classify(query)
	entities := ExtractEntities(query)
	return types.Reply{
		Response:    a.compose(ctx, query, detected, entities, user, history),
		Intent:      detected,
		Entities:    entities,
		Suggestions: a.Suggestions(user.Role, detected.Category),
	}
}

func (a *Assistant) compose(ctx context.Context, query string, detected types.Intent, entities types.Entities, user types.UserContext, history []types.ConversationTurn) string {
	data := templateData(user)

	if detected.Category == types.IntentUnknown && a.llm != nil {
		if text, err := a.generate(ctx, query, data, history); err == nil && text != "" {
			return text
		} else if err != nil {
			a.logger.Warn("generative reply failed, using template", zap.Error(err))
		}
	}

	key := detected.Category
	if key == "leave_request" && len(entities.Dates) > 0 {
		key = keyDatedLeave
		data["Dates"] = strings.Join(entities.Dates, ", ")
	}

	text, err := prompts.Render(prompts.ConversationFile, key, data, "")
	if err != nil {
		// Categories added to the catalog without a template get the generic reply.
		text, err = prompts.Render(prompts.ConversationFile, types.IntentUnknown, data, "")
	}
	if err != nil {
		a.logger.Error("response template missing", zap.String("intent", detected.Category), zap.Error(err))
		return prompts.MustGet(prompts.ConversationFile, "error")
	}
	return text
}

func (a *Assistant) generate(ctx context.Context, query string, data map[string]string, history []types.ConversationTurn) (string, error) {
	data["Query"] = validation.PromptInput(a.logger, "employee question", query)
	data["History"] = validation.Quote("conversation history", formatHistory(history))
	prompt, err := prompts.Render(prompts.ConversationFile, "generation", data, "")
	if err != nil {
		return "", err
	}
	return a.llm.GenerateContent(ctx, prompt, llm.TierLite)
}

func templateData(user types.UserContext) map[string]string {
	return map[string]string{
		"Name":       valueOr(user.Name, defaultName),
		"Role":       valueOr(user.Role, defaultRole),
		"Department": valueOr(user.Department, defaultDepartment),
	}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func formatHistory(history []types.ConversationTurn) string {
	if len(history) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, turn := range history {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Suggestions lists follow-up prompts: role entries first, then the generic
// entries, then those for the detected intent. Duplicates are dropped and the
// list is capped at the catalog maximum.
func (a *Assistant) Suggestions(role, category string) []string {
	cfg := a.catalog.Suggestions
	out := make([]string, 0, cfg.Max)
	seen := make(map[string]bool)
	add := func(items []string) {
		for _, item := range items {
			if len(out) == cfg.Max {
				return
			}
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	add(cfg.Roles[strings.ToLower(role)])
	add(cfg.Base)
	add(cfg.Intents[category])
	return out
}

// RoleSuggestions returns the categorized suggestion list for a role,
// falling back to the employee list for unknown roles.
func (a *Assistant) RoleSuggestions(role string) []catalog.SuggestionGroup {
	groups := a.catalog.Suggestions.Categories
	if g, ok := groups[strings.ToLower(role)]; ok {
		return g
	}
	return groups[defaultRole]
}
