package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/config"
	"github.com/jonathan/hr-insights/internal/conversation"
	"github.com/jonathan/hr-insights/internal/db"
	"github.com/jonathan/hr-insights/internal/extraction"
	"github.com/jonathan/hr-insights/internal/intent"
	"github.com/jonathan/hr-insights/internal/llm"
	"github.com/jonathan/hr-insights/internal/ranking"
	"github.com/jonathan/hr-insights/internal/realtime"
	"github.com/jonathan/hr-insights/internal/sentiment"
	"github.com/jonathan/hr-insights/internal/server/middleware"
	"github.com/jonathan/hr-insights/internal/server/ratelimit"
	"github.com/jonathan/hr-insights/internal/skills"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	logger      *zap.Logger
	store       db.Store
	catalog     *catalog.Catalog
	extractor   *extraction.Extractor
	analyzer    *ranking.Analyzer
	classifier  *intent.Classifier
	sentiment   *sentiment.Analyzer
	aggregator  *skills.Aggregator
	chat        *conversation.Manager
	hub         *realtime.Hub
	ws          *realtime.WebSocketHandler
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	llm         llm.Client
	started     time.Time
}

// Options holds the collaborators of a Server. Store, JWT and Config are
// required; a nil Catalog uses the built-in one and a nil LLM disables
// generative answers.
type Options struct {
	Config  *config.Config
	JWT     *config.JWTConfig
	Store   db.Store
	Catalog *catalog.Catalog
	LLM     llm.Client
	Logger  *zap.Logger
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if opts.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	cfg := opts.Config

	s := &Server{
		cfg:        cfg,
		logger:     opts.Logger,
		store:      opts.Store,
		catalog:    opts.Catalog,
		extractor:  extraction.New(opts.Catalog),
		classifier: intent.NewClassifier(opts.Catalog),
		sentiment:  sentiment.NewAnalyzer(opts.Catalog),
		aggregator: skills.NewAggregator(opts.Catalog),
		hub:        realtime.NewHub(opts.Logger.Named("realtime")),
		jwtService: NewJWTService(opts.JWT),
		llm:        opts.LLM,
		started:    time.Now(),
	}
	s.analyzer = ranking.NewAnalyzer(opts.Catalog, s.extractor, cfg.ScreeningConcurrency)
	s.ws = realtime.NewWebSocketHandler(s.hub, cfg.CORSOrigin, opts.Logger.Named("websocket"))

	assistantOpts := []conversation.Option{conversation.WithLogger(opts.Logger.Named("assistant"))}
	if opts.LLM != nil {
		assistantOpts = append(assistantOpts, conversation.WithLLM(opts.LLM))
	}
	s.chat = conversation.NewManager(conversation.ManagerConfig{
		Assistant:     conversation.NewAssistant(opts.Catalog, assistantOpts...),
		Store:         conversation.NewStore(cfg.HistoryLimit),
		Publisher:     s.hub,
		ContextWindow: cfg.ContextWindow,
		Logger:        opts.Logger.Named("chatbot"),
	})

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimitPerMinute, "", ""))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket and event streams stay open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	streamAuthed := middleware.StreamAuthMiddleware(s.jwtService.AsTokenValidator())

	// route registers an authenticated handler, optionally gated on a permission
	route := func(pattern string, h http.HandlerFunc, permission string) {
		var handler http.Handler = h
		if permission != "" {
			handler = middleware.RequirePermission(permission)(handler)
		}
		mux.Handle(pattern, authed(handler))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	// AI endpoints
	route("GET /ai/status", s.handleStatus, middleware.PermUseAIFeatures)
	route("POST /ai/analyze-resume", s.handleAnalyzeResume, middleware.PermUseAIFeatures)
	route("POST /ai/screen-applications", s.handleScreenApplications, middleware.PermManageRecruitment)
	route("POST /ai/extract", s.handleExtract, middleware.PermUseAIFeatures)
	route("POST /ai/classify", s.handleClassify, middleware.PermUseAIFeatures)
	route("POST /ai/skill-gaps", s.handleSkillGaps, middleware.PermUseAIFeatures)
	route("POST /ai/sentiment", s.handleSentiment, middleware.PermUseAIFeatures)

	// Requirement sets
	route("GET /requirement-sets", s.handleListRequirementSets, middleware.PermUseAIFeatures)
	route("GET /requirement-sets/{id}", s.handleGetRequirementSet, middleware.PermUseAIFeatures)
	route("PUT /requirement-sets/{id}", s.handlePutRequirementSet, middleware.PermManageRecruitment)
	route("DELETE /requirement-sets/{id}", s.handleDeleteRequirementSet, middleware.PermManageRecruitment)
	route("GET /requirement-sets/{id}/analyses", s.handleListAnalyses, middleware.PermUseAIFeatures)

	// Chatbot, open to every authenticated employee
	route("POST /chatbot/message", s.handleChatMessage, "")
	route("GET /chatbot/conversation/{id}", s.handleGetConversation, "")
	route("DELETE /chatbot/conversation/{id}", s.handleClearConversation, "")
	route("GET /chatbot/suggestions", s.handleSuggestions, "")
	route("POST /chatbot/feedback", s.handleFeedback, "")
	route("GET /chatbot/analytics", s.handleChatAnalytics, middleware.PermViewAnalytics)

	// Real-time
	mux.Handle("GET /ws", streamAuthed(http.HandlerFunc(s.handleWebSocket)))
	mux.Handle("GET /events", streamAuthed(http.HandlerFunc(s.handleEvents)))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Hub returns the real-time event hub.
func (s *Server) Hub() *realtime.Hub {
	return s.hub
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter, the model client and the store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llm != nil {
		if err := s.llm.Close(); err != nil {
			s.logger.Warn("closing model client", zap.Error(err))
		}
	}
	s.store.Close()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.cfg.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging. It keeps
// the Flusher and Hijacker of the wrapped writer reachable for streams.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	if r.status == 0 {
		r.status = http.StatusSwitchingProtocols
	}
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to its status code. Server errors are logged and
// reported without detail.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		// round up so clients never retry early
		retryAfter := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
