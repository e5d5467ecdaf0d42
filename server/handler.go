package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/dispatch"
	"github.com/hupe1980/agentwire/logging"
	"github.com/hupe1980/agentwire/runner"
	"github.com/hupe1980/agentwire/wire"
)

// RunRequest is the payload of POST /v1/agents/:agent_kind/runs.
type RunRequest struct {
	ThreadID   string         `json:"thread_id"`
	RunID      string         `json:"run_id,omitempty"`
	Messages   []core.Message `json:"messages"`
	ArtifactID string         `json:"artifact_id,omitempty"`
	Hint       string         `json:"hint,omitempty"`
	Model      string         `json:"model,omitempty"`
	Provider   string         `json:"provider,omitempty"`
}

// artifactView is the content-free artifact representation returned by the
// listing endpoint; clients fetch content implicitly through runs.
type artifactView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind,omitempty"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandlerOptions configures the Handler.
type HandlerOptions struct {
	Encoder wire.Encoder
	Logger  logging.Logger
}

// Handler serves the run endpoint and the thread read-back endpoints.
type Handler struct {
	runner  *runner.Runner
	store   core.MessageStore
	cache   core.ArtifactCache
	encoder wire.Encoder
	logger  logging.Logger
}

// NewHandler constructs a Handler with optional overrides.
func NewHandler(r *runner.Runner, store core.MessageStore, cache core.ArtifactCache, optFns ...func(o *HandlerOptions)) *Handler {
	opts := HandlerOptions{
		Encoder: wire.NewSSEEncoder(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Handler{
		runner:  r,
		store:   store,
		cache:   cache,
		encoder: opts.Encoder,
		logger:  opts.Logger,
	}
}

// CreateRun starts a run and streams its events until the terminal frame.
// POST /v1/agents/:agent_kind/runs
func (h *Handler) CreateRun(c echo.Context) error {
	ctx := c.Request().Context()
	agentKind := c.Param("agent_kind")

	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if req.ThreadID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "thread_id is required"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages must not be empty"})
	}

	events, err := h.runner.Execute(ctx, agentKind, runner.RunInput{
		ThreadID:   req.ThreadID,
		RunID:      req.RunID,
		Messages:   req.Messages,
		ArtifactID: req.ArtifactID,
		Hint:       req.Hint,
		Model:      req.Model,
		Provider:   req.Provider,
	})
	if err != nil {
		if errors.Is(err, dispatch.ErrUnknownAgentKind) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Persist the incoming user turn only once the run is accepted, so a
	// rejected request leaves no state behind.
	latest := req.Messages[len(req.Messages)-1]
	if latest.Role == core.RoleUser {
		if err := h.store.SaveMessage(ctx, req.ThreadID, latest.Role, latest.Content); err != nil {
			h.logger.Error("failed to save user message", "thread_id", req.ThreadID, "error", err.Error())
		}
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, h.encoder.ContentType())
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	var assistant strings.Builder
	for ev := range events {
		if _, err := resp.Write(h.encoder.Encode(ev)); err != nil {
			// Client went away; the run context is tied to the request and
			// will unwind the pipeline.
			h.logger.Debug("client disconnected mid-run", "thread_id", req.ThreadID, "run_id", ev.RunID)
			return nil
		}
		resp.Flush()
		if ev.Type == core.EventTypeTextMessageContent {
			assistant.WriteString(ev.Delta)
		}
	}

	// Persist the assistant turn after the run completes.
	if assistant.Len() > 0 {
		if err := h.store.SaveMessage(ctx, req.ThreadID, core.RoleAssistant, assistant.String()); err != nil {
			h.logger.Error("failed to save assistant message", "thread_id", req.ThreadID, "error", err.Error())
		}
	}
	return nil
}

// GetThreadMessages returns a thread's persisted conversation history.
// GET /v1/threads/:thread_id/messages
func (h *Handler) GetThreadMessages(c echo.Context) error {
	ctx := c.Request().Context()
	threadID := c.Param("thread_id")

	messages, err := h.store.ListMessages(ctx, threadID)
	if err != nil {
		h.logger.Error("failed to list messages", "thread_id", threadID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list messages"})
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": messages})
}

// GetThreadArtifacts returns metadata for the thread's live cached
// artifacts. Content is deliberately omitted; the handle is the contract.
// GET /v1/threads/:thread_id/artifacts
func (h *Handler) GetThreadArtifacts(c echo.Context) error {
	threadID := c.Param("thread_id")

	artifacts, err := h.cache.ListByThread(threadID)
	if err != nil {
		h.logger.Error("failed to list artifacts", "thread_id", threadID, "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list artifacts"})
	}

	views := make([]artifactView, len(artifacts))
	for i, a := range artifacts {
		views[i] = artifactView{
			ID:        a.ID,
			Title:     a.Title,
			Language:  a.Language,
			CreatedAt: a.CreatedAt,
			ExpiresAt: a.ExpiresAt,
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"artifacts": views})
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
