package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/agent"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/render"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/strategy"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type A2AHandler struct {
	service *strategy.Service
	logger  *zap.Logger
}

func NewA2AHandler(service *strategy.Service, logger *zap.Logger) *A2AHandler {
	return &A2AHandler{
		service: service,
		logger:  logger,
	}
}

// RequestLoggingMiddleware logs every request with its status and latency.
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// HandleStrategy processes JSON-RPC strategy calls and A2A messages.
func (h *A2AHandler) HandleStrategy(c *gin.Context) {
	var rpcReq JSONRPCRequest
	if err := c.ShouldBindJSON(&rpcReq); err != nil {
		h.logger.Warn("Failed to decode JSON-RPC request", zap.Error(err))
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("Invalid JSON-RPC version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	h.logger.Debug("JSON-RPC call", zap.String("id", rpcReq.ID), zap.String("method", rpcReq.Method))

	ctx := c.Request.Context()
	switch rpcReq.Method {
	case "session/create":
		h.sendStrategyResult(c, rpcReq.ID, h.service.CreateSession(), "", nil)
	case "session/get":
		var p SessionParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondSnapshot(c, rpcReq.ID, func() (strategy.Snapshot, error) { return h.service.Get(p.SessionID) })
		}
	case "channel/select":
		var p ChannelParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondSnapshot(c, rpcReq.ID, func() (strategy.Snapshot, error) { return h.service.SelectChannel(p.SessionID, p.Channel) })
		}
	case "audience/toggle":
		var p AudienceParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondSnapshot(c, rpcReq.ID, func() (strategy.Snapshot, error) { return h.service.ToggleAudience(p.SessionID, p.Audience) })
		}
	case "session/reset":
		var p SessionParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondSnapshot(c, rpcReq.ID, func() (strategy.Snapshot, error) { return h.service.Reset(p.SessionID) })
		}
	case "profile/mix":
		var p SessionParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondResult(c, rpcReq.ID, func() (strategy.Result, error) { return h.service.Mix(ctx, p.SessionID) })
		}
	case "idea/evaluate":
		var p IdeaParams
		if h.bindParams(c, rpcReq, &p) {
			h.respondResult(c, rpcReq.ID, func() (strategy.Result, error) { return h.service.Evaluate(ctx, p.SessionID, p.Idea) })
		}
	case "agent/task", "message/send":
		h.handleTask(ctx, c, rpcReq)
	default:
		h.logger.Warn("Unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) bindParams(c *gin.Context, rpcReq JSONRPCRequest, dest any) bool {
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Missing parameters", CodeInvalidParams)
		return false
	}
	if err := json.Unmarshal(rpcReq.Params, dest); err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return false
	}
	if err := binding.Validator.ValidateStruct(dest); err != nil {
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Invalid parameters: %v", err), CodeInvalidParams)
		return false
	}
	return true
}

func (h *A2AHandler) respondSnapshot(c *gin.Context, id string, fn func() (strategy.Snapshot, error)) {
	snap, err := fn()
	if err != nil {
		h.sendServiceError(c, id, err)
		return
	}
	h.sendStrategyResult(c, id, snap, "", nil)
}

func (h *A2AHandler) respondResult(c *gin.Context, id string, fn func() (strategy.Result, error)) {
	res, err := fn()
	if err != nil {
		h.sendServiceError(c, id, err)
		return
	}
	h.sendStrategyResult(c, id, res.Snapshot, res.Outcome, res.Err)
}

func (h *A2AHandler) sendServiceError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, strategy.ErrSessionNotFound):
		h.sendErrorResponse(c, id, err.Error(), CodeSessionNotFound)
	case errors.Is(err, strategy.ErrUnknownChannel), errors.Is(err, strategy.ErrUnknownAudience):
		h.sendErrorResponse(c, id, err.Error(), CodeInvalidParams)
	default:
		h.logger.Error("Strategy call failed", zap.Error(err))
		h.sendErrorResponse(c, id, "Internal error", CodeInternalError)
	}
}

func (h *A2AHandler) sendStrategyResult(c *gin.Context, id string, snap strategy.Snapshot, outcome strategy.Outcome, callErr error) {
	result := StrategyResult{
		Session:  snap,
		Outcome:  outcome,
		Markdown: render.SnapshotMarkdown(snap),
	}
	if callErr != nil {
		result.Error = callErr.Error()
	}
	h.sendSuccessResponse(c, id, result)
}

// handleTask evaluates the text of an A2A message as a campaign idea for the
// session named in the message metadata or context id.
func (h *A2AHandler) handleTask(ctx context.Context, c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 || json.Unmarshal(rpcReq.Params, &msgParams) != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	sessionID := extractSessionID(msgParams)
	if sessionID == "" {
		h.sendSuccessResponse(c, rpcReq.ID, h.createInputRequiredTaskResult(rpcReq.ID, "",
			"Start a session with session/create, then send your idea with metadata.sessionId."))
		return
	}

	idea := h.extractIdea(msgParams.Message)
	h.logger.Debug("Extracted idea", zap.String("session_id", sessionID), zap.Int("length", len(idea)))

	res, err := h.service.Evaluate(ctx, sessionID, idea)
	if err != nil {
		if errors.Is(err, strategy.ErrSessionNotFound) {
			h.sendSuccessResponse(c, rpcReq.ID, h.createErrorTaskResult(rpcReq.ID, sessionID, "Unknown session. Start a new one with session/create."))
			return
		}
		h.sendServiceError(c, rpcReq.ID, err)
		return
	}

	switch res.Outcome {
	case strategy.OutcomeApplied:
		h.sendSuccessResponse(c, rpcReq.ID, h.createSuccessTaskResult(rpcReq.ID, sessionID, res.Snapshot))
	case strategy.OutcomeSkipped:
		msg := "Please describe your campaign idea."
		if res.Snapshot.Channel == nil || !res.Snapshot.Active.Present() {
			msg = render.Hint(res.Snapshot)
		} else if res.Snapshot.Evaluating {
			msg = "An evaluation is already running for this session."
		}
		h.sendSuccessResponse(c, rpcReq.ID, h.createInputRequiredTaskResult(rpcReq.ID, sessionID, msg))
	case strategy.OutcomeStale:
		h.sendSuccessResponse(c, rpcReq.ID, h.createInputRequiredTaskResult(rpcReq.ID, sessionID,
			"The selection changed while the idea was being evaluated. Please submit it again."))
	default:
		h.sendSuccessResponse(c, rpcReq.ID, h.createErrorTaskResult(rpcReq.ID, sessionID,
			fmt.Sprintf("Failed to evaluate idea: %v", res.Err)))
	}
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("Error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// ServeCatalog lists channels, audiences and brand guidelines.
func (h *A2AHandler) ServeCatalog(c *gin.Context) {
	cat := h.service.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"channels":   cat.Channels(),
		"audiences":  cat.Audiences(),
		"guidelines": cat.Guidelines(),
	})
}

// ServeCard renders the session's profile card and evaluation panel as HTML.
func (h *A2AHandler) ServeCard(c *gin.Context) {
	snap, err := h.service.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	page, err := render.CardHTML(snap)
	if err != nil {
		h.logger.Error("Failed to render card", zap.String("session_id", snap.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Card not available"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func extractSessionID(params MessageParams) string {
	for _, meta := range []map[string]any{params.Message.Metadata, params.Metadata} {
		if id, ok := meta["sessionId"].(string); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}
	return strings.TrimSpace(params.Message.ContextID)
}

func (h *A2AHandler) extractIdea(msg A2AMessage) string {
	var texts []string

	for _, part := range msg.Parts {
		// Handle direct text parts
		if part.Kind == "text" && part.Text != nil {
			if textStr, ok := part.Text.(string); ok && strings.TrimSpace(textStr) != "" {
				texts = append(texts, strings.TrimSpace(textStr))
			}
		}

		// Data parts may carry conversation history; use its latest user text.
		if part.Kind == "data" && part.Data != nil {
			dataBytes, err := json.Marshal(part.Data)
			if err != nil {
				h.logger.Warn("Failed to marshal data part", zap.Error(err))
				continue
			}
			var history []map[string]interface{}
			if err := json.Unmarshal(dataBytes, &history); err != nil {
				h.logger.Debug("Data part is not a message history", zap.Error(err))
				continue
			}
			for i := len(history) - 1; i >= 0; i-- {
				item := history[i]
				if kind, ok := item["kind"].(string); !ok || kind != "text" {
					continue
				}
				text, _ := item["text"].(string)
				cleanText := strings.TrimSpace(text)
				cleanText = strings.ReplaceAll(cleanText, "<p>", "")
				cleanText = strings.ReplaceAll(cleanText, "</p>", "")
				cleanText = strings.TrimSpace(cleanText)
				if cleanText != "" {
					texts = append(texts, cleanText)
					break
				}
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, " "))
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, snap strategy.Snapshot) TaskResult {
	responseText := render.EvaluationMarkdown(snap.Evaluation)

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Strategy Evaluation",
				Parts: []MessagePart{
					TextPart(responseText),
					DataPart(snap.Evaluation),
				},
			},
			{
				ArtifactID: uuid.New().String(),
				Name:       "Audience Profile",
				Parts: []MessagePart{
					TextPart(render.ProfileMarkdown(snap)),
					DataPart(snap.Active),
				},
			},
		},
	}
}

func (h *A2AHandler) createInputRequiredTaskResult(taskID, contextID, prompt string) TaskResult {
	return h.createStatusTaskResult(taskID, contextID, StateInputRequired, prompt)
}

func (h *A2AHandler) createErrorTaskResult(taskID, contextID, errorMsg string) TaskResult {
	return h.createStatusTaskResult(taskID, contextID, StateFailed, errorMsg)
}

func (h *A2AHandler) createStatusTaskResult(taskID, contextID, state, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(text),
				},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Debug("Sending JSON-RPC error", zap.String("id", id), zap.Int("code", code), zap.String("message", message))

	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
