package a2a

import (
	"encoding/json"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/BerylCAtieno/fondue-strategy-agent/internal/strategy"
)

// JSON-RPC types
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes
const (
	CodeParseError      = -32700
	CodeInvalidRequest  = -32600
	CodeMethodNotFound  = -32601
	CodeInvalidParams   = -32602
	CodeInternalError   = -32603
	CodeSessionNotFound = -32004
)

// Strategy method params
type SessionParams struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type ChannelParams struct {
	SessionID string         `json:"sessionId" binding:"required"`
	Channel   models.Channel `json:"channel" binding:"required"`
}

type AudienceParams struct {
	SessionID string `json:"sessionId" binding:"required"`
	Audience  string `json:"audience" binding:"required"`
}

type IdeaParams struct {
	SessionID string `json:"sessionId" binding:"required"`
	Idea      string `json:"idea"`
}

// StrategyResult is returned by every strategy method.
type StrategyResult struct {
	Session  strategy.Snapshot `json:"session"`
	Outcome  strategy.Outcome  `json:"outcome,omitempty"`
	Error    string            `json:"error,omitempty"`
	Markdown string            `json:"markdown"`
}

// Message types
type MessageParams struct {
	Message       A2AMessage           `json:"message"`
	Configuration MessageConfiguration `json:"configuration"`
	Metadata      map[string]any       `json:"metadata,omitempty"`
}

type A2AMessage struct {
	Kind      string         `json:"kind"`
	Role      string         `json:"role"`
	Parts     []MessagePart  `json:"parts"`
	MessageID string         `json:"messageId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	ContextID string         `json:"contextId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type MessagePart struct {
	Kind string      `json:"kind"`
	Text interface{} `json:"text,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type MessageConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       int      `json:"historyLength,omitempty"`
	Blocking            bool     `json:"blocking,omitempty"`
}

// Task types
type TaskResult struct {
	ID        string       `json:"id"`
	ContextID string       `json:"contextId,omitempty"`
	Status    TaskStatus   `json:"status"`
	Artifacts []Artifact   `json:"artifacts,omitempty"`
	History   []A2AMessage `json:"history,omitempty"`
	Kind      string       `json:"kind"`
}

type TaskStatus struct {
	State     string      `json:"state"`
	Timestamp string      `json:"timestamp"`
	Message   *A2AMessage `json:"message,omitempty"`
}

type Artifact struct {
	ArtifactID string        `json:"artifactId"`
	Name       string        `json:"name"`
	Parts      []MessagePart `json:"parts"`
}

// Helper functions
func TextPart(text string) MessagePart {
	return MessagePart{
		Kind: "text",
		Text: text,
	}
}

func DataPart(data interface{}) MessagePart {
	return MessagePart{
		Kind: "data",
		Data: data,
	}
}

func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Task states
const (
	StateWorking       = "working"
	StateInputRequired = "input-required"
	StateCompleted     = "completed"
	StateFailed        = "failed"
)

// Message roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)
