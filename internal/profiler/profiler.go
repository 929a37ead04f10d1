package profiler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient calls Gemini with a JSON response schema. The API key is read
// at call time, so a missing key fails the call instead of the process.
type GeminiClient struct {
	modelName string
	apiKey    func() string
	logger    *zap.Logger

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

// NewGeminiClient builds a client that reads its key from GEMINI_API_KEY on every call.
func NewGeminiClient(modelName string, logger *zap.Logger) *GeminiClient {
	return NewGeminiClientWithKey(modelName, func() string { return os.Getenv("GEMINI_API_KEY") }, logger)
}

func NewGeminiClientWithKey(modelName string, apiKey func() string, logger *zap.Logger) *GeminiClient {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiClient{
		modelName: modelName,
		apiKey:    apiKey,
		logger:    logger,
	}
}

func (g *GeminiClient) Name() string {
	return "Gemini"
}

func (g *GeminiClient) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		g.client.Close()
		g.client = nil
		g.clientKey = ""
	}
}

func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	client, err := g.clientForCall()
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(g.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema.genai()
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}

	g.logger.Debug("Generating with Gemini", zap.String("model", g.modelName), zap.Int("prompt_length", len(req.Prompt)))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// clientForCall returns a client for the current key, rebuilding it when the key changes.
func (g *GeminiClient) clientForCall() (*genai.Client, error) {
	key := strings.TrimSpace(g.apiKey())
	if key == "" {
		return nil, ErrMissingCredential
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil && g.clientKey == key {
		return g.client, nil
	}
	if g.client != nil {
		g.client.Close()
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.clientKey = key
	return client, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
