package profiler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const DefaultOpenAIModel = "gpt-4.1-mini"

// OpenAIClient is the fallback generator. The schema travels in the system message.
type OpenAIClient struct {
	client    *openai.Client
	modelName string
	logger    *zap.Logger
}

// NewOpenAIClient returns nil when no key is given.
func NewOpenAIClient(apiKey, modelName string, logger *zap.Logger) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:    &client,
		modelName: modelName,
		logger:    logger,
	}
}

func (o *OpenAIClient) Name() string {
	return "OpenAI"
}

func (o *OpenAIClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	system, err := jsonOnlyDirective(req)
	if err != nil {
		return "", err
	}

	o.logger.Info("Fallback: Generating with OpenAI", zap.String("model", o.modelName))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(req.Prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func jsonOnlyDirective(req Request) (string, error) {
	directive := req.System
	if req.Schema == nil {
		return directive + "\n\nYou must respond with valid JSON only.", nil
	}
	schema, err := json.Marshal(req.Schema)
	if err != nil {
		return "", fmt.Errorf("marshal response schema: %w", err)
	}
	return fmt.Sprintf("%s\n\nYou must respond with valid JSON only, matching this JSON schema. Do not include any text outside the JSON object.\n%s", directive, schema), nil
}
