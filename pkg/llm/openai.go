package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
)

type AzureOpenAIClient struct {
	client     *openai.Client
	deployment string
}

func NewAzureOpenAIClient(endpoint, apiKey, apiVersion, deployment string) *AzureOpenAIClient {
	client := openai.NewClient(
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
	)
	return &AzureOpenAIClient{
		client:     &client,
		deployment: deployment,
	}
}

func (c *AzureOpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxCompletionTokens: openai.Int(16384),
	})

	if err != nil {
		return "", fmt.Errorf("azure openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from azure openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *AzureOpenAIClient) Name() string {
	return "AzureOpenAI"
}
