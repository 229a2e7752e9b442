package openai

import (
	"context"
	"log"

	"github.com/sashabaranov/go-openai"

	domain "github.com/progcheck/progcheck/internal/domain/analysis"
)

// Model is fixed; the evaluation prompt is tuned against it and there
// is deliberately no way to override it at runtime.
const Model = "gpt-4o-2024-08-06"

const maxTokens = 4096

type Client struct {
	*openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{Client: openai.NewClient(apiKey)}
}

// Complete sends the rendered prompt and returns the raw completion
// text unmodified. One attempt per call, no retry, no backoff. Any
// provider failure is logged here with full detail and re-signaled as
// the generic communication error so nothing provider-specific leaks
// to callers.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     Model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("model call failed model=%s err=%v", Model, err)
		return "", domain.ErrCommunication
	}
	if len(resp.Choices) == 0 {
		log.Printf("model returned no choices model=%s", Model)
		return "", domain.ErrCommunication
	}
	return resp.Choices[0].Message.Content, nil
}
