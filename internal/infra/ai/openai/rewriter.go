package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/studio540/bjj-analyzer/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Rewriter turns written analysis text into a spoken-style narration script.
type Rewriter struct {
	*openai.Client
	Model string
}

func NewRewriter(apiKey, model string) *Rewriter {
	return &Rewriter{Client: openai.NewClient(apiKey), Model: model}
}

func (r *Rewriter) RewriteScript(ctx context.Context, text string) (string, error) {
	model := r.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetNarratorSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetNarratorUserPrompt(text)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := r.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
