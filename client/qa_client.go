package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the part of *openai.Client the QA overlay needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ErrQAUnavailable is returned by Ask when no model is configured.
var ErrQAUnavailable = errors.New("qa model not configured")

const qaSystemPrompt = "You answer questions about a police battalion daily report. " +
	"Reply with the answer copied from the report text only, without explanation. " +
	"If the report does not contain the answer, reply exactly: Nil"

// QAClient asks an OpenAI-compatible chat model to answer one question over a
// report text.
type QAClient struct {
	chat    ChatClient
	model   string
	timeout time.Duration
}

// NewQAClient builds a client for baseURL. An empty model leaves the client
// unavailable.
func NewQAClient(baseURL, apiKey, model string, timeout time.Duration) *QAClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewQAClientWithChat(openai.NewClientWithConfig(cfg), model, timeout)
}

// NewQAClientWithChat wraps an existing chat client.
func NewQAClientWithChat(chat ChatClient, model string, timeout time.Duration) *QAClient {
	return &QAClient{chat: chat, model: strings.TrimSpace(model), timeout: timeout}
}

// Available reports whether Ask can reach a model.
func (c *QAClient) Available() bool {
	return c != nil && c.chat != nil && c.model != ""
}

// Ask returns the model's raw answer to question over reportText. The call is
// bounded by the client timeout.
func (c *QAClient) Ask(ctx context.Context, question, reportText string) (string, error) {
	if !c.Available() {
		return "", ErrQAUnavailable
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: qaSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Report:\n" + reportText + "\n\nQuestion: " + question},
		},
		Temperature: 0,
		N:           1,
	}
	resp, err := c.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("qa completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("qa completion: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
