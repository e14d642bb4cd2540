package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply string
	err   error
	last  openai.ChatCompletionRequest
	calls int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

func TestQAClientAsk(t *testing.T) {
	chat := &fakeChat{reply: "  3rd IRBn Bassi \n"}
	c := NewQAClientWithChat(chat, "local-model", time.Second)

	answer, err := c.Ask(context.Background(), "Which unit?", "Name of unit: 3rd IRBn Bassi")

	require.NoError(t, err)
	assert.Equal(t, "3rd IRBn Bassi", answer)
	assert.Equal(t, "local-model", chat.last.Model)
	require.Len(t, chat.last.Messages, 2)
	assert.True(t, strings.Contains(chat.last.Messages[1].Content, "Which unit?"))
	assert.True(t, strings.Contains(chat.last.Messages[1].Content, "3rd IRBn Bassi"))
}

func TestQAClientUnavailable(t *testing.T) {
	chat := &fakeChat{reply: "x"}
	c := NewQAClientWithChat(chat, "", time.Second)

	assert.False(t, c.Available())
	_, err := c.Ask(context.Background(), "q", "text")
	assert.ErrorIs(t, err, ErrQAUnavailable)
	assert.Equal(t, 0, chat.calls)

	var nilClient *QAClient
	assert.False(t, nilClient.Available())
}

func TestQAClientErrors(t *testing.T) {
	boom := errors.New("connection refused")
	c := NewQAClientWithChat(&fakeChat{err: boom}, "m", time.Second)
	_, err := c.Ask(context.Background(), "q", "text")
	assert.ErrorIs(t, err, boom)

	c = NewQAClientWithChat(chatWithoutChoices{}, "m", 0)
	_, err = c.Ask(context.Background(), "q", "text")
	assert.Error(t, err)
}

type chatWithoutChoices struct{}

func (chatWithoutChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
