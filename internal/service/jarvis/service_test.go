package jarvis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/mocks"
	"github.com/seu-repo/jarvis-backend/internal/ports"
)

var testParams = ports.CompletionParams{
	Model:       "llama-3.3-70b-versatile",
	Temperature: 1,
	MaxTokens:   1024,
	TopP:        1,
}

func newTestService(client ports.CompletionClient) *Service {
	return NewService(client, testParams, "", zap.NewNop())
}

func TestAskQuestion_Success(t *testing.T) {
	client := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error) {
			return "Son las tres, señor.", nil
		},
	}
	service := newTestService(client)

	before := time.Now().Add(-time.Second)
	resp, err := service.AskQuestion(context.Background(), domain.QuestionRequest{
		Question:       "  ¿Qué hora es?  ",
		ConversationID: "conv-1",
		UserID:         "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Son las tres, señor.", resp.Answer)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "llama-3.3-70b-versatile", resp.Model)

	ts, err := time.Parse(time.RFC3339, resp.Timestamp)
	require.NoError(t, err, "timestamp must be a valid instant")
	assert.True(t, ts.After(before))
	assert.True(t, strings.HasSuffix(resp.Timestamp, "Z"))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, "¿Qué hora es?", client.Calls[0].Question)
	assert.Equal(t, DefaultSystemPrompt, client.Calls[0].SystemPrompt)
	assert.Equal(t, testParams, client.Calls[0].Params)
}

func TestAskQuestion_EmptyAnswerUsesFallback(t *testing.T) {
	client := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error) {
			return "", nil
		},
	}

	resp, err := newTestService(client).AskQuestion(context.Background(), domain.QuestionRequest{Question: "hola"})
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackAnswer, resp.Answer)
	assert.Empty(t, resp.ConversationID)
}

func TestAskQuestion_CustomSystemPrompt(t *testing.T) {
	client := &mocks.MockCompletionClient{}
	service := NewService(client, testParams, "Eres un pirata.", zap.NewNop())

	_, err := service.AskQuestion(context.Background(), domain.QuestionRequest{Question: "hola"})
	require.NoError(t, err)
	require.Len(t, client.Calls, 1)
	assert.Equal(t, "Eres un pirata.", client.Calls[0].SystemPrompt)
}

func TestAskQuestion_UpstreamErrorIsNormalized(t *testing.T) {
	upstream := errors.New("groq: API error status 503")
	client := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error) {
			return "", upstream
		},
	}

	resp, err := newTestService(client).AskQuestion(context.Background(), domain.QuestionRequest{Question: "hola"})
	require.Error(t, err)
	assert.Nil(t, resp)

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, "Error al procesar la solicitud: groq: API error status 503", err.Error())
}

func TestAskQuestionStream_ForwardsChunks(t *testing.T) {
	client := &mocks.MockCompletionClient{
		CompleteStreamFunc: func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams, onChunk func(string)) error {
			for _, c := range []string{"uno ", "dos ", "tres"} {
				onChunk(c)
			}
			return nil
		},
	}

	var got []string
	err := newTestService(client).AskQuestionStream(context.Background(), domain.QuestionRequest{Question: " cuenta "}, func(s string) {
		got = append(got, s)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"uno ", "dos ", "tres"}, got)
	require.Len(t, client.Calls, 1)
	assert.Equal(t, "cuenta", client.Calls[0].Question)
}

func TestAskQuestionStream_UpstreamErrorIsNormalized(t *testing.T) {
	client := &mocks.MockCompletionClient{
		CompleteStreamFunc: func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams, onChunk func(string)) error {
			return errors.New("boom")
		},
	}

	err := newTestService(client).AskQuestionStream(context.Background(), domain.QuestionRequest{Question: "hola"}, func(string) {})

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "Error al procesar la solicitud con streaming: boom", err.Error())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "corta", preview("corta"))

	long := strings.Repeat("á", 60)
	got := preview(long)
	assert.Equal(t, strings.Repeat("á", 50)+"...", got)
}
