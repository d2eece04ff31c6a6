package voice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/mocks"
	"github.com/seu-repo/jarvis-backend/pkg/config"
)

var plainConfig = config.AlexaConfig{OutputFormat: FormatPlain, MaxSpeechLen: DefaultMaxSpeechLen}

func newTestAssistant(questions *mocks.MockQuestionService) *VoiceAssistant {
	return NewVoiceAssistant(questions, plainConfig, zap.NewNop())
}

func intentEvent(t *testing.T, name string, slots map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"version": "1.0",
		"request": map[string]interface{}{
			"type":   "IntentRequest",
			"intent": map[string]interface{}{"name": name, "slots": slots},
		},
	})
	require.NoError(t, err)
	return body
}

func answering(answer string) *mocks.MockQuestionService {
	return &mocks.MockQuestionService{
		AskQuestionFunc: func(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error) {
			return &domain.AnswerResponse{Answer: answer}, nil
		},
	}
}

func assertSpeech(t *testing.T, resp *domain.VoiceResponse, text string, end bool) {
	t.Helper()
	require.NotNil(t, resp)
	assert.Equal(t, "1.0", resp.Version)
	assert.Equal(t, domain.SpeechTypePlainText, resp.Response.OutputSpeech.Type)
	assert.Equal(t, text, resp.Response.OutputSpeech.Text)
	assert.Equal(t, end, resp.Response.ShouldEndSession)
}

func TestHandleEvent_Launch(t *testing.T) {
	questions := &mocks.MockQuestionService{}
	resp := newTestAssistant(questions).HandleEvent(context.Background(), []byte(`{"request":{"type":"LaunchRequest"}}`))

	assertSpeech(t, resp, MsgGreeting, false)
	assert.Empty(t, questions.Requests)
}

func TestHandleEvent_SessionEnded(t *testing.T) {
	resp := newTestAssistant(&mocks.MockQuestionService{}).HandleEvent(context.Background(),
		[]byte(`{"request":{"type":"SessionEndedRequest","reason":"USER_INITIATED"}}`))

	assertSpeech(t, resp, MsgFarewell, true)
}

func TestHandleEvent_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing request", `{"version":"1.0"}`},
		{"request not an object", `{"request":"LaunchRequest"}`},
		{"null body", `null`},
		{"not json", `<xml/>`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newTestAssistant(&mocks.MockQuestionService{}).HandleEvent(context.Background(), []byte(tt.payload))
			assertSpeech(t, resp, MsgInvalidRequest, true)
		})
	}
}

func TestHandleEvent_UnrecognizedType(t *testing.T) {
	resp := newTestAssistant(&mocks.MockQuestionService{}).HandleEvent(context.Background(),
		[]byte(`{"request":{"type":"CanFulfillIntentRequest"}}`))

	assertSpeech(t, resp, MsgUnknownRequest, true)
}

func TestHandleEvent_IntentWithoutIntent(t *testing.T) {
	resp := newTestAssistant(&mocks.MockQuestionService{}).HandleEvent(context.Background(),
		[]byte(`{"request":{"type":"IntentRequest"}}`))

	assertSpeech(t, resp, MsgNoIntent, false)
}

func TestHandleEvent_OtherIntent(t *testing.T) {
	questions := &mocks.MockQuestionService{}
	resp := newTestAssistant(questions).HandleEvent(context.Background(), intentEvent(t, "AMAZON.HelpIntent", nil))

	assertSpeech(t, resp, MsgUnknownIntent, false)
	assert.Empty(t, questions.Requests)
}

func TestHandleEvent_QuestionSlotShapes(t *testing.T) {
	tests := []struct {
		name string
		slot interface{}
	}{
		{"value", map[string]interface{}{"name": "question", "value": "  what is the weather "}},
		{"slotValue.value", map[string]interface{}{
			"name":      "question",
			"slotValue": map[string]interface{}{"type": "Simple", "value": "what is the weather"},
		}},
		{"blank value falls through", map[string]interface{}{
			"value":     "   ",
			"slotValue": map[string]interface{}{"value": "what is the weather"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := answering("Soleado, señor.")
			payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": tt.slot})

			resp := newTestAssistant(questions).HandleEvent(context.Background(), payload)

			assertSpeech(t, resp, "Soleado, señor.", false)
			require.Len(t, questions.Requests, 1)
			assert.Equal(t, "what is the weather", questions.Requests[0].Question)
		})
	}
}

func TestHandleEvent_EmptyQuestion(t *testing.T) {
	tests := []struct {
		name  string
		slots map[string]interface{}
	}{
		{"no slots", nil},
		{"no question slot", map[string]interface{}{"other": map[string]interface{}{"value": "hola"}}},
		{"blank value", map[string]interface{}{"question": map[string]interface{}{"value": " \t "}}},
		{"non-string value", map[string]interface{}{"question": map[string]interface{}{"value": 42}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := &mocks.MockQuestionService{}
			resp := newTestAssistant(questions).HandleEvent(context.Background(), intentEvent(t, AskJarvisIntent, tt.slots))

			assertSpeech(t, resp, MsgNotUnderstood, false)
			assert.Empty(t, questions.Requests)
		})
	}
}

func TestHandleEvent_ServiceError(t *testing.T) {
	questions := &mocks.MockQuestionService{
		AskQuestionFunc: func(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error) {
			return nil, errors.New("upstream down")
		},
	}
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "hola"}})

	resp := newTestAssistant(questions).HandleEvent(context.Background(), payload)

	assertSpeech(t, resp, MsgProcessingError, false)
}

func TestHandleEvent_EmptyAnswer(t *testing.T) {
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "hola"}})

	for _, answer := range []string{"", "  \n "} {
		resp := newTestAssistant(answering(answer)).HandleEvent(context.Background(), payload)
		assertSpeech(t, resp, MsgNoAnswer, false)
	}
}

func TestHandleEvent_LongAnswerIsTruncated(t *testing.T) {
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "cuéntame todo"}})
	long := strings.Repeat("ñ", 7500)

	resp := newTestAssistant(answering(long)).HandleEvent(context.Background(), payload)

	text := resp.Response.OutputSpeech.Text
	assert.Equal(t, 7003, utf8.RuneCountInString(text))
	assert.True(t, strings.HasSuffix(text, "..."))
	assert.Equal(t, strings.Repeat("ñ", 7000), strings.TrimSuffix(text, "..."))
	assert.False(t, resp.Response.ShouldEndSession)
}

func TestHandleEvent_AnswerTextIsSpokenVerbatim(t *testing.T) {
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "hola"}})

	for _, answer := range []string{
		"Si x<y y también y>z, entonces x<z.",
		"Vector<int> es un tipo genérico.",
		"Usa la etiqueta <br> para saltos.",
		"<b>Hola</b>, señor. 2 < 3 & \"bien\"",
	} {
		resp := newTestAssistant(answering(answer)).HandleEvent(context.Background(), payload)
		assertSpeech(t, resp, answer, false)
	}
}

func TestHandleEvent_PanicYieldsCriticalMessage(t *testing.T) {
	questions := &mocks.MockQuestionService{
		AskQuestionFunc: func(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error) {
			panic("nil map write")
		},
	}
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "hola"}})

	resp := newTestAssistant(questions).HandleEvent(context.Background(), payload)

	assertSpeech(t, resp, MsgCritical, true)
}

func TestHandleEvent_SSMLOutput(t *testing.T) {
	cfg := config.AlexaConfig{OutputFormat: FormatSSML}
	payload := intentEvent(t, AskJarvisIntent, map[string]interface{}{"question": map[string]interface{}{"value": "hola"}})

	resp := NewVoiceAssistant(answering("Sí & no, Vector<int>"), cfg, zap.NewNop()).HandleEvent(context.Background(), payload)

	speech := resp.Response.OutputSpeech
	assert.Equal(t, domain.SpeechTypeSSML, speech.Type)
	assert.Empty(t, speech.Text)
	assert.Equal(t, "<speak>Sí &amp; no, Vector&lt;int&gt;</speak>", speech.SSML)
	assert.False(t, resp.Response.ShouldEndSession)
}
