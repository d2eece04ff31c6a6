package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

type recordingServer struct {
	mu     sync.Mutex
	events []map[string]interface{}
	reply  func(event map[string]interface{}) domain.VoiceResponse
}

func (r *recordingServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var event map[string]interface{}
	_ = json.NewDecoder(req.Body).Decode(&event)

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(r.reply(event))
}

func speech(text string, end bool) domain.VoiceResponse {
	return domain.VoiceResponse{
		Version: "1.0",
		Response: domain.VoiceResponseBody{
			OutputSpeech:     domain.OutputSpeech{Type: domain.SpeechTypePlainText, Text: text},
			ShouldEndSession: end,
		},
	}
}

func newTestSimulator(t *testing.T, rec *recordingServer, shape string) *Simulator {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	return NewSimulator(&SimulatorConfig{
		ServerURL: srv.URL,
		SkillID:   "skill",
		Locale:    "es-ES",
		SlotShape: shape,
	}, zap.NewNop())
}

func requestOf(event map[string]interface{}) map[string]interface{} {
	return event["request"].(map[string]interface{})
}

func TestSimulator_AskSlotShapes(t *testing.T) {
	for _, shape := range []string{SlotShapeValue, SlotShapeSlotValue} {
		t.Run(shape, func(t *testing.T) {
			rec := &recordingServer{reply: func(map[string]interface{}) domain.VoiceResponse { return speech("Sí, señor.", false) }}
			sim := newTestSimulator(t, rec, shape)

			resp, err := sim.Ask("¿Llueve?")
			require.NoError(t, err)
			assert.Equal(t, "Sí, señor.", Speech(resp))

			require.Len(t, rec.events, 1)
			req := requestOf(rec.events[0])
			assert.Equal(t, "IntentRequest", req["type"])

			slot := req["intent"].(map[string]interface{})["slots"].(map[string]interface{})["question"].(map[string]interface{})
			if shape == SlotShapeValue {
				assert.Equal(t, "¿Llueve?", slot["value"])
			} else {
				assert.Equal(t, "¿Llueve?", slot["slotValue"].(map[string]interface{})["value"])
			}
		})
	}
}

func TestSimulator_SessionLifecycle(t *testing.T) {
	rec := &recordingServer{reply: func(event map[string]interface{}) domain.VoiceResponse {
		return speech("ok", requestOf(event)["type"] == "SessionEndedRequest")
	}}
	sim := newTestSimulator(t, rec, SlotShapeValue)

	_, err := sim.Launch()
	require.NoError(t, err)
	_, err = sim.Ask("hola")
	require.NoError(t, err)
	_, err = sim.End("USER_INITIATED")
	require.NoError(t, err)
	_, err = sim.Launch()
	require.NoError(t, err)

	require.Len(t, rec.events, 4)
	session := func(i int) map[string]interface{} { return rec.events[i]["session"].(map[string]interface{}) }

	assert.Equal(t, true, session(0)["new"])
	assert.Equal(t, false, session(1)["new"])
	assert.Equal(t, session(0)["sessionId"], session(2)["sessionId"])
	assert.Equal(t, true, session(3)["new"])
	assert.NotEqual(t, session(0)["sessionId"], session(3)["sessionId"])
}

func TestSimulator_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	sim := NewSimulator(&SimulatorConfig{ServerURL: srv.URL}, zap.NewNop())
	_, err := sim.Launch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSimulator_RunInteractive(t *testing.T) {
	rec := &recordingServer{reply: func(event map[string]interface{}) domain.VoiceResponse {
		switch requestOf(event)["type"] {
		case "LaunchRequest":
			return speech("Hola", false)
		case "SessionEndedRequest":
			return speech("Adiós", true)
		default:
			return speech("Respuesta", false)
		}
	}}
	sim := newTestSimulator(t, rec, SlotShapeValue)

	var out bytes.Buffer
	sim.RunInteractive(strings.NewReader("¿Qué hora es?\nquit\n"), &out)

	text := out.String()
	assert.Contains(t, text, "Jarvis: Hola\n")
	assert.Contains(t, text, "Jarvis: Respuesta\n")
	assert.Contains(t, text, "Jarvis: Adiós [session ended]\n")
	assert.Len(t, rec.events, 3)
}
