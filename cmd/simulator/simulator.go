package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/service/voice"
)

// Slot shapes the simulator can emit for the question slot.
const (
	SlotShapeValue     = "value"
	SlotShapeSlotValue = "slotValue"
)

// SimulatorConfig holds the simulator configuration
type SimulatorConfig struct {
	ServerURL string
	SkillID   string
	UserID    string
	Locale    string
	SlotShape string
	Timeout   time.Duration
}

// Simulator plays the part of a voice device talking to the webhook.
type Simulator struct {
	config *SimulatorConfig
	client *fasthttp.Client
	log    *zap.Logger

	sessionID  string
	newSession bool
}

func NewSimulator(config *SimulatorConfig, log *zap.Logger) *Simulator {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	s := &Simulator{
		config: config,
		client: &fasthttp.Client{Name: "jarvis-voice-simulator"},
		log:    log,
	}
	s.resetSession()
	return s
}

func (s *Simulator) resetSession() {
	s.sessionID = "amzn1.echo-api.session." + uuid.NewString()
	s.newSession = true
}

// Launch opens the skill without a question.
func (s *Simulator) Launch() (*domain.VoiceResponse, error) {
	return s.send(map[string]interface{}{"type": domain.RequestTypeLaunch})
}

// Ask sends question through the question intent.
func (s *Simulator) Ask(question string) (*domain.VoiceResponse, error) {
	slot := map[string]interface{}{"name": "question", "value": question}
	if s.config.SlotShape == SlotShapeSlotValue {
		slot = map[string]interface{}{
			"name":      "question",
			"slotValue": map[string]interface{}{"type": "Simple", "value": question},
		}
	}

	return s.send(map[string]interface{}{
		"type": domain.RequestTypeIntent,
		"intent": map[string]interface{}{
			"name":  voice.AskJarvisIntent,
			"slots": map[string]interface{}{"question": slot},
		},
	})
}

// End closes the current session.
func (s *Simulator) End(reason string) (*domain.VoiceResponse, error) {
	resp, err := s.send(map[string]interface{}{
		"type":   domain.RequestTypeSessionEnded,
		"reason": reason,
	})
	s.resetSession()
	return resp, err
}

func (s *Simulator) send(request map[string]interface{}) (*domain.VoiceResponse, error) {
	request["requestId"] = "amzn1.echo-api.request." + uuid.NewString()
	request["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	request["locale"] = s.config.Locale

	envelope := map[string]interface{}{
		"version": "1.0",
		"session": map[string]interface{}{
			"new":         s.newSession,
			"sessionId":   s.sessionID,
			"application": map[string]interface{}{"applicationId": s.config.SkillID},
			"user":        map[string]interface{}{"userId": s.config.UserID},
		},
		"request": request,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(strings.TrimRight(s.config.ServerURL, "/") + "/alexa/webhook")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	s.log.Debug("Sending voice event",
		zap.Any("type", request["type"]),
		zap.String("session_id", s.sessionID),
	)

	if err := s.client.DoTimeout(req, resp, s.config.Timeout); err != nil {
		return nil, fmt.Errorf("send voice event: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	var out domain.VoiceResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode voice response: %w", err)
	}

	s.newSession = false
	if out.Response.ShouldEndSession {
		s.resetSession()
	}

	return &out, nil
}

// Speech returns whatever the device would read aloud.
func Speech(resp *domain.VoiceResponse) string {
	if resp.Response.OutputSpeech.Type == domain.SpeechTypeSSML {
		return resp.Response.OutputSpeech.SSML
	}
	return resp.Response.OutputSpeech.Text
}

// RunInteractive reads questions line by line until "quit" or EOF.
func (s *Simulator) RunInteractive(in io.Reader, out io.Writer) {
	s.speak(out, s.Launch)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit" || line == "exit":
			s.speak(out, func() (*domain.VoiceResponse, error) { return s.End("USER_INITIATED") })
			return
		case line == "launch":
			s.speak(out, s.Launch)
		default:
			s.speak(out, func() (*domain.VoiceResponse, error) { return s.Ask(line) })
		}
		fmt.Fprint(out, "> ")
	}

	s.speak(out, func() (*domain.VoiceResponse, error) { return s.End("EXCEEDED_MAX_REPROMPTS") })
}

func (s *Simulator) speak(out io.Writer, call func() (*domain.VoiceResponse, error)) {
	resp, err := call()
	if err != nil {
		s.log.Error("Voice event failed", zap.Error(err))
		fmt.Fprintf(out, "[error] %v\n", err)
		return
	}

	suffix := ""
	if resp.Response.ShouldEndSession {
		suffix = " [session ended]"
	}
	fmt.Fprintf(out, "Jarvis: %s%s\n", Speech(resp), suffix)
}
