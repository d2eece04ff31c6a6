package voice

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

const (
	FormatPlain = "plain"
	FormatSSML  = "ssml"

	// DefaultMaxSpeechLen leaves headroom under the platform's 8000 character
	// limit on output speech.
	DefaultMaxSpeechLen = 7000
	ellipsis            = "..."
)

// Renderer builds voice response envelopes in the configured output format.
type Renderer struct {
	format string
	maxLen int
}

func NewRenderer(format string, maxLen int) *Renderer {
	if format != FormatSSML {
		format = FormatPlain
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxSpeechLen
	}
	return &Renderer{
		format: format,
		maxLen: maxLen,
	}
}

// Speak wraps text as-is.
func (r *Renderer) Speak(text string, endSession bool) *domain.VoiceResponse {
	speech := domain.OutputSpeech{Type: domain.SpeechTypePlainText, Text: text}
	if r.format == FormatSSML {
		speech = domain.OutputSpeech{
			Type: domain.SpeechTypeSSML,
			SSML: "<speak>" + html.EscapeString(text) + "</speak>",
		}
	}
	return &domain.VoiceResponse{
		Version: "1.0",
		Response: domain.VoiceResponseBody{
			OutputSpeech:     speech,
			ShouldEndSession: endSession,
		},
	}
}

// PrepareAnswer cuts a generated answer to the speech limit, leaving its
// text untouched otherwise. The result is empty for a blank answer.
func (r *Renderer) PrepareAnswer(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return ""
	}
	return Truncate(answer, r.maxLen)
}

// Truncate keeps the first max characters of s and appends an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + ellipsis
}
