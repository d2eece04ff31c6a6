package domain

// Request kinds sent by the Alexa platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// VoiceRequest is the closed set of request kinds a voice event can carry:
// *LaunchRequest, *IntentRequest, *SessionEndedRequest or *UnrecognizedRequest.
type VoiceRequest interface {
	voiceRequest()
}

type LaunchRequest struct{}

type IntentRequest struct {
	// Intent is nil when the platform sent an IntentRequest without one.
	Intent *Intent
}

type SessionEndedRequest struct {
	Reason string
}

type UnrecognizedRequest struct {
	Type string
}

func (*LaunchRequest) voiceRequest()       {}
func (*IntentRequest) voiceRequest()       {}
func (*SessionEndedRequest) voiceRequest() {}
func (*UnrecognizedRequest) voiceRequest() {}

// Intent is a parsed utterance. Slot values stay loosely typed because the
// platform nests them differently depending on the slot kind.
type Intent struct {
	Name  string
	Slots map[string]interface{}
}

// Output speech types.
const (
	SpeechTypePlainText = "PlainText"
	SpeechTypeSSML      = "SSML"
)

// VoiceResponse is the envelope returned to the voice platform.
type VoiceResponse struct {
	Version  string            `json:"version"`
	Response VoiceResponseBody `json:"response"`
}

type VoiceResponseBody struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}
