package voice

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

var ErrMissingRequest = errors.New("voice: event has no request envelope")

// ParseEvent decodes a raw webhook payload into one of the domain request
// kinds. Only the presence and shape of the fields it reads are checked.
func ParseEvent(payload []byte) (domain.VoiceRequest, error) {
	var envelope map[string]interface{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingRequest, err)
	}

	request, ok := envelope["request"].(map[string]interface{})
	if !ok {
		return nil, ErrMissingRequest
	}

	requestType, _ := request["type"].(string)
	switch requestType {
	case domain.RequestTypeLaunch:
		return &domain.LaunchRequest{}, nil
	case domain.RequestTypeIntent:
		return &domain.IntentRequest{Intent: parseIntent(request["intent"])}, nil
	case domain.RequestTypeSessionEnded:
		reason, _ := request["reason"].(string)
		return &domain.SessionEndedRequest{Reason: reason}, nil
	default:
		return &domain.UnrecognizedRequest{Type: requestType}, nil
	}
}

func parseIntent(raw interface{}) *domain.Intent {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	name, _ := obj["name"].(string)
	slots, _ := obj["slots"].(map[string]interface{})
	return &domain.Intent{Name: name, Slots: slots}
}
