package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

// rootField is how gojsonschema names the document itself.
const rootField = "(root)"

// MaxQuestionLength is counted in characters, not bytes.
const MaxQuestionLength = 5000

const askRequestSchema = `{
	"type": "object",
	"properties": {
		"question": {"type": "string", "minLength": 1, "maxLength": 5000, "pattern": "\\S"},
		"conversationId": {"type": "string"},
		"userId": {"type": "string"}
	},
	"required": ["question"],
	"additionalProperties": false
}`

var askSchema = mustCompile(askRequestSchema)

func mustCompile(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("validation: invalid schema: %v", err))
	}
	return s
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when a request body breaks its schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages lists the human readable violations in schema order.
func (e *Error) Messages() []string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return msgs
}

// ValidateAskRequest checks body against the ask schema and decodes it.
func ValidateAskRequest(body []byte) (domain.QuestionRequest, error) {
	var req domain.QuestionRequest

	result, err := askSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return req, &Error{Fields: []FieldError{{Field: "body", Message: "body must be a valid JSON object"}}}
	}

	if !result.Valid() {
		fields := make([]FieldError, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			fields = append(fields, toFieldError(desc))
		}
		return req, &Error{Fields: fields}
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("decode ask request: %w", err)
	}
	return req, nil
}

func toFieldError(desc gojsonschema.ResultError) FieldError {
	field := desc.Field()
	if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
		field = prop
	}
	if field == rootField {
		return FieldError{Field: "body", Message: "body must be a JSON object"}
	}

	var msg string
	switch desc.Type() {
	case "required":
		msg = fmt.Sprintf("%s should not be empty", field)
	case "additional_property_not_allowed":
		msg = fmt.Sprintf("property %s should not exist", field)
	case "invalid_type":
		msg = fmt.Sprintf("%s must be a string", field)
	case "string_gte", "pattern":
		msg = fmt.Sprintf("%s must contain non-whitespace text", field)
	case "string_lte":
		msg = fmt.Sprintf("%s must be shorter than or equal to %d characters", field, MaxQuestionLength)
	default:
		msg = desc.Description()
	}

	return FieldError{Field: field, Message: msg}
}
