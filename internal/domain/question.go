package domain

// FallbackAnswer substitutes an empty generation so Answer is never blank.
const FallbackAnswer = "No se pudo generar una respuesta."

// QuestionRequest is a single question sent to JARVIS.
type QuestionRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversationId,omitempty"`
	UserID         string `json:"userId,omitempty"`
}

// AnswerResponse is what JARVIS returns for a question.
type AnswerResponse struct {
	Answer          string `json:"answer"`
	ConversationID  string `json:"conversationId,omitempty"`
	Timestamp       string `json:"timestamp"`
	Model           string `json:"model,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	IsImageResponse bool   `json:"isImageResponse,omitempty"`
}

// StreamChunk is one incremental fragment of a streamed answer.
type StreamChunk struct {
	Content string `json:"content"`
}
