package voice

// AskJarvisIntent is the only intent that carries a question.
const AskJarvisIntent = "AskJarvisIntent"

// Spoken replies.
const (
	MsgInvalidRequest  = "Error: No se recibió una solicitud válida."
	MsgGreeting        = "Hola, soy Jarvis. ¿Qué deseas preguntar?"
	MsgNoIntent        = "No pude identificar tu solicitud. Por favor, intenta nuevamente."
	MsgNotUnderstood   = "No entendí la pregunta. Por favor, intenta nuevamente con una pregunta clara."
	MsgNoAnswer        = "Lo siento, no pude generar una respuesta. Por favor, intenta con otra pregunta."
	MsgProcessingError = "Lo siento, ocurrió un error al procesar tu pregunta. Por favor, intenta de nuevo."
	MsgUnknownIntent   = "No puedo procesar esa solicitud. Por favor, intenta hacer una pregunta."
	MsgFarewell        = "Hasta luego."
	MsgUnknownRequest  = "No entendí la solicitud. Por favor, intenta de nuevo."
	MsgCritical        = "Ocurrió un error procesando tu solicitud. Por favor, intenta más tarde."
)
