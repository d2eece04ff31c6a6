package jarvis

const (
	processingPrefix       = "Error al procesar la solicitud: "
	streamProcessingPrefix = "Error al procesar la solicitud con streaming: "
)

// ProcessingError is the single error kind the service lets out. It wraps
// whatever the completion client failed with.
type ProcessingError struct {
	prefix string
	Err    error
}

func (e *ProcessingError) Error() string {
	return e.prefix + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
