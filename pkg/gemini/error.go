package gemini

import "fmt"

type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindSafetyBlocked
	KindInvalidRequest
	KindUnavailable
	KindEmptyResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindSafetyBlocked:
		return "safety_blocked"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnavailable:
		return "unavailable"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "other"
	}
}

// Retryable reports whether a different credential may change the outcome.
// Policy blocks and malformed requests fail the same way for every key.
func (k ErrorKind) Retryable() bool {
	return k != KindSafetyBlocked && k != KindInvalidRequest
}

// Error is the classified failure of a single generation attempt. The kind is
// assigned here, at the transport boundary, so callers never have to sniff
// error text.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
