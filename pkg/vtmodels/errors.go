package vtmodels

// UnifiedErrorKind is the single error taxonomy shared by the tool
// pipeline and the provider layer, merging the previously separate
// ToolErrorType/FailoverReason enums into one classification the
// run-loop can switch on.
type UnifiedErrorKind string

const (
	ErrKindTimeout             UnifiedErrorKind = "timeout"
	ErrKindNetwork             UnifiedErrorKind = "network"
	ErrKindRateLimit           UnifiedErrorKind = "rate_limit"
	ErrKindCircuitOpen         UnifiedErrorKind = "circuit_open"
	ErrKindAuth                UnifiedErrorKind = "auth"
	ErrKindBilling             UnifiedErrorKind = "billing"
	ErrKindArgumentValidation  UnifiedErrorKind = "argument_validation"
	ErrKindPermissionDenied    UnifiedErrorKind = "permission_denied"
	ErrKindNotFound            UnifiedErrorKind = "not_found"
	ErrKindContentFilter       UnifiedErrorKind = "content_filter"
	ErrKindModelUnavailable    UnifiedErrorKind = "model_unavailable"
	ErrKindInvalidRequest      UnifiedErrorKind = "invalid_request"
	ErrKindServer              UnifiedErrorKind = "server"
	ErrKindCancelled           UnifiedErrorKind = "cancelled"
	ErrKindUnknown             UnifiedErrorKind = "unknown"
)

// IsRetryable reports whether a bare retry of the same request may
// succeed. Only these four kinds are retryable per the run-loop's
// retry contract.
func (k UnifiedErrorKind) IsRetryable() bool {
	switch k {
	case ErrKindTimeout, ErrKindNetwork, ErrKindRateLimit, ErrKindCircuitOpen:
		return true
	default:
		return false
	}
}

// IsLLMMistake reports whether the error was caused by the model
// emitting malformed or invalid tool-call arguments, as opposed to an
// infrastructure or policy failure. Only argument validation counts.
func (k UnifiedErrorKind) IsLLMMistake() bool {
	return k == ErrKindArgumentValidation
}

// UnifiedError is the error type returned across the tool pipeline and
// provider boundary.
type UnifiedError struct {
	Kind         UnifiedErrorKind
	Component    string
	Message      string
	RequestID    string
	Cause        error
}

func (e *UnifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind)
}

func (e *UnifiedError) Unwrap() error { return e.Cause }

// NewUnifiedError constructs a UnifiedError with the given kind.
func NewUnifiedError(kind UnifiedErrorKind, component string, cause error) *UnifiedError {
	e := &UnifiedError{Kind: kind, Component: component, Cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	return e
}
