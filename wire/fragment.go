package wire

// AppFragment is the opaque application-layer result the app parser hands
// back to the core for emission. The core never branches on a fragment's
// contents; Kind exists only so a sink can print a useful summary without
// a type switch over every concrete fragment type an app parser defines.
type AppFragment interface {
	Kind() string
}

// AppErrorKind classifies a recognized-but-invalid application message: the
// app parser identified enough structure to know what the message was
// attempting to be, but it violates a further structural rule.
type AppErrorKind int

const (
	AppErrorUnknown AppErrorKind = iota
	AppErrorMalformedRequest
	AppErrorMalformedResponse
	AppErrorUnsupportedFunction
)

func (k AppErrorKind) String() string {
	switch k {
	case AppErrorMalformedRequest:
		return "malformed-request"
	case AppErrorMalformedResponse:
		return "malformed-response"
	case AppErrorUnsupportedFunction:
		return "unsupported-function"
	default:
		return "unknown"
	}
}
