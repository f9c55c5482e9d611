package wire

// FrameFunc identifies the link-layer function code of a frame, trimmed to
// the cases the dissection pipeline branches on. Every other valid DNP3
// link function code (reset link states, test link states, link status,
// ack/nak, ...) collapses into FuncOther: the pipeline only cares whether a
// frame carries user data, and if so, under which delivery discipline.
type FrameFunc int

const (
	FuncOther FrameFunc = iota
	FuncUnconfirmedUserData
	FuncConfirmedUserData
)

func (f FrameFunc) String() string {
	switch f {
	case FuncUnconfirmedUserData:
		return "unconfirmed-user-data"
	case FuncConfirmedUserData:
		return "confirmed-user-data"
	default:
		return "other"
	}
}

// Frame is the link-layer unit produced by the frame synchronizer. Only the
// fields the pipeline acts on are kept; DNP3 object/header-level decoding
// below the transport layer is out of scope.
type Frame struct {
	Func        FrameFunc
	Source      uint16
	Destination uint16

	// Payload is the transport-segment byte sequence carried by this frame,
	// or nil if the frame's payload failed its data-integrity check. A nil
	// Payload with Func set to one of the user-data functions means the
	// frame was structurally recognized (good header) but its contents
	// cannot be trusted.
	Payload []byte
}
