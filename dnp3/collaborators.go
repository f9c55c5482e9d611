package dnp3

import (
	"github.com/dnp3kit/dissect/appparser"
	"github.com/dnp3kit/dissect/linkparser"
	"github.com/dnp3kit/dissect/segmentparser"
	"github.com/dnp3kit/dissect/wire"
)

// LinkParser recognizes a single candidate link frame at buf[0]. The
// linkparser package is the default implementation; this interface exists
// so tests (and callers with unusual framing needs) can substitute their
// own.
type LinkParser interface {
	TryParse(buf []byte) (wire.Frame, int, linkparser.AcceptDecision)
}

// SegmentParser decodes a single link frame's user data into a transport
// segment.
type SegmentParser interface {
	Parse(buf []byte) (wire.Segment, error)
}

// AppParser classifies reassembled transport payload as an application
// request, response, recognized-but-invalid fragment, or reject.
type AppParser interface {
	Parse(payload []byte) (wire.AppFragment, wire.AppErrorKind, error)
}

type linkParserFunc func([]byte) (wire.Frame, int, linkparser.AcceptDecision)

func (f linkParserFunc) TryParse(buf []byte) (wire.Frame, int, linkparser.AcceptDecision) {
	return f(buf)
}

func defaultLinkParse(buf []byte) (wire.Frame, int, linkparser.AcceptDecision) {
	return linkparser.TryParse(buf)
}

type segmentParserFunc func([]byte) (wire.Segment, error)

func (f segmentParserFunc) Parse(buf []byte) (wire.Segment, error) {
	return f(buf)
}

func defaultSegmentParse(buf []byte) (wire.Segment, error) {
	return segmentparser.Parse(buf)
}

type appParserFunc func([]byte) (wire.AppFragment, wire.AppErrorKind, error)

func (f appParserFunc) Parse(payload []byte) (wire.AppFragment, wire.AppErrorKind, error) {
	return f(payload)
}

func defaultAppParse(payload []byte) (wire.AppFragment, wire.AppErrorKind, error) {
	return appparser.Parse(payload)
}
