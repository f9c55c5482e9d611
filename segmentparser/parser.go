// Package segmentparser decodes the one-byte DNP3 transport header that
// prefixes every link frame's user data.
package segmentparser

import (
	"github.com/dnp3kit/dissect/wire"
	"github.com/pkg/errors"
)

// ErrEmpty is returned when the link frame carried no user data at all, so
// there is no transport header octet to read. A link frame's presence does
// not imply a usable transport segment; this is the normal shape of the
// "empty user data" edge case.
var ErrEmpty = errors.New("segmentparser: empty transport payload")

// ErrTooLarge is returned when the payload following the header octet
// exceeds the largest segment payload the link layer can ever deliver,
// which signals a malformed or adversarial frame rather than a real
// DNP3 segment.
var ErrTooLarge = errors.New("segmentparser: payload exceeds maximum segment size")

const (
	firMask = 0x80
	finMask = 0x40
	seqMask = 0x3F
)

// Parse decodes buf as a transport segment. buf is a single link frame's
// entire user data; the header octet is buf[0] and the remainder is the
// segment payload verbatim. There is nothing left to consume beyond this
// one call — the link layer has already delimited exactly one segment's
// worth of bytes.
func Parse(buf []byte) (wire.Segment, error) {
	if len(buf) == 0 {
		return wire.Segment{}, ErrEmpty
	}
	if len(buf)-1 > wire.MaxSegmentPayload {
		return wire.Segment{}, ErrTooLarge
	}

	header := buf[0]
	return wire.Segment{
		FIR:     header&firMask != 0,
		FIN:     header&finMask != 0,
		Seq:     header & seqMask,
		Payload: buf[1:],
	}, nil
}

// Encode is the inverse of Parse, used by tests and by callers that need
// to originate transport segments.
func Encode(seg wire.Segment) []byte {
	header := seg.Seq & seqMask
	if seg.FIR {
		header |= firMask
	}
	if seg.FIN {
		header |= finMask
	}

	out := make([]byte, 0, 1+len(seg.Payload))
	out = append(out, header)
	return append(out, seg.Payload...)
}
