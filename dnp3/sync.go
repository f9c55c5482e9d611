package dnp3

import (
	"github.com/dnp3kit/dissect/linkparser"
	"github.com/dnp3kit/dissect/wire"
)

// syncFrame implements the frame synchronizer: it searches buf for a
// recognizable link frame, skipping one byte at a time past anything the
// link parser rejects. No valid frame can start inside a prefix the link
// parser rejects, so byte-granular skipping cannot step over an aligned
// frame.
//
// found reports whether a complete frame was located. consumed is always
// safe to drop from the front of buf: on success it is the full matched
// frame's length; otherwise it is the number of leading bytes confirmed
// not to start a valid frame (the remainder, if any, is a potential
// frame prefix still waiting on more data and must be retained).
func syncFrame(link LinkParser, buf []byte) (frame wire.Frame, consumed int, found bool) {
	skipped := 0
	for skipped < len(buf) {
		f, n, decision := link.TryParse(buf[skipped:])
		switch decision {
		case linkparser.Accept:
			return f, skipped + n, true
		case linkparser.NeedMoreData:
			return wire.Frame{}, skipped, false
		default: // linkparser.Reject
			skipped++
		}
	}
	return wire.Frame{}, skipped, false
}
