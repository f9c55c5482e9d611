// Package wire holds the data types shared by the dissector core and its
// link/transport/application parser collaborators. It has no dependency on
// any of them, which keeps the collaborator packages free to import it
// without creating an import cycle back into the core.
package wire

import "bytes"

// MaxSegmentPayload is the largest payload a single transport segment may
// carry (IEEE 1815-2012 section 8.2.3: 250-byte link user data, less the
// one-byte transport header).
const MaxSegmentPayload = 249

// Segment is one transport-layer unit carried inside a single link frame's
// user data.
type Segment struct {
	FIR     bool
	FIN     bool
	Seq     uint8 // 6-bit sequence number, 0..63
	Payload []byte
}

// Equal reports whether two segments are byte-equal: FIR, FIN, Seq, and
// Payload all match. Used to recognize retransmitted segments.
func (s Segment) Equal(other Segment) bool {
	return s.FIR == other.FIR &&
		s.FIN == other.FIN &&
		s.Seq == other.Seq &&
		bytes.Equal(s.Payload, other.Payload)
}
