package dnp3

import (
	"container/list"

	"github.com/dnp3kit/dissect/gid"
	"github.com/dnp3kit/dissect/optionals"
	"github.com/dnp3kit/dissect/wire"
)

// Context tracks reassembly state for one (source, destination) address
// pair: the last segment seen (for retransmit/sequence classification),
// any in-progress transport-function series, and the raw link-frame bytes
// accumulated since the recognizer last completed a step (a closed or
// discarded series, or a stray token outside one).
type Context struct {
	id          gid.ContextID
	src, dst    uint16

	lastSegment        optionals.Optional[wire.Segment]
	lastSegmentPayload []byte // fixed backing store; lastSegment.Payload aliases into this, never the caller's bytes

	tfun    optionals.Optional[tfunState]
	tfunPos uint64

	buf []byte // fixed BUFLEN-capacity raw-frame accumulator, owned for this context's lifetime
	n   int

	elem *list.Element // this context's node in the owning Table's LRU list
}

func newContext(src, dst uint16, buf []byte) *Context {
	return &Context{
		id:                 gid.GenerateContextID(),
		src:                src,
		dst:                dst,
		lastSegmentPayload: make([]byte, wire.MaxSegmentPayload),
		buf:                buf,
	}
}

// ID returns this context's identity. Stable for the context's lifetime;
// a context reclaimed by the LRU table and reused for a different address
// pair is assigned a fresh ID.
func (c *Context) ID() gid.ContextID { return c.id }

// Source and Destination report the address pair this context tracks.
func (c *Context) Source() uint16      { return c.src }
func (c *Context) Destination() uint16 { return c.dst }

// saveLastSegment deep-copies seg's payload into the context's own
// storage and records it as the last segment seen. The core must never
// alias caller- or link-frame-owned bytes past the call that delivered
// them; this is the one place a Segment crosses into durable state.
func (c *Context) saveLastSegment(seg wire.Segment) {
	n := copy(c.lastSegmentPayload, seg.Payload)
	stored := seg
	stored.Payload = c.lastSegmentPayload[:n]
	c.lastSegment = optionals.Some(stored)
}

// reset clears all reassembly state and reassigns this context to a new
// address pair. Used when the table reuses this slot through LRU
// reclamation; a freshly allocated slot is built by newContext instead.
func (c *Context) reset(src, dst uint16) {
	c.id = gid.GenerateContextID()
	c.src = src
	c.dst = dst
	c.lastSegment = optionals.None[wire.Segment]()
	c.tfun = optionals.None[tfunState]()
	c.tfunPos = 0
	c.n = 0
}
