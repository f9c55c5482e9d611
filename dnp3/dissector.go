// Package dnp3 implements a streaming dissector for the DNP3 (IEEE 1815)
// link/transport/application layering: synchronizing a raw byte stream
// onto link frame boundaries, tracking per-(source,destination) transport
// reassembly state, and recognizing application fragments, all without
// blocking on a complete capture — bytes are handed to Feed as they
// arrive and every event is emitted as soon as it is known.
package dnp3

import (
	"log/slog"

	"github.com/dnp3kit/dissect/sets"
	"github.com/dnp3kit/dissect/wire"
)

// Dissector is a streaming DNP3 dissector instance. It owns its own
// context table, recognizer state, and input tail buffer; nothing is
// shared across Dissector values, so running several in parallel (one per
// captured conversation) needs no external synchronization.
type Dissector struct {
	table *Table
	sink  Sink

	link    LinkParser
	segment SegmentParser
	app     AppParser

	logger          *slog.Logger
	debugAssertions bool

	inputCap int
	tail     []byte

	stations sets.OrderedSet[uint16]
}

// New constructs a Dissector. Defaults come from NewOptions; pass Option
// values to override them.
func New(opts ...Option) (*Dissector, error) {
	o := NewOptions()
	for _, apply := range opts {
		apply(&o)
	}

	table, err := NewTable(o.ContextCapacity, o.ContextBufferLen, o.Logger)
	if err != nil {
		return nil, err
	}

	return &Dissector{
		table:           table,
		sink:            o.Sink,
		link:            o.Link,
		segment:         o.Segment,
		app:             o.App,
		logger:          o.Logger,
		debugAssertions: o.DebugAssertions,
		inputCap:        o.InputBufferCapacity,
		stations:        sets.NewOrderedSet[uint16](),
	}, nil
}

// Feed delivers the next chunk of bytes from a byte stream carrying DNP3
// link frames. It always returns nil. Data-plane conditions (malformed
// frames, CRC failures, reassembly overflow) are reported through the
// configured Sink and logger. A failure of the pipeline's own bookkeeping
// (a context-table lookup error, which should not happen once New has
// succeeded) is logged and the frame skipped, or panics when the
// Dissector was built WithDebugAssertions.
func (d *Dissector) Feed(data []byte) error {
	d.tail = append(d.tail, data...)

	if len(d.tail) > d.inputCap {
		d.logger.Warn("input buffer overflow: dropping unsynchronized bytes", "dropped", len(d.tail))
		d.tail = d.tail[:0]
		return nil
	}

	for len(d.tail) > 0 {
		frame, consumed, found := syncFrame(d.link, d.tail)
		if !found {
			d.tail = d.tail[consumed:]
			break
		}
		d.processLinkFrame(frame, d.tail[:consumed])
		d.tail = d.tail[consumed:]
	}

	if len(d.tail) == 0 {
		d.tail = nil
	} else {
		d.tail = append([]byte(nil), d.tail...)
	}

	return nil
}

// Contexts reports the address pairs currently tracked, most recently
// used first. Exposed for observability and tests; the pipeline itself
// never needs to enumerate contexts.
func (d *Dissector) Contexts() []AddrPair {
	return d.table.Snapshot()
}

// ContextsOldestFirst is Contexts in reclamation order: the pair that would
// be evicted next comes first.
func (d *Dissector) ContextsOldestFirst() []AddrPair {
	return d.table.SnapshotOldestFirst()
}

// Stations reports every distinct DNP3 station address observed so far
// (as either a source or a destination), sorted ascending.
func (d *Dissector) Stations() []uint16 {
	return d.stations.AsSlice()
}

func (d *Dissector) processLinkFrame(frame wire.Frame, raw []byte) {
	d.stations.Insert(frame.Source, frame.Destination)
	d.sink.LinkFrame(frame, raw)

	switch frame.Func {
	case wire.FuncConfirmedUserData:
		d.logger.Warn("confirmed user data delivery is not supported; frame dropped",
			"source", frame.Source, "destination", frame.Destination)
		return

	case wire.FuncUnconfirmedUserData:
		if frame.Payload == nil {
			// Structurally valid frame, failed data-integrity check.
			// Nothing more can be done with it.
			return
		}
		d.processUserData(frame, raw)

	default:
		// link_frame already emitted above; no transport-layer work for
		// any other link function.
	}
}

func (d *Dissector) processUserData(frame wire.Frame, raw []byte) {
	ctx, err := d.table.Lookup(frame.Source, frame.Destination)
	if err != nil {
		if d.debugAssertions {
			panic(err)
		}
		d.logger.Error("context table lookup failed", "err", err)
		return
	}

	seg, err := d.segment.Parse(frame.Payload)
	if err != nil {
		d.sink.TransportReject()
		return
	}

	if ctx.n+len(raw) <= len(ctx.buf) {
		copy(ctx.buf[ctx.n:], raw)
		ctx.n += len(raw)
	} else {
		d.logger.Warn("context raw-buffer overflow: dropping frame bytes",
			"source", frame.Source, "destination", frame.Destination,
			"have", ctx.n, "incoming", len(raw), "capacity", len(ctx.buf))
	}

	d.feedTransportSegment(ctx, seg)
}

func (d *Dissector) feedTransportSegment(ctx *Context, seg wire.Segment) {
	tokens := transportTokens(seg, ctx.lastSegment)
	ctx.saveLastSegment(seg)
	d.sink.TransportSegment(seg)

	for _, tok := range tokens {
		var (
			result    tfunResult
			completed bool
		)
		ctx.tfun, result, completed = stepTfun(ctx.tfun, tok)
		ctx.tfunPos++

		if !completed {
			continue
		}

		if result.Payload != nil {
			d.sink.TransportPayload(result.Payload)
			d.dispatchApp(ctx, result.Payload)
		}
		ctx.n = 0
	}
}

func (d *Dissector) dispatchApp(ctx *Context, payload []byte) {
	fragment, kind, err := d.app.Parse(payload)
	switch {
	case err != nil:
		d.sink.AppReject()
	case fragment != nil:
		d.sink.AppFragment(fragment, ctx.buf[:ctx.n])
	default:
		d.sink.AppError(kind)
	}
}
