package dnp3

import (
	"fmt"

	"github.com/dnp3kit/dissect/gid"
	"github.com/dnp3kit/dissect/wire"
)

// Event is the common interface satisfied by every notification the
// dissector emits through a Sink. Kept deliberately thin, mirroring the
// retrieved pack's parsed-content types: opaque to anything downstream
// beyond a short printable summary.
type Event interface {
	Print() string
}

// LinkFrameEvent fires for every link frame the synchronizer recognizes,
// including frames whose payload failed its CRC.
type LinkFrameEvent struct {
	Frame wire.Frame
	Raw   []byte
}

func (e LinkFrameEvent) Print() string {
	return fmt.Sprintf("link_frame func=%s src=%d dst=%d len=%d crc_ok=%t",
		e.Frame.Func, e.Frame.Source, e.Frame.Destination, len(e.Raw), e.Frame.Payload != nil)
}

// TransportRejectEvent fires when a frame's user data could not be parsed
// as a transport segment at all.
type TransportRejectEvent struct{}

func (TransportRejectEvent) Print() string { return "transport_reject" }

// TransportSegmentEvent fires for every transport segment successfully
// decoded from a frame's user data, independent of what the recognizer
// eventually does with it.
type TransportSegmentEvent struct {
	Segment wire.Segment
}

func (e TransportSegmentEvent) Print() string {
	return fmt.Sprintf("transport_segment fir=%t fin=%t seq=%d len=%d",
		e.Segment.FIR, e.Segment.FIN, e.Segment.Seq, len(e.Segment.Payload))
}

// TransportPayloadEvent fires when a series of segments reassembles into a
// complete application fragment's worth of payload.
type TransportPayloadEvent struct {
	Payload []byte
}

func (e TransportPayloadEvent) Print() string {
	return fmt.Sprintf("transport_payload len=%d", len(e.Payload))
}

// AppFragmentEvent fires when reassembled transport payload parses as a
// valid application request or response.
type AppFragmentEvent struct {
	ID       gid.FragmentID
	Fragment wire.AppFragment
	Raw      []byte
}

func (e AppFragmentEvent) Print() string {
	return fmt.Sprintf("app_fragment id=%s kind=%s raw_len=%d", e.ID, e.Fragment.Kind(), len(e.Raw))
}

// AppErrorEvent fires when reassembled payload is recognizable as an
// attempted request or response but violates a further structural rule.
type AppErrorEvent struct {
	Kind wire.AppErrorKind
}

func (e AppErrorEvent) Print() string {
	return fmt.Sprintf("app_error kind=%s", e.Kind)
}

// AppRejectEvent fires when reassembled payload could not be classified as
// a request or response attempt at all.
type AppRejectEvent struct{}

func (AppRejectEvent) Print() string { return "app_reject" }

// Sink is the event-sink contract the dissector drives. Every method is a
// one-way notification; the pipeline never inspects a return value, so
// implementations that need backpressure (a bounded channel, a rate
// limiter) must handle it internally.
type Sink interface {
	LinkFrame(frame wire.Frame, raw []byte)
	TransportReject()
	TransportSegment(seg wire.Segment)
	TransportPayload(payload []byte)
	AppFragment(fragment wire.AppFragment, raw []byte)
	AppError(kind wire.AppErrorKind)
	AppReject()
}

// ChannelSink is a Sink that wraps every notification as an Event and
// sends it on the underlying channel. Each byte slice handed to the sink
// is copied before being sent, since the dissector reuses its internal
// buffers after a sink call returns.
type ChannelSink chan<- Event

func (s ChannelSink) LinkFrame(frame wire.Frame, raw []byte) {
	s <- LinkFrameEvent{Frame: frame, Raw: cloneBytes(raw)}
}

func (s ChannelSink) TransportReject() {
	s <- TransportRejectEvent{}
}

func (s ChannelSink) TransportSegment(seg wire.Segment) {
	stored := seg
	stored.Payload = cloneBytes(seg.Payload)
	s <- TransportSegmentEvent{Segment: stored}
}

func (s ChannelSink) TransportPayload(payload []byte) {
	s <- TransportPayloadEvent{Payload: cloneBytes(payload)}
}

func (s ChannelSink) AppFragment(fragment wire.AppFragment, raw []byte) {
	s <- AppFragmentEvent{ID: gid.GenerateFragmentID(), Fragment: fragment, Raw: cloneBytes(raw)}
}

func (s ChannelSink) AppError(kind wire.AppErrorKind) {
	s <- AppErrorEvent{Kind: kind}
}

func (s ChannelSink) AppReject() {
	s <- AppRejectEvent{}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Tee fans a single Event stream out to two independent consumers. It
// closes both output channels once in is closed and fully drained.
// Adapted from the retrieved pack's network-event tee: one reader falling
// behind stalls the other, since both sends happen on the same goroutine.
func Tee(in <-chan Event) (<-chan Event, <-chan Event) {
	out1 := make(chan Event)
	out2 := make(chan Event)

	go func() {
		defer close(out1)
		defer close(out2)
		for e := range in {
			out1 <- e
			out2 <- e
		}
	}()

	return out1, out2
}
