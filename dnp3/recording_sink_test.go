package dnp3

import "github.com/dnp3kit/dissect/wire"

// recordingSink is a test double collecting every notification as an Event,
// in emission order.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) LinkFrame(frame wire.Frame, raw []byte) {
	s.events = append(s.events, LinkFrameEvent{Frame: frame, Raw: cloneBytes(raw)})
}

func (s *recordingSink) TransportReject() {
	s.events = append(s.events, TransportRejectEvent{})
}

func (s *recordingSink) TransportSegment(seg wire.Segment) {
	s.events = append(s.events, TransportSegmentEvent{Segment: seg})
}

func (s *recordingSink) TransportPayload(payload []byte) {
	s.events = append(s.events, TransportPayloadEvent{Payload: cloneBytes(payload)})
}

func (s *recordingSink) AppFragment(fragment wire.AppFragment, raw []byte) {
	s.events = append(s.events, AppFragmentEvent{Fragment: fragment, Raw: cloneBytes(raw)})
}

func (s *recordingSink) AppError(kind wire.AppErrorKind) {
	s.events = append(s.events, AppErrorEvent{Kind: kind})
}

func (s *recordingSink) AppReject() {
	s.events = append(s.events, AppRejectEvent{})
}

func filterEvents[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
