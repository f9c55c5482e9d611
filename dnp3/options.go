package dnp3

import (
	"log/slog"
	"os"

	"github.com/dnp3kit/dissect/wire"
)

const (
	// DefaultContextCapacity is CTXMAX: the number of (source, destination)
	// contexts the table tracks before it starts reclaiming the
	// least-recently-used one.
	DefaultContextCapacity = 16

	// DefaultContextBufferLen is BUFLEN: the size, in bytes, of each
	// context's raw-frame accumulator.
	DefaultContextBufferLen = 2048

	// DefaultInputBufferCapacity bounds the bytes a Dissector holds at the
	// start of a Feed call: the tail retained from earlier calls plus the
	// new chunk. If the two together exceed it, all of them, including
	// the new chunk, are dropped.
	DefaultInputBufferCapacity = 2048
)

// Options configures a Dissector. Use NewOptions for the defaults and
// With* functions to override individual fields.
type Options struct {
	ContextCapacity     int
	ContextBufferLen    int
	InputBufferCapacity int

	Logger *slog.Logger

	Link    LinkParser
	Segment SegmentParser
	App     AppParser

	Sink Sink

	// DebugAssertions, when true, panics on an internal invariant
	// violation instead of logging and continuing. Spec reference policy:
	// fail loudly in debug builds, downgrade to logged errors in
	// production.
	DebugAssertions bool
}

func NewOptions() Options {
	return Options{
		ContextCapacity:     DefaultContextCapacity,
		ContextBufferLen:    DefaultContextBufferLen,
		InputBufferCapacity: DefaultInputBufferCapacity,
		Logger:              slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Link:                linkParserFunc(defaultLinkParse),
		Segment:             segmentParserFunc(defaultSegmentParse),
		App:                 appParserFunc(defaultAppParse),
		Sink:                discardSink{},
	}
}

// Option mutates an Options in place.
type Option func(*Options)

func WithContextCapacity(n int) Option {
	return func(o *Options) { o.ContextCapacity = n }
}

func WithContextBufferLen(n int) Option {
	return func(o *Options) { o.ContextBufferLen = n }
}

func WithInputBufferCapacity(n int) Option {
	return func(o *Options) { o.InputBufferCapacity = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithSink(s Sink) Option {
	return func(o *Options) { o.Sink = s }
}

func WithLinkParser(p LinkParser) Option {
	return func(o *Options) { o.Link = p }
}

func WithSegmentParser(p SegmentParser) Option {
	return func(o *Options) { o.Segment = p }
}

func WithAppParser(p AppParser) Option {
	return func(o *Options) { o.App = p }
}

func WithDebugAssertions() Option {
	return func(o *Options) { o.DebugAssertions = true }
}

// discardSink is the zero-value Sink: it drops every notification. Used
// when a caller constructs a Dissector without WithSink, so Feed never
// has to nil-check its sink.
type discardSink struct{}

func (discardSink) LinkFrame(frame wire.Frame, raw []byte)       {}
func (discardSink) TransportReject()                              {}
func (discardSink) TransportSegment(seg wire.Segment)              {}
func (discardSink) TransportPayload(payload []byte)                {}
func (discardSink) AppFragment(fragment wire.AppFragment, raw []byte) {}
func (discardSink) AppError(kind wire.AppErrorKind)                {}
func (discardSink) AppReject()                                     {}
