package pcapsource

const (
	DefaultStreamFlushTimeoutSeconds int64 = 10
	DefaultStreamCloseTimeoutSeconds int64 = 90

	DefaultMaxBufferedPagesTotal         int = 100_000
	DefaultMaxBufferedPagesPerConnection int = 4_000

	// DNP3's conventional TCP port (IANA-assigned), used only as the
	// default BPF filter hint; callers are free to override it.
	DefaultPort = 20000
)

type Options struct {
	// Live reports whether ReadName names a live interface rather than a
	// capture file.
	Live     bool
	ReadName string
	BPFilter string

	// StreamFlushTimeoutSeconds bounds how long a gap in a TCP flow's
	// sequence numbers is tolerated before the assembler delivers what it
	// has and moves on.
	StreamFlushTimeoutSeconds int64

	// StreamCloseTimeoutSeconds bounds how long an idle flow is kept open
	// waiting for more traffic.
	StreamCloseTimeoutSeconds int64

	MaxBufferedPagesTotal         int
	MaxBufferedPagesPerConnection int
}

func NewOptions() Options {
	return Options{
		StreamFlushTimeoutSeconds:     DefaultStreamFlushTimeoutSeconds,
		StreamCloseTimeoutSeconds:     DefaultStreamCloseTimeoutSeconds,
		MaxBufferedPagesTotal:         DefaultMaxBufferedPagesTotal,
		MaxBufferedPagesPerConnection: DefaultMaxBufferedPagesPerConnection,
	}
}

type Option func(*Options)

func WithOfflineFile(path string) Option {
	return func(o *Options) {
		o.Live = false
		o.ReadName = path
	}
}

func WithLiveInterface(name string) Option {
	return func(o *Options) {
		o.Live = true
		o.ReadName = name
	}
}

func WithBPFFilter(filter string) Option {
	return func(o *Options) {
		o.BPFilter = filter
	}
}

func WithStreamFlushTimeout(seconds int64) Option {
	return func(o *Options) {
		o.StreamFlushTimeoutSeconds = seconds
	}
}

func WithStreamCloseTimeout(seconds int64) Option {
	return func(o *Options) {
		o.StreamCloseTimeoutSeconds = seconds
	}
}
