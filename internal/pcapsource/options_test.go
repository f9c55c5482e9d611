package pcapsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithOfflineFileSetsLiveFalse(t *testing.T) {
	opts := NewOptions()
	WithLiveInterface("eth0")(&opts)
	WithOfflineFile("capture.pcap")(&opts)

	assert.False(t, opts.Live)
	assert.Equal(t, "capture.pcap", opts.ReadName)
}

func TestWithLiveInterfaceSetsLiveTrue(t *testing.T) {
	opts := NewOptions()
	WithLiveInterface("eth0")(&opts)

	assert.True(t, opts.Live)
	assert.Equal(t, "eth0", opts.ReadName)
}

func TestDefaultOptionsMatchDocumentedValues(t *testing.T) {
	opts := NewOptions()

	assert.Equal(t, DefaultStreamFlushTimeoutSeconds, opts.StreamFlushTimeoutSeconds)
	assert.Equal(t, DefaultStreamCloseTimeoutSeconds, opts.StreamCloseTimeoutSeconds)
	assert.Equal(t, DefaultMaxBufferedPagesTotal, opts.MaxBufferedPagesTotal)
	assert.Equal(t, DefaultMaxBufferedPagesPerConnection, opts.MaxBufferedPagesPerConnection)
}
