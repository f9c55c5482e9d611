// Package bufpool hands out fixed-size byte buffers from a pre-allocated
// pool, one chunk per context-table slot. It is adapted from the teacher
// codebase's mempool.BufferPool, trimmed down: that pool grows a buffer
// across many chunks for arbitrarily large HTTP bodies, but a dissection
// context only ever needs exactly one BUFLEN-sized chunk for its lifetime,
// so the chunk-list/grow/Reader machinery is dropped and only the
// fixed-size allocate/release discipline survives.
package bufpool

import "github.com/pkg/errors"

// ErrEmpty is returned by Get when the pool has no free chunks left. This
// should not happen in normal operation: the pool is always sized to
// CTXMAX chunks for a table with room for CTXMAX contexts, and a chunk is
// only ever held by exactly one live context slot.
var ErrEmpty = errors.New("bufpool: pool exhausted")

// Pool is a fixed-size allocator of chunkSize-byte buffers. Up to capacity
// chunks may be outstanding at once.
type Pool struct {
	chunks    chan []byte
	chunkSize int
}

// New creates a pool of capacity chunks, each chunkSize bytes long.
func New(capacity, chunkSize int) (*Pool, error) {
	if chunkSize < 1 {
		return nil, errors.Errorf("bufpool: invalid chunkSize %d", chunkSize)
	}
	if capacity < 1 {
		return nil, errors.Errorf("bufpool: invalid capacity %d", capacity)
	}

	chunks := make(chan []byte, capacity)
	for i := 0; i < capacity; i++ {
		chunks <- make([]byte, chunkSize)
	}

	return &Pool{
		chunks:    chunks,
		chunkSize: chunkSize,
	}, nil
}

// ChunkSize reports the fixed size, in bytes, of every chunk handed out by
// this pool.
func (p *Pool) ChunkSize() int {
	return p.chunkSize
}

// Get obtains one zeroed chunk from the pool. Returns ErrEmpty if the pool
// is exhausted.
func (p *Pool) Get() ([]byte, error) {
	select {
	case chunk := <-p.chunks:
		for i := range chunk {
			chunk[i] = 0
		}
		return chunk, nil
	default:
		return nil, ErrEmpty
	}
}

// Put returns a chunk to the pool. The caller must not use chunk after
// calling Put. A chunk of the wrong size, or any chunk offered while the
// pool already holds capacity chunks, is silently dropped rather than
// corrupting the pool. Any other chunk of chunkSize bytes is accepted,
// whether or not it came from this pool.
func (p *Pool) Put(chunk []byte) {
	if len(chunk) != p.chunkSize {
		return
	}
	select {
	case p.chunks <- chunk:
	default:
		// Pool is already full; drop it rather than block or panic.
	}
}
