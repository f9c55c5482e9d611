package dnp3

import (
	"container/list"
	"log/slog"

	"github.com/dnp3kit/dissect/internal/bufpool"
	"github.com/dnp3kit/dissect/slices"
)

// AddrPair is a (source, destination) address pair, as tracked by one
// context table slot.
type AddrPair struct {
	Source, Destination uint16
}

// Table is the bounded, LRU-reclaiming per-(source,destination) context
// table. It holds at most capacity contexts at once; looking up a new
// address pair once the table is full reclaims the least-recently-used
// slot rather than growing.
type Table struct {
	capacity int

	pool *bufpool.Pool
	list *list.List // front = most recently used
	byAddr map[AddrPair]*list.Element

	logger *slog.Logger
}

// NewTable creates a context table holding at most capacity contexts, each
// with a raw-buffer accumulator of bufLen bytes.
func NewTable(capacity, bufLen int, logger *slog.Logger) (*Table, error) {
	pool, err := bufpool.New(capacity, bufLen)
	if err != nil {
		return nil, err
	}

	return &Table{
		capacity: capacity,
		pool:     pool,
		list:     list.New(),
		byAddr:   make(map[AddrPair]*list.Element, capacity),
		logger:   logger,
	}, nil
}

// Lookup returns the context for (src, dst), creating one if the table has
// free capacity, or reclaiming the least-recently-used context otherwise.
// A non-empty reclaimed context's dropped byte count is logged: its raw
// buffer held bytes no transport segment had yet been fully reassembled
// from, and those bytes are now unrecoverable.
func (t *Table) Lookup(src, dst uint16) (*Context, error) {
	key := AddrPair{src, dst}

	if elem, ok := t.byAddr[key]; ok {
		t.list.MoveToFront(elem)
		return elem.Value.(*Context), nil
	}

	if t.list.Len() < t.capacity {
		buf, err := t.pool.Get()
		if err != nil {
			return nil, err
		}
		ctx := newContext(src, dst, buf)
		elem := t.list.PushFront(ctx)
		ctx.elem = elem
		t.byAddr[key] = elem
		return ctx, nil
	}

	tail := t.list.Back()
	ctx := tail.Value.(*Context)
	oldKey := AddrPair{ctx.src, ctx.dst}

	if ctx.n > 0 {
		t.logger.Warn("context table overflow: reclaiming context with unconsumed bytes",
			"old_source", oldKey.Source, "old_destination", oldKey.Destination,
			"dropped_bytes", ctx.n,
			"new_source", src, "new_destination", dst)
	}

	delete(t.byAddr, oldKey)
	ctx.reset(src, dst)
	t.list.MoveToFront(tail)
	t.byAddr[key] = tail

	return ctx, nil
}

// Len reports the number of contexts currently tracked.
func (t *Table) Len() int {
	return t.list.Len()
}

// Snapshot returns the address pairs of every tracked context, most
// recently used first.
func (t *Table) Snapshot() []AddrPair {
	ctxs := make([]*Context, 0, t.list.Len())
	for e := t.list.Front(); e != nil; e = e.Next() {
		ctxs = append(ctxs, e.Value.(*Context))
	}
	return slices.Map(ctxs, func(c *Context) AddrPair {
		return AddrPair{c.src, c.dst}
	})
}

// SnapshotOldestFirst is Snapshot in the opposite order: least recently used
// first. Used for display, where "what's about to be reclaimed" is usually
// more interesting to read first than "what's freshest".
func (t *Table) SnapshotOldestFirst() []AddrPair {
	return slices.Reverse(t.Snapshot())
}
