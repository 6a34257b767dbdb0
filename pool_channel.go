package mpd

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pior/mpd/internal/coarsetime"
)

// ErrPoolClosed is returned by Acquire after the pool was closed.
var ErrPoolClosed = errors.New("mpd: pool closed")

// NewChannelPool returns the default Pool: idle connections wait in a
// buffered channel of maxSize slots, and Acquire dials a new connection
// only while fewer than maxSize exist.
func NewChannelPool(constructor func(ctx context.Context) (*Connection, error), maxSize int32) (Pool, error) {
	if maxSize <= 0 {
		return nil, errors.New("mpd: pool max size must be positive")
	}
	return &channelPool{
		dial:  constructor,
		limit: maxSize,
		idle:  make(chan *pooledConn, maxSize),
		freed: make(chan struct{}),
	}, nil
}

// pooledConn is a Connection checked out of, or parked in, a channelPool.
type pooledConn struct {
	conn     *Connection
	owner    *channelPool
	born     time.Time
	lastUsed time.Time
}

func (pc *pooledConn) Value() *Connection { return pc.conn }

func (pc *pooledConn) Release() {
	pc.lastUsed = coarsetime.Now()
	pc.owner.park(pc)
}

// ReleaseUnused parks the connection without touching lastUsed, so a health
// check ping does not reset the idle clock.
func (pc *pooledConn) ReleaseUnused() { pc.owner.park(pc) }

func (pc *pooledConn) Destroy() {
	_ = pc.conn.Close()
	pc.owner.forget()
	pc.owner.stats.recordDestroy()
}

func (pc *pooledConn) CreationTime() time.Time { return pc.born }

func (pc *pooledConn) IdleDuration() time.Duration { return coarsetime.Since(pc.lastUsed) }

type channelPool struct {
	dial  func(ctx context.Context) (*Connection, error)
	limit int32

	mu     sync.Mutex
	idle   chan *pooledConn
	open   int32 // connections alive, parked or checked out
	closed bool

	// freed is closed and replaced each time a slot is given up, waking
	// every Acquire blocked in wait.
	freed chan struct{}

	stats poolStatsCollector
}

func (p *channelPool) Acquire(ctx context.Context) (Resource, error) {
	p.stats.recordAcquire()

	if pc, ok, err := p.takeIdle(); ok || err != nil {
		return p.acquired(pc, err)
	}
	return p.acquired(p.wait(ctx))
}

// acquired records the outcome of an Acquire.
func (p *channelPool) acquired(pc *pooledConn, err error) (Resource, error) {
	if err != nil {
		p.stats.recordAcquireError()
		return nil, err
	}
	return pc, nil
}

// takeIdle pops a parked connection without blocking.
func (p *channelPool) takeIdle() (*pooledConn, bool, error) {
	select {
	case pc, ok := <-p.idle:
		if !ok {
			return nil, false, ErrPoolClosed
		}
		p.stats.recordAcquireFromIdle()
		return pc, true, nil
	default:
		return nil, false, nil
	}
}

// reserve claims a slot for a new connection. When the pool is full it
// returns the channel closed on the next freed slot instead.
func (p *channelPool) reserve() (bool, <-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false, nil, ErrPoolClosed
	}
	if p.open >= p.limit {
		return false, p.freed, nil
	}
	p.open++
	return true, nil, nil
}

// grow dials a connection into a reserved slot.
func (p *channelPool) grow(ctx context.Context) (*pooledConn, error) {
	conn, err := p.dial(ctx)
	if err != nil {
		p.forget()
		return nil, err
	}
	p.stats.recordCreate()

	now := coarsetime.Now()
	return &pooledConn{conn: conn, owner: p, born: now, lastUsed: now}, nil
}

// wait dials into a free slot, or blocks until a connection is parked or
// a slot is freed by a destroyed connection, or ctx is done.
func (p *channelPool) wait(ctx context.Context) (*pooledConn, error) {
	var start time.Time

	for {
		reserved, freed, err := p.reserve()
		if err != nil {
			return nil, err
		}
		if reserved {
			if !start.IsZero() {
				p.stats.recordAcquireWait(time.Since(start))
			}
			return p.grow(ctx)
		}

		if start.IsZero() {
			start = time.Now()
		}

		select {
		case pc, ok := <-p.idle:
			if !ok {
				return nil, ErrPoolClosed
			}
			p.stats.recordAcquireWait(time.Since(start))
			p.stats.recordAcquireFromIdle()
			return pc, nil
		case <-freed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// park returns a connection to the idle channel, or closes it when the pool
// is closed. The send never blocks: open <= limit == cap(idle).
func (p *channelPool) park(pc *pooledConn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = pc.conn.Close()
		p.open--
		p.stats.recordDestroy()
		return
	}

	p.idle <- pc
	p.stats.recordRelease()
}

// forget gives up the slot of a destroyed or never dialed connection.
func (p *channelPool) forget() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open--
	close(p.freed)
	p.freed = make(chan struct{})
}

func (p *channelPool) AcquireAllIdle() []Resource {
	var drained []Resource
	for {
		pc, ok, err := p.takeIdle()
		if !ok || err != nil {
			return drained
		}
		drained = append(drained, pc)
	}
}

// Close closes the parked connections. Checked out connections are closed
// when they come back.
func (p *channelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	close(p.idle)
	for pc := range p.idle {
		_ = pc.conn.Close()
		p.open--
		p.stats.recordDestroyIdle()
	}
}

func (p *channelPool) Stats() PoolStats {
	return p.stats.snapshot()
}
