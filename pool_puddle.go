package mpd

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jackc/puddle/v2"
)

// NewPuddlePool returns a Pool backed by github.com/jackc/puddle/v2.
//
// Unlike the channel pool, Close blocks until every checked out connection
// has been released or destroyed.
func NewPuddlePool(constructor func(ctx context.Context) (*Connection, error), maxSize int32) (Pool, error) {
	p := &puddlePool{}

	inner, err := puddle.NewPool(&puddle.Config[*Connection]{
		Constructor: func(ctx context.Context) (*Connection, error) {
			conn, err := constructor(ctx)
			if err != nil {
				return nil, err
			}
			p.dialed.Add(1)
			return conn, nil
		},
		Destructor: func(conn *Connection) {
			p.closed.Add(1)
			_ = conn.Close()
		},
		MaxSize: maxSize,
	})
	if err != nil {
		return nil, err
	}

	p.inner = inner
	return p, nil
}

type puddlePool struct {
	inner *puddle.Pool[*Connection]

	// puddle does not count constructions and destructions
	dialed atomic.Uint64
	closed atomic.Uint64
}

func (p *puddlePool) Acquire(ctx context.Context) (Resource, error) {
	res, err := p.inner.Acquire(ctx)
	switch {
	case errors.Is(err, puddle.ErrClosedPool):
		return nil, ErrPoolClosed
	case err != nil:
		return nil, err
	}
	return res, nil
}

func (p *puddlePool) AcquireAllIdle() []Resource {
	var drained []Resource
	for _, res := range p.inner.AcquireAllIdle() {
		drained = append(drained, res)
	}
	return drained
}

func (p *puddlePool) Close() {
	p.inner.Close()
}

func (p *puddlePool) Stats() PoolStats {
	stat := p.inner.Stat()

	return PoolStats{
		AcquireCount:      uint64(stat.AcquireCount()),
		AcquireWaitCount:  uint64(stat.EmptyAcquireCount()),
		AcquireWaitTimeNs: uint64(stat.EmptyAcquireWaitTime()),
		AcquireErrors:     uint64(stat.CanceledAcquireCount()),
		CreatedConns:      p.dialed.Load(),
		DestroyedConns:    p.closed.Load(),
		TotalConns:        stat.TotalResources(),
		IdleConns:         stat.IdleResources(),
		ActiveConns:       stat.AcquiredResources(),
	}
}
