package mpd

import (
	"context"
	"time"
)

// Resource is a pooled connection checked out of a Pool.
//
// Exactly one of Release, ReleaseUnused or Destroy must be called once the
// connection is no longer used.
type Resource interface {
	// Value returns the connection.
	Value() *Connection

	// Release returns the connection to the pool and marks it as used now.
	Release()

	// ReleaseUnused returns the connection without touching its idle time.
	ReleaseUnused()

	// Destroy closes the connection and removes it from the pool.
	Destroy()

	// CreationTime returns when the connection was created.
	CreationTime() time.Time

	// IdleDuration returns how long the connection has been idle.
	IdleDuration() time.Duration
}

// Pool is a pool of connections to a single server.
type Pool interface {
	// Acquire returns an idle connection, creates one if the pool is not full,
	// or waits for one to be released until ctx is done.
	Acquire(ctx context.Context) (Resource, error)

	// AcquireAllIdle checks out every idle connection, for health checks.
	AcquireAllIdle() []Resource

	// Close closes idle connections and stops handing out new ones.
	Close()

	// Stats returns a snapshot of pool statistics.
	Stats() PoolStats
}

// PoolFactory creates a Pool from a connection constructor.
type PoolFactory func(constructor func(ctx context.Context) (*Connection, error), maxSize int32) (Pool, error)
