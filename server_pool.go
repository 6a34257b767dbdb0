package mpd

import (
	"context"
	"log/slog"
	"time"

	"github.com/pior/mpd/proto"
	"github.com/sony/gobreaker/v2"
)

// NewServerPool creates the connection pool of one server.
// Connections are dialed lazily and authenticated when Config.Password is set.
func NewServerPool(addr string, config Config) (*ServerPool, error) {
	config = config.withDefaults()
	logger := config.Logger.With("server", addr)

	constructor := func(ctx context.Context) (*Connection, error) {
		conn, err := dialWith(ctx, config.Dialer, addr)
		if err != nil {
			return nil, err
		}
		if config.Password != "" {
			if err := conn.Password(config.Password); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		logger.Debug("connection created", "version", conn.Version())
		return conn, nil
	}

	pool, err := config.NewPool(constructor, config.MaxSize)
	if err != nil {
		return nil, err
	}

	sp := &ServerPool{
		addr:   addr,
		pool:   pool,
		logger: logger,
	}
	if config.NewCircuitBreaker != nil {
		sp.circuitBreaker = config.NewCircuitBreaker(addr)
	}
	return sp, nil
}

const healthCheckTimeout = time.Second

// ServerPool wraps a pool and a circuit breaker with its server address.
type ServerPool struct {
	addr           string
	pool           Pool
	circuitBreaker *CircuitBreaker // nil if not configured
	logger         *slog.Logger
}

func (sp *ServerPool) Address() string {
	return sp.addr
}

// ServerPoolStats contains stats for a single server pool
type ServerPoolStats struct {
	Addr                 string
	PoolStats            PoolStats
	CircuitBreakerState  gobreaker.State
	CircuitBreakerCounts gobreaker.Counts
}

func (sp *ServerPool) Stats() ServerPoolStats {
	stats := ServerPoolStats{
		Addr:      sp.addr,
		PoolStats: sp.pool.Stats(),
	}
	if sp.circuitBreaker != nil {
		stats.CircuitBreakerState = sp.circuitBreaker.State()
		stats.CircuitBreakerCounts = sp.circuitBreaker.Counts()
	}
	return stats
}

// Execute runs fn on a pooled connection, through the circuit breaker.
//
// The ctx deadline applies to the connection I/O. When fn returns, any
// response it left undrained is finished. The connection is destroyed when
// the error says so, released otherwise.
func (sp *ServerPool) Execute(ctx context.Context, fn func(conn *Connection) error) error {
	if sp.circuitBreaker == nil {
		return sp.execDirect(ctx, fn)
	}

	_, err := sp.circuitBreaker.Execute(func() (struct{}, error) {
		return struct{}{}, sp.execDirect(ctx, fn)
	})
	return err
}

func (sp *ServerPool) execDirect(ctx context.Context, fn func(conn *Connection) error) error {
	resource, err := sp.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	conn := resource.Value()

	deadline, _ := ctx.Deadline() // zero value clears a previous deadline
	if err := conn.SetDeadline(deadline); err != nil {
		sp.destroy(resource, err)
		return &proto.ConnectionError{Op: "set deadline", Err: err}
	}

	err = fn(conn)
	if err == nil || !proto.ShouldCloseConnection(err) {
		if finishErr := conn.ResponseFinish(); finishErr != nil && err == nil {
			err = finishErr
		}
	}

	if conn.IsClosed() || proto.ShouldCloseConnection(err) {
		sp.destroy(resource, err)
		return err
	}

	resource.Release()
	return err
}

func (sp *ServerPool) destroy(resource Resource, cause error) {
	sp.logger.Warn("destroying connection", "error", cause)
	resource.Destroy()
}

// checkIdle destroys idle connections past their lifetime or idle limit, or
// failing a ping, and puts the others back without touching their idle time.
func (sp *ServerPool) checkIdle(maxLifetime, maxIdleTime time.Duration) {
	now := time.Now()

	for _, res := range sp.pool.AcquireAllIdle() {
		if maxLifetime > 0 && now.Sub(res.CreationTime()) > maxLifetime {
			sp.logger.Debug("connection expired", "age", now.Sub(res.CreationTime()))
			res.Destroy()
			continue
		}

		if maxIdleTime > 0 && res.IdleDuration() > maxIdleTime {
			sp.logger.Debug("connection idle too long", "idle", res.IdleDuration())
			res.Destroy()
			continue
		}

		if err := ping(res.Value(), now.Add(healthCheckTimeout)); err != nil {
			sp.logger.Warn("health check failed", "error", err)
			res.Destroy()
			continue
		}

		res.ReleaseUnused()
	}
}

func ping(conn *Connection, deadline time.Time) error {
	if err := conn.SetDeadline(deadline); err != nil {
		return err
	}
	return conn.Ping()
}

func (sp *ServerPool) close() {
	sp.pool.Close()
}
