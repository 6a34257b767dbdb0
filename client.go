package mpd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"
)

// DefaultMaxSize is the pool size used when Config.MaxSize is zero.
const DefaultMaxSize = 4

// ErrNoServers is returned by NewClient when Servers lists no address.
var ErrNoServers = errors.New("mpd: no servers provided")

// Config holds configuration for the MPD client connection pools.
type Config struct {
	// MaxSize is the maximum number of connections per server.
	// Zero means DefaultMaxSize.
	MaxSize int32

	// MaxConnLifetime is the maximum duration a connection can be reused.
	// Zero means no limit.
	MaxConnLifetime time.Duration

	// MaxConnIdleTime is the maximum duration a connection can be idle before being closed.
	// Zero means no limit.
	MaxConnIdleTime time.Duration

	// HealthCheckInterval is how often idle connections are pinged.
	// Zero disables health checks.
	HealthCheckInterval time.Duration

	// Dialer is the net.Dialer used to create new connections.
	// If nil, the default net.Dialer is used.
	Dialer *net.Dialer

	// Password is sent on every new connection when not empty.
	Password string

	// NewPool is the connection pool factory function.
	// If nil, NewChannelPool is used. NewPuddlePool is the alternative.
	NewPool PoolFactory

	// SelectServer picks which server owns an object URI.
	// If nil, DefaultServerSelector is used.
	SelectServer ServerSelector

	// NewCircuitBreaker creates a circuit breaker for a server.
	// Called once per server address when the pool is created.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func(serverAddr string) *CircuitBreaker

	// Logger receives connection lifecycle events.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.Dialer == nil {
		c.Dialer = &net.Dialer{}
	}
	if c.NewPool == nil {
		c.NewPool = NewChannelPool
	}
	if c.SelectServer == nil {
		c.SelectServer = DefaultServerSelector
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Client is a pooled MPD client, safe for concurrent use.
//
// Stickers of an object live on the server selected from its URI. Searches
// and listings ask every server and merge the answers.
type Client struct {
	servers Servers
	config  Config

	mu     sync.RWMutex
	pools  map[string]*ServerPool
	closed bool

	stopHealthCheck chan struct{}
	closeOnce       sync.Once

	stats clientStatsCollector
}

// NewClient creates a new MPD client with the given servers and configuration.
// For a single server, use: NewClient(NewStaticServers("host:6600"), config)
func NewClient(servers Servers, config Config) (*Client, error) {
	if len(servers.List()) == 0 {
		return nil, ErrNoServers
	}

	client := &Client{
		servers:         servers,
		config:          config.withDefaults(),
		pools:           make(map[string]*ServerPool),
		stopHealthCheck: make(chan struct{}),
	}

	if config.HealthCheckInterval > 0 {
		go client.healthCheckLoop()
	}

	return client, nil
}

// Close closes the client and destroys all idle connections in all pools.
// Calls made after Close fail with ErrPoolClosed.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.stopHealthCheck)

		c.mu.Lock()
		defer c.mu.Unlock()

		c.closed = true
		for _, sp := range c.pools {
			sp.close()
		}
	})
}

// poolFor returns the pool of the server owning uri.
func (c *Client) poolFor(uri string) (*ServerPool, error) {
	servers := c.servers.List()
	if len(servers) == 0 {
		return nil, ErrNoServers
	}
	return c.getOrCreatePool(servers[c.config.SelectServer(uri, len(servers))])
}

// allPools returns the pools of every server, in server list order.
func (c *Client) allPools() ([]*ServerPool, error) {
	servers := c.servers.List()
	if len(servers) == 0 {
		return nil, ErrNoServers
	}

	pools := make([]*ServerPool, 0, len(servers))
	for _, addr := range servers {
		sp, err := c.getOrCreatePool(addr)
		if err != nil {
			return nil, err
		}
		pools = append(pools, sp)
	}
	return pools, nil
}

func (c *Client) getOrCreatePool(addr string) (*ServerPool, error) {
	c.mu.RLock()
	sp, exists := c.pools[addr]
	c.mu.RUnlock()
	if exists {
		return sp, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrPoolClosed
	}
	if sp, exists := c.pools[addr]; exists {
		return sp, nil
	}

	sp, err := NewServerPool(addr, c.config)
	if err != nil {
		return nil, err
	}
	c.pools[addr] = sp
	return sp, nil
}

func (c *Client) healthCheckLoop() {
	ticker := time.NewTicker(c.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopHealthCheck:
			return
		case <-ticker.C:
			c.checkAllPools()
		}
	}
}

func (c *Client) checkAllPools() {
	c.mu.RLock()
	pools := make([]*ServerPool, 0, len(c.pools))
	for _, sp := range c.pools {
		pools = append(pools, sp)
	}
	c.mu.RUnlock()

	for _, sp := range pools {
		sp.checkIdle(c.config.MaxConnLifetime, c.config.MaxConnIdleTime)
	}
}

// fanOut runs fn on every server concurrently and returns the results in
// server list order. Errors are joined, each tagged with its server address.
func fanOut[T any](ctx context.Context, c *Client, fn func(conn *Connection) (T, error)) ([]T, error) {
	pools, err := c.allPools()
	if err != nil {
		return nil, err
	}

	results := make([]T, len(pools))
	errs := make([]error, len(pools))

	var wg sync.WaitGroup
	for i, sp := range pools {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := sp.Execute(ctx, func(conn *Connection) error {
				var err error
				results[i], err = fn(conn)
				return err
			})
			if err != nil {
				errs[i] = &ServerFailure{Addr: sp.Address(), Err: err}
			}
		}()
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// ServerFailure reports which server failed during a call sent to every server.
type ServerFailure struct {
	Addr string
	Err  error
}

func (e *ServerFailure) Error() string {
	return e.Addr + ": " + e.Err.Error()
}

func (e *ServerFailure) Unwrap() error {
	return e.Err
}

// Stats returns a snapshot of client statistics.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// AllPoolStats returns stats for all server pools created so far.
func (c *Client) AllPoolStats() []ServerPoolStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make([]ServerPoolStats, 0, len(c.pools))
	for _, sp := range c.pools {
		stats = append(stats, sp.Stats())
	}
	return stats
}
