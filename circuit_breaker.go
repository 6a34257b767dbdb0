package mpd

import (
	"time"

	"github.com/pior/mpd/proto"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards the requests sent to one server.
type CircuitBreaker = gobreaker.CircuitBreaker[struct{}]

// NewCircuitBreakerConfig returns a function that creates a circuit breaker per server.
//
// Only failures that break the connection count against the server: an ACK
// answer or a rejected argument is a successful round trip.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *CircuitBreaker {
	return func(serverAddr string) *CircuitBreaker {
		return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: isServerHealthy,
		})
	}
}

func isServerHealthy(err error) bool {
	return err == nil || !proto.ShouldCloseConnection(err)
}
