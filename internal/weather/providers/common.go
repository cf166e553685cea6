package providers

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/city-weather/internal/weather"
)

// DefaultTimeout bounds a single provider request when no HTTP client is supplied.
const DefaultTimeout = 10 * time.Second

var errUnexpectedType = errors.New("unexpected result type from circuit breaker")

// newCircuitBreaker tracks provider health. It opens after consecutive
// transport failures but is only reported, never used to refuse a request.
// Cancellations by the caller do not count against the provider.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("INFO: provider %s health changed from %s to %s", name, from, to)
		},
	})
}

// doRequest executes exactly one request. Any HTTP status is a completed
// exchange; only transport errors count as failures. While the breaker is
// open the request is still sent, outside the breaker's accounting.
func doRequest(cb *gobreaker.CircuitBreaker, send func() (*resty.Response, error)) (*resty.Response, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		resp, sendErr := send()
		if sendErr != nil {
			return nil, sendErr
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Printf("DEBUG: provider %s marked unhealthy (%s); sending anyway", cb.Name(), cb.State())
		return send()
	}
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return nil, errUnexpectedType
	}
	return resp, nil
}

// networkError classifies a transport failure for the user.
func networkError(err error) *weather.Error {
	msg := "Could not reach the weather provider."

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		msg = "The weather provider timed out."
	}
	return weather.NewError(weather.ErrNetwork, msg, err)
}
