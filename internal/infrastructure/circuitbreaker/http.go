package circuitbreaker

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var errServerStatus = errors.New("upstream server error")

// HTTPClient wraps an HTTP client with circuit breaker protection.
type HTTPClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewHTTPClient creates a new HTTP client with an optional breaker. A nil
// breaker sends every request straight through.
func NewHTTPClient(client *http.Client, breaker *gobreaker.CircuitBreaker, log *zap.Logger) *HTTPClient {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPClient{
		client:  client,
		breaker: breaker,
		log:     log,
	}
}

// Do executes req. Transport errors and 5xx responses count as breaker
// failures, but a 5xx response is still handed back so the caller can read
// the upstream error body.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.client.Do(req)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode)
		}
		return resp, nil
	})

	if err != nil {
		if errors.Is(err, errServerStatus) {
			return result.(*http.Response), nil
		}
		if IsOpen(err) {
			c.log.Warn("Circuit breaker open, request blocked",
				zap.String("url", req.URL.String()),
				zap.String("breaker", c.breaker.Name()),
			)
		}
		return nil, err
	}

	return result.(*http.Response), nil
}
