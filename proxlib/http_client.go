package proxlib

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// HTTPClient is an interface of http.Client. All network access in this
// package goes through it so tests can substitute their own transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if err := h.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", h.userAgent)

	return h.client.Do(req)
}

// NewHTTPClient wraps a given HTTP client with a rate limiter and sets
// a user agent on every outgoing request. Both the proxy list feed and
// the geolocation services are public endpoints which dislike anonymous
// hammering, so every consumer of this package shares one limiter.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimiterInterval), rateLimitBurst),
	}
}
