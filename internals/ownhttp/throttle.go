package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// throttleTransport delays requests so they never exceed the rate of limiter
type throttleTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// a cancelled request gives up its place
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

// newThrottleTransport limits next to rps requests per second. rps <= 0 disables the limit
func newThrottleTransport(next http.RoundTripper, rps float64, burst int) *throttleTransport {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &throttleTransport{next: next, limiter: rate.NewLimiter(limit, burst)}
}
