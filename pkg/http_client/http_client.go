package http_client

import (
	"net"
	"net/http"
	"time"
)

// CreateHTTPClient returns a client for outbound lookups. A zero timeout
// falls back to two seconds.
func CreateHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	tr := &http.Transport{
		MaxIdleConns:          4,
		MaxConnsPerHost:       4,
		IdleConnTimeout:       30 * time.Second,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}
