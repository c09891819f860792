package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
)

// requestIDTransport stamps outgoing requests with an X-Request-Id so log
// lines can be correlated with the backend's.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get("X-Request-Id") == "" {
		r.Header.Set("X-Request-Id", uuid.NewString())
	}
	return t.next.RoundTrip(r)
}

// loggingTransport logs one structured record per outbound request.
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	lat := time.Since(start)
	if err != nil {
		obs.Logger.Error("backend_request_failed",
			"method", req.Method,
			"path", req.URL.Path,
			"latency_ms", float64(lat.Microseconds())/1000.0,
			"request_id", req.Header.Get("X-Request-Id"),
			"error", err,
		)
		return nil, err
	}
	obs.Logger.Info("backend_request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", float64(lat.Microseconds())/1000.0,
		"request_id", req.Header.Get("X-Request-Id"),
	)
	return resp, nil
}

// newTransport wraps base with request-ID stamping and logging.
func newTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &requestIDTransport{next: &loggingTransport{next: base}}
}
