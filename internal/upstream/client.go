// Package upstream performs the single outbound call to the third-party
// endpoint. The client always passes through the shared throttle gate
// first, issues one HTTP POST with the fixed form/header shape, and
// surfaces any failure as a typed *Error. There are no retries at this
// layer: the upstream is rate-sensitive and a failed call is reported
// immediately to the orchestrator.
package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/simdex/go-lookup-gateway/internal/domain"
	"github.com/simdex/go-lookup-gateway/internal/throttle"
)

const (
	// formField is the fixed form field carrying the normalized query.
	formField = "search_query"
	// userAgent mirrors a desktop browser; the upstream form rejects
	// obviously robotic agents.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// maxBodyBytes caps how much upstream HTML is read into memory.
	maxBodyBytes = 4 << 20
)

var (
	upstreamReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream fetch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	upstreamLat = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream fetches in seconds, including throttle wait.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(upstreamReqs, upstreamLat)
}

// ErrorKind classifies upstream failures.
type ErrorKind string

const (
	KindNetwork   ErrorKind = "network"
	KindTimeout   ErrorKind = "timeout"
	KindBadStatus ErrorKind = "bad_status"
)

// Error is the typed failure returned by Fetch.
type Error struct {
	Kind   ErrorKind
	Status int // HTTP status for KindBadStatus, zero otherwise
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadStatus:
		return "upstream returned status " + http.StatusText(e.Status)
	case KindTimeout:
		return "upstream timed out"
	default:
		if e.Err != nil {
			return "upstream unreachable: " + e.Err.Error()
		}
		return "upstream unreachable"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client fetches raw HTML for a classified query from the configured
// endpoint. Safe for concurrent use.
type Client struct {
	endpoint string
	referer  string
	gate     throttle.Gate
	httpc    *http.Client
}

// NewClient builds a Client for baseURL+path with the given request timeout.
// Every Fetch passes through gate before touching the network.
func NewClient(baseURL, path string, timeout time.Duration, gate throttle.Gate) *Client {
	base := strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: base + path,
		referer:  base + "/",
		gate:     gate,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// Fetch posts the normalized query value to the upstream form and returns
// the response body. Network failure, timeout, and non-2xx statuses are
// returned as *Error; the body is never parsed here.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (string, error) {
	if err := c.gate.Acquire(ctx); err != nil {
		return "", &Error{Kind: KindNetwork, Err: err}
	}

	start := time.Now()
	body, err := c.post(ctx, q.Value)
	upstreamLat.Observe(time.Since(start).Seconds())
	if err != nil {
		var ue *Error
		if errors.As(err, &ue) {
			upstreamReqs.WithLabelValues(string(ue.Kind)).Inc()
		}
		return "", err
	}
	upstreamReqs.WithLabelValues("ok").Inc()
	return body, nil
}

func (c *Client) post(ctx context.Context, value string) (string, error) {
	form := url.Values{formField: {value}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.referer)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &Error{Kind: classifyNetErr(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Kind: KindBadStatus, Status: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Err: err}
	}
	return string(b), nil
}

// classifyNetErr separates timeouts from other transport failures.
func classifyNetErr(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
