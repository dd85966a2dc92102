// Package netx builds the HTTP client used to talk to the backend and
// classifies transport failures.
package netx

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/gymmi-app/gymmi/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "Gymmi/1.0"

	dialTimeout = 10 * time.Second
)

// Options configures NewHTTPClient. Zero values fall back to defaults.
type Options struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool

	// Registerer receives the request metrics. Nil disables them.
	Registerer prometheus.Registerer
	Logger     logging.Logger
}

// NewHTTPClient returns a client that keeps at most one connection per host,
// sets the default JSON headers and never serves responses from a cache.
func NewHTTPClient(opts Options) (*http.Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxConnsPerHost:       1,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   dialTimeout,
		ResponseHeaderTimeout: opts.Timeout,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	if opts.InsecureSkipVerify {
		// Accepts any server certificate. Development backends only.
		base.TLSClientConfig.InsecureSkipVerify = true
		opts.Logger.Warn(context.Background(), "TLS certificate verification is disabled")
	}

	var rt http.RoundTripper = &headerTransport{next: base, userAgent: opts.UserAgent}

	if opts.Registerer != nil {
		m, err := newMetrics(opts.Registerer)
		if err != nil {
			return nil, err
		}
		rt = &instrumentedTransport{next: rt, metrics: m}
	}

	rt = &loggingTransport{next: rt, log: opts.Logger}

	return &http.Client{Transport: rt, Timeout: opts.Timeout}, nil
}

// headerTransport fills in the default headers without overriding values
// the request already carries.
type headerTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	defaults := [][2]string{
		{"Accept", "application/json"},
		{"Content-Type", "application/json"},
		{"Connection", "keep-alive"},
		{"User-Agent", t.userAgent},
		{"Cache-Control", "no-cache"},
		{"Pragma", "no-cache"},
		{common.RequestIDHeaderName, uuid.NewString()},
	}
	for _, kv := range defaults {
		if req.Header.Get(kv[0]) == "" {
			req.Header.Set(kv[0], kv[1])
		}
	}

	return t.next.RoundTrip(req)
}

type loggingTransport struct {
	next http.RoundTripper
	log  logging.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	args := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"duration", time.Since(start),
	}
	if resp != nil && resp.Request != nil {
		args = append(args, "request_id", resp.Request.Header.Get(common.RequestIDHeaderName))
	}
	if err != nil {
		t.log.Debug(ctx, "request failed", append(args, "error", err)...)
		return nil, err
	}

	t.log.Debug(ctx, "request finished", append(args, "status", resp.StatusCode)...)
	return resp, nil
}

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gymmi",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Backend requests by method and status class.",
		}, []string{"method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gymmi",
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type instrumentedTransport struct {
	next    http.RoundTripper
	metrics *metrics
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := "error"
	if err == nil {
		status = StatusClass(resp.StatusCode)
	}

	t.metrics.requests.WithLabelValues(req.Method, status).Inc()
	t.metrics.latency.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())

	return resp, err
}

// StatusClass turns 404 into "4xx".
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
