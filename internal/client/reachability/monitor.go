// Package reachability watches whether the backend host can be reached.
// It is informational: nothing in the client waits on it.
package reachability

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gymmi-app/gymmi/internal/logging"
)

const (
	DefaultProbeTimeout = 3 * time.Second
	DefaultInterval     = 3 * time.Second
)

type Status string

const (
	StatusUnknown Status = "unknown"
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// Probe returns nil when the backend is reachable.
type Probe func(ctx context.Context) error

// TCPProbe dials the host of serverURL, defaulting the port from the scheme.
func TCPProbe(serverURL string) (Probe, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("no host in %q", serverURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	addr := net.JoinHostPort(u.Hostname(), port)

	return func(ctx context.Context) error {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}, nil
}

// Monitor runs a Probe on a ticker and remembers the last result.
type Monitor struct {
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.Mutex
	status Status
	subs   map[int]chan Status
	nextID int
}

// NewMonitor builds a monitor that runs probe every interval. A
// non-positive interval means DefaultInterval.
func NewMonitor(probe Probe, interval time.Duration, log logging.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Monitor{
		probe:    probe,
		interval: interval,
		timeout:  DefaultProbeTimeout,
		log:      log.With("component", "reachability"),
		status:   StatusUnknown,
		subs:     map[int]chan Status{},
	}
}

func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Monitor) Online() bool {
	return m.Status() == StatusOnline
}

// Subscribe returns a channel of status changes. Only the latest unread
// change is kept.
func (m *Monitor) Subscribe() (<-chan Status, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Status, 1)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// Run probes once immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check runs the probe once and records the result.
func (m *Monitor) Check(ctx context.Context) Status {
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.probe(pctx)
	cancel()

	next := StatusOnline
	if err != nil {
		next = StatusOffline
	}
	m.setStatus(ctx, next, err)
	return next
}

func (m *Monitor) setStatus(ctx context.Context, next Status, cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == next {
		return
	}
	m.status = next

	if next == StatusOnline {
		m.log.Info(ctx, "backend reachable")
	} else {
		m.log.Warn(ctx, "backend unreachable", "error", cause)
	}

	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
