package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gymmi-app/gymmi/internal/client/client"
	"github.com/gymmi-app/gymmi/internal/client/config"
	"github.com/gymmi-app/gymmi/internal/client/credentials"
	"github.com/gymmi-app/gymmi/internal/client/reachability"
	"github.com/gymmi-app/gymmi/internal/client/services"
	"github.com/gymmi-app/gymmi/internal/filex"
	"github.com/gymmi-app/gymmi/internal/logging"
	"github.com/gymmi-app/gymmi/internal/netx"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	monitor     *reachability.Monitor
	metrics     prometheus.Gatherer
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	closers     []func() error
}

// NewApp wires logging, the token store, the HTTP stack, the auth service
// and the reachability monitor from c.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	store, err := a.openStore(ctx)
	if err != nil {
		log.Error(ctx, "error initializing token store", "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	hc, err := netx.NewHTTPClient(netx.Options{
		Timeout:            c.RequestTimeout,
		UserAgent:          c.UserAgent,
		InsecureSkipVerify: c.InsecureSkipVerify,
		Registerer:         reg,
		Logger:             log,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.APIPrefix, hc, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	probe, err := reachability.TCPProbe(c.ServerURL)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, store, c.LoginTimeout, log)
	a.monitor = reachability.NewMonitor(probe, c.OnlineCheckInterval, log)
	a.metrics = reg

	log.Debug(ctx, "client configured", "api", apiClient.BaseURL(), "in_memory_store", c.InMemoryStore)
	return a, nil
}

func (a *App) openStore(ctx context.Context) (credentials.Store, error) {
	if a.config.InMemoryStore {
		return credentials.NewMemoryStore(), nil
	}

	dir, err := filex.EnsureDataDir(a.config.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := credentials.InitDatabase(ctx, a.config.DatabasePath(dir))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	return credentials.NewSQLiteStore(db, a.config.StorePassphrase), nil
}

// Close releases the local database.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Run restores the previous session, starts the background watchers and
// blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		a.monitor.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.watchSession(ctx)
	}()

	fmt.Fprintln(a.out, "Welcome to Gymmi (type 'help' for commands)")

	if err := a.authService.RestoreSession(ctx); err != nil {
		a.log.Info(ctx, "previous session not restored", "error", err)
	}
	if u := a.authService.State().CurrentUser; u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.DisplayName())
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// watchSession logs session transitions as they are published.
func (a *App) watchSession(ctx context.Context) {
	ch, unsubscribe := a.authService.Subscribe()
	defer unsubscribe()

	for {
		select {
		case sn, ok := <-ch:
			if !ok {
				return
			}
			a.log.Debug(ctx, "session changed",
				"authenticated", sn.IsAuthenticated,
				"loading", sn.IsLoading,
				"field_errors", len(sn.FieldErrors))
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.State().IsAuthenticated
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.State().CurrentUser; u != nil {
		s = u.Email + " "
	}
	if a.monitor != nil {
		s += string(a.monitor.Status())
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
