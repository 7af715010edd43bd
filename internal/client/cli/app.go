// Package cli implements the interactive terminal client: a small REPL over
// the auth workflows, profile editing, settings and the dashboard.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/kampanlabs/sawari/internal/client/config"
	"github.com/kampanlabs/sawari/internal/client/flows"
	"github.com/kampanlabs/sawari/internal/client/location"
	"github.com/kampanlabs/sawari/internal/client/prefs"
	"github.com/kampanlabs/sawari/internal/client/profile"
	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/session"
	"github.com/kampanlabs/sawari/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	identity remote.IdentityService
	probe    remote.ConnectivityProbe
	flows    *flows.Flows
	profiles *profile.Controller
	observer *session.Observer
	settings *prefs.Settings
	location location.Provider

	prefsDB *sql.DB
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr)

	prefsRepo, prefsDB, err := prefs.InitDatabase(ctx, c.PrefsDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing preferences database: %w", err)
	}

	identity := remote.NewHTTPIdentityService(c.ServerBaseURL)
	profiles := profile.NewController(remote.NewHTTPProfileStore(identity), logger)
	probe := remote.NewHTTPProbe(c.ServerBaseURL)

	app := &App{
		config:   c,
		logger:   logger,
		identity: identity,
		probe:    probe,
		flows:    flows.New(identity, remote.NewHTTPProfileStore(identity), probe, logger),
		profiles: profiles,
		observer: session.NewObserver(identity, profiles, logger),
		settings: prefs.NewSettings(prefsRepo),
		location: location.NewSimProvider(),
		prefsDB:  prefsDB,
		reader:   bufio.NewReader(os.Stdin),
	}
	return app, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) isSignedIn() bool {
	return a.observer.SignedIn()
}

// Run starts the session observer, the connectivity watcher and the REPL.
// It returns when the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.observer.Start(ctx); err != nil {
		return err
	}
	defer a.observer.Stop()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) Close() {
	if a.prefsDB != nil {
		_ = a.prefsDB.Close()
	}
}

func (a *App) status() string {
	if id := a.observer.Current(); id != nil {
		return id.Email
	}
	return "signed out"
}

// StartOnlineStatusWatcher probes backend reachability on the configured
// interval and flips Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			online := a.probe.Online(probeCtx)
			cancel()

			if online {
				a.setMode(ModeOnline)
			} else {
				a.setMode(ModeOffline)
			}

		case <-ctx.Done():
			return
		}
	}
}
