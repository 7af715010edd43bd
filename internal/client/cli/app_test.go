package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/kampanlabs/sawari/internal/client/profile"
	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/session"
	"github.com/kampanlabs/sawari/internal/logging"
)

func TestApp_Status(t *testing.T) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	store := &recordStore{records: map[string]*remote.ProfileRecord{"u-1": testRecord()}}
	id := &obsIdentity{}
	profiles := profile.NewController(store, logger)
	observer := session.NewObserver(id, profiles, logger)

	a := &App{logger: logger, observer: observer}

	if got := a.status(); got != "signed out" {
		t.Fatalf("status = %q", got)
	}

	if err := observer.Start(context.Background()); err != nil {
		t.Fatalf("observer start: %v", err)
	}
	id.notify(&remote.Identity{ID: "u-1", Email: "ram@example.com"})

	if got := a.status(); got != "ram@example.com" {
		t.Fatalf("status = %q", got)
	}
	if !a.isSignedIn() {
		t.Fatalf("isSignedIn = false")
	}

	id.notify(nil)
	if got := a.status(); got != "signed out" {
		t.Fatalf("status after sign-out = %q", got)
	}
}

func TestApp_SetModeAnnouncesTransitionsOnly(t *testing.T) {
	printed := capturePrintln(t)
	a := &App{Mode: ModeOffline}

	a.setMode(ModeOffline)
	if len(*printed) != 0 {
		t.Fatalf("no-op transition announced: %v", *printed)
	}

	a.setMode(ModeOnline)
	if a.Mode != ModeOnline {
		t.Fatalf("mode not switched")
	}
	if !containsLine(*printed, "Switched to online mode") {
		t.Fatalf("transition not announced: %v", *printed)
	}
}

// signalProbe reports online and signals each probe so the test can
// synchronize with the watcher goroutine.
type signalProbe struct{ ch chan struct{} }

func (p signalProbe) Online(context.Context) bool {
	select {
	case p.ch <- struct{}{}:
	default:
	}
	return true
}

func TestApp_OnlineStatusWatcher(t *testing.T) {
	capturePrintln(t)
	probed := make(chan struct{}, 1)
	a := &App{probe: signalProbe{ch: probed}, Mode: ModeOffline}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-probed:
	case <-time.After(time.Second):
		t.Fatalf("watcher never probed")
	}
	cancel()
	<-done

	if a.Mode != ModeOnline {
		t.Fatalf("mode = %q, want online", a.Mode)
	}
}
