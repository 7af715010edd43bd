package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/kampanlabs/sawari/internal/client/i18n"
	"github.com/kampanlabs/sawari/internal/client/location"
)

// Dashboard streams location fixes to the terminal until the user presses
// Enter. When location permission is denied a message is shown and the
// dashboard simply omits the location panel, mirroring the signed-in
// landing screen.
func (a *App) Dashboard(ctx context.Context) error {
	id := a.observer.Current()
	if id == nil {
		printlnFn("You are not signed in.")
		return nil
	}

	lang := a.language(ctx)

	printlnFn(fmt.Sprintf("--- %s ---", i18n.T(lang, "dashboard")))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	fixes, err := a.location.Watch(watchCtx)
	if err != nil {
		if errors.Is(err, location.ErrPermissionDenied) {
			printlnFn("Location permission denied. Location is unavailable.")
			return nil
		}
		return err
	}

	printlnFn(i18n.T(lang, "fetchingLocation"))
	printlnFn("Press Enter to stop.")

	// Reading from stdin in a goroutine lets Enter interrupt the stream.
	done := make(chan struct{})
	go func() {
		_, _ = a.reader.ReadString('\n')
		close(done)
	}()

	for {
		select {
		case fix, ok := <-fixes:
			if !ok {
				return nil
			}
			printlnFn(fmt.Sprintf("%s:", i18n.T(lang, "currentLocation")))
			printlnFn(fmt.Sprintf("  %s: %.6f", i18n.T(lang, "latitude"), fix.Latitude))
			printlnFn(fmt.Sprintf("  %s: %.6f", i18n.T(lang, "longitude"), fix.Longitude))
			printlnFn(fmt.Sprintf("  %s: %.1f m", i18n.T(lang, "accuracy"), fix.Accuracy))
			printlnFn(fmt.Sprintf("  %s: %.1f m", i18n.T(lang, "altitude"), fix.Altitude))

		case <-done:
			return nil

		case <-ctx.Done():
			return nil
		}
	}
}
