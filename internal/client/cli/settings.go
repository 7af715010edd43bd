package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kampanlabs/sawari/internal/client/i18n"
	"github.com/kampanlabs/sawari/internal/client/prefs"
	"github.com/kampanlabs/sawari/internal/client/profile"
)

// Settings shows current settings and lets the user change them one at a
// time. Theme and language are stored on the device; notifications and
// privacy are part of the profile record.
func (a *App) Settings(ctx context.Context) error {
	id := a.observer.Current()
	if id == nil {
		printlnFn("You are not signed in.")
		return nil
	}

	lang := a.language(ctx)

	theme, err := a.settings.Theme(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading theme preference failed", "error", err)
		theme = prefs.ThemeLight
	}

	rec := a.profiles.Cached(id.ID)

	printlnFn(fmt.Sprintf("--- %s ---", i18n.T(lang, "settings")))
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "theme"), theme))
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "language"), lang))
	if rec != nil {
		notif := i18n.T(lang, "no")
		if rec.Settings.Notifications {
			notif = i18n.T(lang, "yes")
		}
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "notifications"), notif))
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "privacy"), rec.Settings.Privacy))
	}

	choice, err := getSimpleText(a.reader, "Change (theme/language/notifications/privacy, blank to go back)", os.Stdout)
	if err != nil {
		return err
	}

	switch strings.ToLower(choice) {
	case "":
		return nil

	case "theme":
		v, err := getSimpleText(a.reader, "Theme (light/dark/auto)", os.Stdout)
		if err != nil {
			return err
		}
		if err := a.settings.SetTheme(ctx, prefs.Theme(v)); err != nil {
			printlnFn(fmt.Sprintf("Could not save theme: %v", err))
			return nil
		}
		printlnFn("Theme saved.")

	case "language":
		v, err := getSimpleText(a.reader, "Language (en/ne)", os.Stdout)
		if err != nil {
			return err
		}
		if err := a.settings.SetLanguage(ctx, prefs.Language(v)); err != nil {
			printlnFn(fmt.Sprintf("Could not save language: %v", err))
			return nil
		}
		printlnFn("Language saved.")

	case "notifications":
		v, err := getSimpleText(a.reader, "Notifications (on/off)", os.Stdout)
		if err != nil {
			return err
		}
		enabled := strings.EqualFold(v, "on") || strings.EqualFold(v, "yes")
		if err := a.profiles.Update(ctx, id.ID, profile.Changes{Notifications: &enabled}); err != nil {
			a.logger.Warn(ctx, "settings update failed", "error", err)
			printlnFn("Could not save your changes. Please try again.")
			return nil
		}
		printlnFn("Notifications saved.")

	case "privacy":
		v, err := getSimpleText(a.reader, "Privacy (public/private)", os.Stdout)
		if err != nil {
			return err
		}
		if v != "public" && v != "private" {
			printlnFn("Privacy must be public or private.")
			return nil
		}
		if err := a.profiles.Update(ctx, id.ID, profile.Changes{Privacy: &v}); err != nil {
			a.logger.Warn(ctx, "settings update failed", "error", err)
			printlnFn("Could not save your changes. Please try again.")
			return nil
		}
		printlnFn("Privacy saved.")

	default:
		printlnFn("Unknown setting:", choice)
	}
	return nil
}
