package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kampanlabs/sawari/internal/client/i18n"
	"github.com/kampanlabs/sawari/internal/client/prefs"
	"github.com/kampanlabs/sawari/internal/client/profile"
)

// Profile prints the signed-in user's profile record.
func (a *App) Profile(ctx context.Context) error {
	id := a.observer.Current()
	if id == nil {
		printlnFn("You are not signed in.")
		return nil
	}

	lang := a.language(ctx)

	rec := a.profiles.Cached(id.ID)
	if rec == nil {
		printlnFn(i18n.T(lang, "loadingUserInfo"))
		loaded, err := a.profiles.Load(ctx, id)
		if err != nil {
			a.logger.Warn(ctx, "profile load failed", "error", err)
			printlnFn("Could not load your profile. Please try again.")
			return nil
		}
		rec = loaded
	}

	printlnFn(fmt.Sprintf("--- %s ---", i18n.T(lang, "profile")))
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "name"), rec.Name))
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "email"), rec.Email))

	if rec.DateOfBirth != nil && !rec.DateOfBirth.IsZero() {
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "dateOfBirth"), rec.DateOfBirth.Format("2006-01-02")))
	} else {
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "dateOfBirth"), i18n.T(lang, "notSet")))
	}

	if age, ok := profile.Age(rec, time.Now()); ok {
		printlnFn(fmt.Sprintf("%s: %d %s", i18n.T(lang, "age"), age, i18n.T(lang, "years")))
	} else {
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "age"), i18n.T(lang, "notSet")))
	}

	if rec.City != "" {
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "city"), rec.City))
	} else {
		printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "city"), i18n.T(lang, "notSet")))
	}

	verified := i18n.T(lang, "no")
	if rec.EmailVerified {
		verified = i18n.T(lang, "yes")
	}
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "emailVerified"), verified))
	printlnFn(fmt.Sprintf("%s: %s", i18n.T(lang, "memberSince"), rec.CreatedAt.Format("2006-01-02")))

	if rec.Profile.PhotoURL != nil {
		printlnFn(fmt.Sprintf("Photo: %s", *rec.Profile.PhotoURL))
	}
	return nil
}

// EditProfile prompts for new values field by field. Empty input keeps the
// current value. Only the changed fields are sent to the backend.
func (a *App) EditProfile(ctx context.Context) error {
	id := a.observer.Current()
	if id == nil {
		printlnFn("You are not signed in.")
		return nil
	}

	rec := a.profiles.Cached(id.ID)
	if rec == nil {
		loaded, err := a.profiles.Load(ctx, id)
		if err != nil {
			a.logger.Warn(ctx, "profile load failed", "error", err)
			printlnFn("Could not load your profile. Please try again.")
			return nil
		}
		rec = loaded
	}

	var ch profile.Changes

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s] (blank to keep)", rec.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" && name != rec.Name {
		ch.Name = &name
	}

	current := "not set"
	if rec.DateOfBirth != nil && !rec.DateOfBirth.IsZero() {
		current = rec.DateOfBirth.Format("2006-01-02")
	}
	dobText, err := getSimpleText(a.reader, fmt.Sprintf("Date of birth (YYYY-MM-DD) [%s] (blank to keep)", current), os.Stdout)
	if err != nil {
		return err
	}
	if dobText != "" {
		dob, perr := time.Parse("2006-01-02", dobText)
		if perr != nil {
			printlnFn("Invalid date, expected YYYY-MM-DD. Field left unchanged.")
		} else {
			ch.DateOfBirth = &dob
		}
	}

	cityText, err := getSimpleText(a.reader, fmt.Sprintf("City [%s] (blank to keep)", rec.City), os.Stdout)
	if err != nil {
		return err
	}
	if cityText != "" && cityText != rec.City {
		ch.City = &cityText
	}

	if ch.Name == nil && ch.DateOfBirth == nil && ch.City == nil {
		printlnFn("Nothing to update.")
		return nil
	}

	if err := a.profiles.Update(ctx, id.ID, ch); err != nil {
		a.logger.Warn(ctx, "profile update failed", "error", err)
		printlnFn("Could not save your changes. Please try again.")
		return nil
	}
	printlnFn("Profile updated.")
	return nil
}

// UploadAvatar reads an image file from disk and uploads it as the
// profile photo.
func (a *App) UploadAvatar(ctx context.Context) error {
	id := a.observer.Current()
	if id == nil {
		printlnFn("You are not signed in.")
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn(fmt.Sprintf("Could not read file: %v", err))
		return nil
	}

	url, err := a.profiles.UploadAvatar(ctx, id.ID, contentTypeForFile(path), data)
	if err != nil {
		a.logger.Warn(ctx, "avatar upload failed", "error", err)
		printlnFn("Could not upload the photo. Please try again.")
		return nil
	}
	printlnFn(fmt.Sprintf("Photo uploaded: %s", url))
	return nil
}

func contentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func (a *App) language(ctx context.Context) prefs.Language {
	lang, err := a.settings.Language(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading language preference failed", "error", err)
		return prefs.LanguageEnglish
	}
	return lang
}
