// Package prefs persists device-local preferences (theme, language) in a
// small SQLite store. Account-level settings such as notifications and
// privacy live in the profile record instead.
package prefs

import (
	"context"
	"errors"
)

// Repository is a string key-value store for preferences.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Theme selects the UI palette. Dark and auto are stored but the presentation
// currently renders everything with the light palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Language selects the CLI string table.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageNepali  Language = "ne"
)

const (
	keyTheme    = "theme"
	keyLanguage = "language"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidLanguage = errors.New("invalid language")
)

// Settings exposes typed accessors over the raw repository.
type Settings struct {
	repo Repository
}

func NewSettings(repo Repository) *Settings {
	return &Settings{repo: repo}
}

// Theme returns the stored theme, defaulting to light.
func (s *Settings) Theme(ctx context.Context) (Theme, error) {
	v, err := s.repo.Get(ctx, keyTheme)
	if err != nil {
		return "", err
	}
	switch Theme(v) {
	case ThemeLight, ThemeDark, ThemeAuto:
		return Theme(v), nil
	default:
		return ThemeLight, nil
	}
}

func (s *Settings) SetTheme(ctx context.Context, t Theme) error {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return s.repo.Set(ctx, keyTheme, string(t))
	default:
		return ErrInvalidTheme
	}
}

// Language returns the stored language, defaulting to English.
func (s *Settings) Language(ctx context.Context) (Language, error) {
	v, err := s.repo.Get(ctx, keyLanguage)
	if err != nil {
		return "", err
	}
	switch Language(v) {
	case LanguageEnglish, LanguageNepali:
		return Language(v), nil
	default:
		return LanguageEnglish, nil
	}
}

func (s *Settings) SetLanguage(ctx context.Context, l Language) error {
	switch l {
	case LanguageEnglish, LanguageNepali:
		return s.repo.Set(ctx, keyLanguage, string(l))
	default:
		return ErrInvalidLanguage
	}
}
