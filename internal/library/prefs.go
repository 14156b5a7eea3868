// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"

	"github.com/pdiddy/research-hub/internal/mirror"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences reads and writes user settings kept alongside the library.
// Login is a stub flag: nothing is verified.
type Preferences struct {
	mirror mirror.Mirror
}

// NewPreferences returns Preferences backed by m.
func NewPreferences(m mirror.Mirror) *Preferences {
	return &Preferences{mirror: m}
}

// Theme returns the stored theme. Anything other than "light" is dark.
func (p *Preferences) Theme() (string, error) {
	v, _, err := p.mirror.Get(KeyTheme)
	if err != nil {
		return ThemeDark, fmt.Errorf("reading theme: %w", err)
	}
	if v == ThemeLight {
		return ThemeLight, nil
	}
	return ThemeDark, nil
}

// SetTheme stores theme, which must be "dark" or "light".
func (p *Preferences) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unsupported theme %q: use dark or light", theme)
	}
	return p.mirror.Set(KeyTheme, theme)
}

// Authenticated reports whether the login flag is set.
func (p *Preferences) Authenticated() (bool, error) {
	v, _, err := p.mirror.Get(KeyAuth)
	if err != nil {
		return false, fmt.Errorf("reading login flag: %w", err)
	}
	return v == "true", nil
}

// Login sets the login flag.
func (p *Preferences) Login() error {
	return p.mirror.Set(KeyAuth, "true")
}

// Logout clears the login flag.
func (p *Preferences) Logout() error {
	return p.mirror.Remove(KeyAuth)
}
