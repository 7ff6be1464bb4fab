// Package i18n resolves message text keys to localized strings.
//
// The message layer treats localization as a collaborator: it asks for a
// key, and on a miss falls back to the raw string it was given. Lookup
// failure is therefore reported as a boolean, never as an error.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flashbar-dev/flashbar/internal/errors"
)

// Localizer resolves a text key with optional interpolation arguments.
// The boolean reports whether the key was resolvable; callers own the
// fallback behavior on a miss.
type Localizer interface {
	Localize(key string, args ...any) (string, bool)
}

// Catalog is a map-backed Localizer. Catalog entries are fmt format
// strings; interpolation arguments are applied with fmt.Sprintf.
type Catalog struct {
	entries map[string]string
}

// NewCatalog creates a catalog from the given entries.
func NewCatalog(entries map[string]string) *Catalog {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &Catalog{entries: entries}
}

// LoadCatalog reads a JSON catalog file mapping keys to format strings.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("F040").WithSubject(path).Wrap(err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.New("F040").WithSubject(path).Wrap(err)
	}
	return NewCatalog(entries), nil
}

// Localize implements Localizer.
func (c *Catalog) Localize(key string, args ...any) (string, bool) {
	format, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if len(args) == 0 {
		return format, true
	}
	return fmt.Sprintf(format, args...), true
}

// Set adds or replaces a catalog entry.
func (c *Catalog) Set(key, format string) {
	c.entries[key] = format
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }

// None is a Localizer that never resolves. Hosts without a catalog use it;
// every show call then falls back to the raw string.
var None Localizer = noneLocalizer{}

type noneLocalizer struct{}

func (noneLocalizer) Localize(string, ...any) (string, bool) { return "", false }
