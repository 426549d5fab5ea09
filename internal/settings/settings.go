// Package settings persists the user's display preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage"
)

// StorageKey is the blob key the settings are persisted under.
const StorageKey = "obracalc-settings"

// Settings is the preferences record. DarkMode and AutoSave are stored and
// reported but nothing acts on them.
type Settings struct {
	Currency      string `json:"currency"`
	UnitSystem    string `json:"unitSystem"`
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	AutoSave      bool   `json:"autoSave"`
}

func Defaults() Settings {
	return Settings{
		Currency:      "BRL",
		UnitSystem:    "metric",
		Notifications: true,
		DarkMode:      false,
		AutoSave:      true,
	}
}

// Patch holds the fields to change; nil fields are left untouched.
type Patch struct {
	Currency      *string `json:"currency,omitempty"`
	UnitSystem    *string `json:"unitSystem,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
	AutoSave      *bool   `json:"autoSave,omitempty"`
}

func (p Patch) apply(s Settings) Settings {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.UnitSystem != nil {
		s.UnitSystem = *p.UnitSystem
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
	return s
}

// Store holds the current settings and writes every change through to the
// blob store. It is not safe for concurrent use.
type Store struct {
	blobs    storage.BlobStore
	log      *logging.Logger
	current  Settings
	lastSave bool
}

// Open loads the stored settings merged over Defaults. Fields missing from
// the blob keep their default; an unreadable blob yields Defaults.
func Open(blobs storage.BlobStore, log *logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Store{
		blobs:    blobs,
		log:      log.With("component", "settings", "key", StorageKey),
		current:  Defaults(),
		lastSave: true,
	}
	loaded, err := s.read()
	if err != nil {
		s.log.Warn("discarding unreadable settings", "error", err)
		return s
	}
	s.current = loaded
	return s
}

func (s *Store) read() (Settings, error) {
	out := Defaults()
	raw, ok, err := s.blobs.Get(StorageKey)
	if err != nil {
		return out, fmt.Errorf("read blob: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Defaults(), fmt.Errorf("decode blob: %w", err)
	}
	return out, nil
}

func (s *Store) persist() {
	data, err := json.Marshal(s.current)
	if err == nil {
		err = s.blobs.Set(StorageKey, string(data))
	}
	if err != nil {
		s.log.Error("failed to persist settings", "error", err)
		s.lastSave = false
		return
	}
	s.lastSave = true
}

func (s *Store) Get() Settings {
	return s.current
}

// Update merges p over the current settings and returns the result.
func (s *Store) Update(p Patch) Settings {
	s.current = p.apply(s.current)
	s.persist()
	return s.current
}

// Reset restores Defaults and removes the stored blob.
func (s *Store) Reset() Settings {
	s.current = Defaults()
	if err := s.blobs.Remove(StorageKey); err != nil {
		s.log.Error("failed to remove settings", "error", err)
		s.lastSave = false
		return s.current
	}
	s.lastSave = true
	return s.current
}

// LastSaveSucceeded reports whether the most recent write reached the blob store.
func (s *Store) LastSaveSucceeded() bool {
	return s.lastSave
}
