package settings

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage/mocks"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestOpenWithoutBlobUsesDefaults(t *testing.T) {
	s := Open(storage.NewMemoryStore(), logging.NewNop())
	if got := s.Get(); got != Defaults() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestOpenMergesOverDefaults(t *testing.T) {
	blobs := storage.NewMemoryStore()
	if err := blobs.Set(StorageKey, `{"currency":"USD","darkMode":true}`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got := Open(blobs, logging.NewNop()).Get()
	want := Settings{Currency: "USD", UnitSystem: "metric", Notifications: true, DarkMode: true, AutoSave: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOpenCorruptBlobFallsBackToDefaults(t *testing.T) {
	blobs := storage.NewMemoryStore()
	if err := blobs.Set(StorageKey, `{"currency":`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)

	s := Open(blobs, logging.FromZap(zap.New(core)))

	if s.Get() != Defaults() {
		t.Fatalf("got %+v, want defaults", s.Get())
	}
	if logs.Len() != 1 {
		t.Fatalf("expected a warning, got %d entries", logs.Len())
	}
}

func TestOpenWrongTypeFallsBackToDefaults(t *testing.T) {
	blobs := storage.NewMemoryStore()
	if err := blobs.Set(StorageKey, `{"currency":"EUR","notifications":"yes"}`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := Open(blobs, logging.NewNop()).Get(); got != Defaults() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestUpdateIsShallowMergeAndPersists(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := Open(blobs, logging.NewNop())

	got := s.Update(Patch{Currency: strPtr("EUR"), Notifications: boolPtr(false)})
	want := Settings{Currency: "EUR", UnitSystem: "metric", Notifications: false, DarkMode: false, AutoSave: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	got = s.Update(Patch{UnitSystem: strPtr("imperial")})
	want.UnitSystem = "imperial"
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if reopened := Open(blobs, logging.NewNop()).Get(); reopened != want {
		t.Fatalf("after restart got %+v, want %+v", reopened, want)
	}
}

func TestResetRestoresDefaultsAcrossRestart(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := Open(blobs, logging.NewNop())
	s.Update(Patch{
		Currency:      strPtr("ARS"),
		UnitSystem:    strPtr("imperial"),
		Notifications: boolPtr(false),
		DarkMode:      boolPtr(true),
		AutoSave:      boolPtr(false),
	})

	if got := s.Reset(); got != Defaults() {
		t.Fatalf("Reset returned %+v", got)
	}
	if _, ok, _ := blobs.Get(StorageKey); ok {
		t.Fatalf("expected the settings blob to be removed")
	}
	if got := Open(blobs, logging.NewNop()).Get(); got != Defaults() {
		t.Fatalf("after restart got %+v, want defaults", got)
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	blobs.EXPECT().Get(StorageKey).Return("", false, nil)
	blobs.EXPECT().Set(StorageKey, gomock.Any()).Return(errors.New("quota exceeded"))
	blobs.EXPECT().Remove(StorageKey).Return(nil)
	core, logs := observer.New(zap.ErrorLevel)

	s := Open(blobs, logging.FromZap(zap.New(core)))
	got := s.Update(Patch{DarkMode: boolPtr(true)})

	if !got.DarkMode || !s.Get().DarkMode {
		t.Fatalf("update must apply in memory")
	}
	if s.LastSaveSucceeded() {
		t.Fatalf("expected LastSaveSucceeded to be false")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}

	s.Reset()
	if !s.LastSaveSucceeded() {
		t.Fatalf("expected LastSaveSucceeded after reset")
	}
}
