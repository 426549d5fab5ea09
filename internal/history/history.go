// Package history keeps named, timestamped snapshots of budgets and persists
// them as a single JSON blob.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage"
)

const (
	// StorageKey is the blob key the history is persisted under.
	StorageKey = "obracalc-budget-history"
	// MaxItems is the default number of entries retained.
	MaxItems = 50
	// CopySuffix is appended to the name of a duplicated entry.
	CopySuffix = " (Cópia)"
)

var ErrNotFound = errors.New("budget not found")

// SavedBudget is one history entry. Items is owned by the entry; every value
// handed out by the Store is a deep copy.
type SavedBudget struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Items       []estimate.CalculationItem `json:"items"`
	TotalBudget float64                    `json:"totalBudget"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
	ItemCount   int                        `json:"itemCount"`
}

func (b SavedBudget) clone() SavedBudget {
	out := b
	out.Items = estimate.CloneItems(b.Items)
	return out
}

// Stats summarizes the whole history.
type Stats struct {
	Count        int        `json:"count"`
	TotalValue   float64    `json:"totalValue"`
	TotalItems   int        `json:"totalItems"`
	AverageValue float64    `json:"averageValue"`
	Oldest       *time.Time `json:"oldestDate"`
	Newest       *time.Time `json:"newestDate"`
}

// Store is the history of saved budgets, most recently touched first.
// It is not safe for concurrent use.
type Store struct {
	blobs    storage.BlobStore
	log      *logging.Logger
	now      func() time.Time
	newID    func() string
	maxItems int

	entries  []SavedBudget
	lastSave bool
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid-based entry id generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) {
		s.newID = f
	}
}

// WithMaxItems sets the retention cap. Values below 1 are ignored.
func WithMaxItems(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxItems = n
		}
	}
}

// Open hydrates the history from blobs. A missing, unreadable or corrupt blob
// yields an empty history; the failure is logged, never returned.
func Open(blobs storage.BlobStore, log *logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Store{
		blobs:    blobs,
		log:      log.With("component", "history", "key", StorageKey),
		now:      time.Now,
		newID:    uuid.NewString,
		maxItems: MaxItems,
		lastSave: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	entries, err := s.read()
	if err != nil {
		s.log.Warn("discarding unreadable budget history", "error", err)
		entries = nil
	}
	s.entries = hydrate(entries, s.maxItems)
	return s
}

func (s *Store) read() ([]SavedBudget, error) {
	raw, ok, err := s.blobs.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []SavedBudget
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode blob: %w", err)
	}
	return entries, nil
}

// hydrate orders entries by updatedAt descending, drops repeated ids (the most
// recent copy wins) and applies the retention cap.
func hydrate(entries []SavedBudget, limit int) []SavedBudget {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	seen := make(map[string]bool, len(entries))
	out := make([]SavedBudget, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		if e.Items == nil {
			e.Items = []estimate.CalculationItem{}
		}
		out = append(out, e)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// persist writes the history through to the blob store. Failures are logged
// and recorded for LastSaveSucceeded; the in-memory state is kept either way.
func (s *Store) persist() {
	data, err := json.Marshal(s.entries)
	if err == nil {
		err = s.blobs.Set(StorageKey, string(data))
	}
	if err != nil {
		s.log.Error("failed to persist budget history", "error", err)
		s.lastSave = false
		return
	}
	s.lastSave = true
}

// LastSaveSucceeded reports whether the most recent write reached the blob store.
func (s *Store) LastSaveSucceeded() bool {
	return s.lastSave
}

// DefaultName is the name given to a budget saved without one.
func DefaultName(t time.Time) string {
	return "Orçamento " + t.Format("02/01/2006")
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Save stores a snapshot of items. When existingID names an entry, that entry
// is replaced and keeps its createdAt; otherwise a new entry with a fresh id
// is created. The saved entry moves to the front and the oldest entries by
// updatedAt are evicted past the retention cap.
func (s *Store) Save(name string, items []estimate.CalculationItem, total float64, existingID string) SavedBudget {
	now := s.now().UTC()
	if strings.TrimSpace(name) == "" {
		name = DefaultName(now)
	}

	entry := SavedBudget{
		Name:        name,
		Items:       estimate.CloneItems(items),
		TotalBudget: total,
		CreatedAt:   now,
		UpdatedAt:   now,
		ItemCount:   len(items),
	}

	rest := s.entries
	if i := s.index(existingID); i >= 0 {
		entry.ID = existingID
		entry.CreatedAt = s.entries[i].CreatedAt
		rest = make([]SavedBudget, 0, len(s.entries)-1)
		rest = append(rest, s.entries[:i]...)
		rest = append(rest, s.entries[i+1:]...)
	} else {
		entry.ID = s.uniqueID()
	}

	entries := make([]SavedBudget, 0, len(rest)+1)
	entries = append(entries, entry)
	entries = append(entries, rest...)
	s.entries = evict(entries, s.maxItems)

	s.persist()
	return entry.clone()
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if s.index(id) < 0 {
			return id
		}
	}
}

// evict drops entries other than the first, oldest updatedAt first, until at
// most limit remain. Survivors keep their relative order. Among equal
// timestamps the entry nearest the tail goes first.
func evict(entries []SavedBudget, limit int) []SavedBudget {
	for len(entries) > limit {
		oldest := len(entries) - 1
		for i := len(entries) - 2; i > 0; i-- {
			if entries[i].UpdatedAt.Before(entries[oldest].UpdatedAt) {
				oldest = i
			}
		}
		entries = append(entries[:oldest], entries[oldest+1:]...)
	}
	return entries
}

// Load returns a copy of the entry with the given id.
func (s *Store) Load(id string) (SavedBudget, error) {
	i := s.index(id)
	if i < 0 {
		return SavedBudget{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.entries[i].clone(), nil
}

// Delete removes the entry and reports whether it existed.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.persist()
	return true
}

// DeleteAll empties the history and removes its blob.
func (s *Store) DeleteAll() {
	s.entries = nil
	if err := s.blobs.Remove(StorageKey); err != nil {
		s.log.Error("failed to remove budget history", "error", err)
		s.lastSave = false
		return
	}
	s.lastSave = true
}

// Duplicate saves a copy of the entry under a new id with CopySuffix appended
// to its name. The source entry is left untouched.
func (s *Store) Duplicate(id string) (SavedBudget, error) {
	i := s.index(id)
	if i < 0 {
		return SavedBudget{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	src := s.entries[i]
	return s.Save(src.Name+CopySuffix, src.Items, src.TotalBudget, ""), nil
}

// Rename changes the entry's name and refreshes updatedAt without moving it.
func (s *Store) Rename(id, name string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.entries[i].Name = name
	s.entries[i].UpdatedAt = s.now().UTC()
	s.persist()
	return nil
}

// Search matches query case-insensitively against entry names and the
// description or type of any item. A blank query returns everything.
func (s *Store) Search(query string) []SavedBudget {
	if strings.TrimSpace(query) == "" {
		return s.List()
	}
	q := strings.ToLower(query)
	out := []SavedBudget{}
	for _, e := range s.entries {
		if matches(e, q) {
			out = append(out, e.clone())
		}
	}
	return out
}

func matches(e SavedBudget, q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, item := range e.Items {
		if strings.Contains(strings.ToLower(item.Description), q) ||
			strings.Contains(strings.ToLower(item.Type), q) {
			return true
		}
	}
	return false
}

// List returns every entry in the current order.
func (s *Store) List() []SavedBudget {
	out := make([]SavedBudget, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Stats() Stats {
	st := Stats{Count: len(s.entries)}
	if st.Count == 0 {
		return st
	}
	for _, e := range s.entries {
		st.TotalValue += e.TotalBudget
		st.TotalItems += e.ItemCount
	}
	st.AverageValue = st.TotalValue / float64(st.Count)
	oldest := s.entries[len(s.entries)-1].CreatedAt
	newest := s.entries[0].CreatedAt
	st.Oldest = &oldest
	st.Newest = &newest
	return st
}
