package history

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage/mocks"
)

var epoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// tickingClock advances one minute on every call.
func tickingClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return epoch.Add(time.Duration(n) * time.Minute)
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("budget-%d", n)
	}
}

func openTestStore(t *testing.T, blobs storage.BlobStore, opts ...Option) *Store {
	t.Helper()
	base := []Option{WithClock(tickingClock()), WithIDGenerator(sequentialIDs())}
	return Open(blobs, logging.NewNop(), append(base, opts...)...)
}

func sampleItems(t *testing.T) []estimate.CalculationItem {
	t.Helper()
	e := estimate.New()
	wall, err := e.Masonry(estimate.MasonryInput{Length: "5", Height: "2.8"})
	if err != nil {
		t.Fatalf("Masonry returned error: %v", err)
	}
	slab, err := e.Concrete(estimate.ConcreteInput{Length: "4", Width: "3", Thickness: "0.1", Description: "Laje garagem"})
	if err != nil {
		t.Fatalf("Concrete returned error: %v", err)
	}
	return []estimate.CalculationItem{wall, slab}
}

func TestSaveNewThenUpdateKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)

	first := s.Save("Casa", items, estimate.SumItems(items), "")
	if first.ID != "budget-1" {
		t.Fatalf("id=%q", first.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("new entry must have createdAt == updatedAt, got %v / %v", first.CreatedAt, first.UpdatedAt)
	}
	if first.ItemCount != 2 {
		t.Fatalf("itemCount=%d", first.ItemCount)
	}

	second := s.Save("Casa v2", items[:1], items[0].Total, first.ID)
	if second.ID != first.ID {
		t.Fatalf("update must keep id, got %q", second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updatedAt did not advance: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", s.Len())
	}
	got, err := s.Load(first.ID)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Name != "Casa v2" || got.ItemCount != 1 {
		t.Fatalf("unexpected entry after update: %+v", got)
	}
}

func TestSaveWithUnknownIDCreatesFreshEntry(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())

	got := s.Save("Obra", sampleItems(t), 10, "missing")
	if got.ID == "missing" || got.ID == "" {
		t.Fatalf("expected a fresh id, got %q", got.ID)
	}
}

func TestSaveMovesEntryToFront(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)

	a := s.Save("A", items, 1, "")
	s.Save("B", items, 2, "")
	s.Save("C", items, 3, "")
	s.Save("A again", items, 4, a.ID)

	list := s.List()
	names := []string{list[0].Name, list[1].Name, list[2].Name}
	if names[0] != "A again" || names[1] != "C" || names[2] != "B" {
		t.Fatalf("unexpected order %v", names)
	}
}

func TestSaveBlankNameUsesDate(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())

	got := s.Save("   ", sampleItems(t), 1, "")
	if got.Name != "Orçamento 14/03/2026" {
		t.Fatalf("name=%q", got.Name)
	}
}

func TestRetentionEvictsOldest(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore(), WithMaxItems(3))
	items := sampleItems(t)

	for i := 1; i <= 5; i++ {
		s.Save(fmt.Sprintf("B%d", i), items, float64(i), "")
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	for i, want := range []string{"B5", "B4", "B3"} {
		if list[i].Name != want {
			t.Fatalf("entry %d = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestRetentionDefaultCap(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)

	for i := 0; i < MaxItems+5; i++ {
		s.Save(fmt.Sprintf("B%d", i), items, 1, "")
	}
	if s.Len() != MaxItems {
		t.Fatalf("expected %d entries, got %d", MaxItems, s.Len())
	}
	if _, err := s.Load("budget-5"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("oldest entries must be evicted, got %v", err)
	}
	if _, err := s.Load("budget-6"); err != nil {
		t.Fatalf("budget-6 must survive: %v", err)
	}
}

func TestRetentionUsesUpdatedAtAfterRename(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore(), WithMaxItems(3))
	items := sampleItems(t)

	a := s.Save("A", items, 1, "")
	s.Save("B", items, 2, "")
	s.Save("C", items, 3, "")
	// A is at the tail but now has the newest updatedAt; B is the oldest.
	if err := s.Rename(a.ID, "A renamed"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	s.Save("D", items, 4, "")

	list := s.List()
	var names []string
	for _, e := range list {
		names = append(names, e.Name)
	}
	if len(names) != 3 || names[0] != "D" || names[1] != "C" || names[2] != "A renamed" {
		t.Fatalf("unexpected survivors %v", names)
	}
}

func TestSnapshotsAreIndependentCopies(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)

	saved := s.Save("Casa", items, estimate.SumItems(items), "")
	items[0].Description = "mutated"
	items[0].Materials[0].Quantity = -1
	saved.Items[1].Description = "mutated too"

	got, err := s.Load(saved.ID)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Items[0].Description == "mutated" || got.Items[0].Materials[0].Quantity == -1 {
		t.Fatalf("stored snapshot follows the caller's slice")
	}
	if got.Items[1].Description == "mutated too" {
		t.Fatalf("stored snapshot follows the returned value")
	}

	got.Items[0].Type = "changed"
	again, _ := s.Load(saved.ID)
	if again.Items[0].Type == "changed" {
		t.Fatalf("Load must return a copy")
	}
}

func TestDuplicate(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)
	orig := s.Save("Casa", items, estimate.SumItems(items), "")

	dup, err := s.Duplicate(orig.ID)
	if err != nil {
		t.Fatalf("Duplicate returned error: %v", err)
	}
	if dup.ID == orig.ID {
		t.Fatalf("duplicate must get a new id")
	}
	if dup.Name != "Casa (Cópia)" {
		t.Fatalf("name=%q", dup.Name)
	}
	if dup.TotalBudget != orig.TotalBudget || len(dup.Items) != len(orig.Items) || dup.Items[1].Description != "Laje garagem" {
		t.Fatalf("duplicate content differs: %+v", dup)
	}

	src, err := s.Load(orig.ID)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if src.Name != "Casa" || !src.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Fatalf("source entry was modified: %+v", src)
	}
	if s.List()[0].ID != dup.ID {
		t.Fatalf("duplicate must be first")
	}

	before := s.Len()
	if _, err := s.Duplicate("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != before {
		t.Fatalf("store mutated by failed duplicate")
	}
}

func TestRenameDoesNotReorder(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)
	a := s.Save("A", items, 1, "")
	s.Save("B", items, 2, "")

	if err := s.Rename(a.ID, "A2"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	list := s.List()
	if list[1].ID != a.ID || list[1].Name != "A2" {
		t.Fatalf("rename moved or lost the entry: %+v", list)
	}
	if !list[1].UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("rename must refresh updatedAt")
	}
	if !list[1].CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("rename must keep createdAt")
	}

	if err := s.Rename("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	a := s.Save("A", sampleItems(t), 1, "")

	if s.Delete("nope") {
		t.Fatalf("deleting an unknown id must report false")
	}
	if !s.Delete(a.ID) {
		t.Fatalf("expected delete to succeed")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestDeleteAllRemovesBlob(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := openTestStore(t, blobs)
	s.Save("A", sampleItems(t), 1, "")

	if _, ok, _ := blobs.Get(StorageKey); !ok {
		t.Fatalf("expected the history blob to be written")
	}

	s.DeleteAll()

	if s.Len() != 0 {
		t.Fatalf("expected empty history")
	}
	if _, ok, _ := blobs.Get(StorageKey); ok {
		t.Fatalf("expected the history blob to be removed")
	}
	if reopened := openTestStore(t, blobs); reopened.Len() != 0 {
		t.Fatalf("expected empty history after restart")
	}
}

func TestSearch(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	items := sampleItems(t)
	s.Save("Casa de praia", items[:1], 1, "")
	s.Save("Reforma", items[1:], 2, "")

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"   ", 2},
		{"PRAIA", 1},
		{"garagem", 1},
		{"concreto", 1},
		{"alvenaria", 1},
		{"parede", 1},
		{"inexistente", 0},
	}
	for _, tc := range cases {
		if got := s.Search(tc.query); len(got) != tc.want {
			t.Fatalf("Search(%q) returned %d entries, want %d", tc.query, len(got), tc.want)
		}
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t, storage.NewMemoryStore())
	if st := s.Stats(); st.Count != 0 || st.Oldest != nil || st.Newest != nil || st.AverageValue != 0 {
		t.Fatalf("unexpected empty stats %+v", st)
	}

	items := sampleItems(t)
	a := s.Save("A", items, 100, "")
	b := s.Save("B", items[:1], 50, "")

	st := s.Stats()
	if st.Count != 2 || st.TotalValue != 150 || st.TotalItems != 3 || st.AverageValue != 75 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if !st.Oldest.Equal(a.CreatedAt) || !st.Newest.Equal(b.CreatedAt) {
		t.Fatalf("unexpected dates %v / %v", st.Oldest, st.Newest)
	}
}

func TestRestartRoundTrip(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := openTestStore(t, blobs)
	items := sampleItems(t)

	a := s.Save("A", items, estimate.SumItems(items), "")
	b := s.Save("B", items[:1], items[0].Total, "")
	if err := s.Rename(a.ID, "A renamed"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	want := s.List()

	reopened := Open(blobs, logging.NewNop())
	got := reopened.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after restart, got %d", len(got))
	}
	// A was renamed last, so it sorts first after rehydration.
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("unexpected order after restart: %s, %s", got[0].ID, got[1].ID)
	}

	byID := map[string]SavedBudget{}
	for _, e := range want {
		byID[e.ID] = e
	}
	for _, g := range got {
		w := byID[g.ID]
		if g.Name != w.Name || g.TotalBudget != w.TotalBudget || g.ItemCount != w.ItemCount {
			t.Fatalf("entry %s differs: got %+v want %+v", g.ID, g, w)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Fatalf("entry %s timestamps differ", g.ID)
		}
		if len(g.Items) != len(w.Items) {
			t.Fatalf("entry %s item count differs", g.ID)
		}
		for i := range g.Items {
			gi, wi := g.Items[i], w.Items[i]
			if gi.ID != wi.ID || gi.Description != wi.Description || gi.Total != wi.Total || len(gi.Materials) != len(wi.Materials) {
				t.Fatalf("entry %s item %d differs", g.ID, i)
			}
			for j := range gi.Materials {
				if gi.Materials[j] != wi.Materials[j] {
					t.Fatalf("entry %s item %d material %d differs", g.ID, i, j)
				}
			}
		}
	}
}

func TestOpenSortsStoredEntries(t *testing.T) {
	blobs := storage.NewMemoryStore()
	raw := `[
		{"id":"old","name":"Old","items":[],"totalBudget":1,"createdAt":"2026-01-01T10:00:00Z","updatedAt":"2026-01-01T10:00:00Z","itemCount":0},
		{"id":"new","name":"New","items":[],"totalBudget":2,"createdAt":"2026-01-01T10:00:00Z","updatedAt":"2026-02-01T10:00:00Z","itemCount":0}
	]`
	if err := blobs.Set(StorageKey, raw); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	list := Open(blobs, logging.NewNop()).List()
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestOpenCorruptBlobIsLoggedAndEmpty(t *testing.T) {
	blobs := storage.NewMemoryStore()
	if err := blobs.Set(StorageKey, "{not json"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	core, logs := observer.New(zap.WarnLevel)

	s := Open(blobs, logging.FromZap(zap.New(core)))

	if s.Len() != 0 {
		t.Fatalf("expected empty history")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected the corrupt blob to be logged, got %d entries", logs.Len())
	}
	if logs.All()[0].ContextMap()["key"] != StorageKey {
		t.Fatalf("log entry must carry the blob key: %+v", logs.All()[0].ContextMap())
	}
}

func TestOpenReadErrorIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	blobs.EXPECT().Get(StorageKey).Return("", false, errors.New("disk gone"))

	if s := Open(blobs, logging.NewNop()); s.Len() != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mocks.NewMockBlobStore(ctrl)
	blobs.EXPECT().Get(StorageKey).Return("", false, nil)
	gomock.InOrder(
		blobs.EXPECT().Set(StorageKey, gomock.Any()).Return(errors.New("quota exceeded")),
		blobs.EXPECT().Set(StorageKey, gomock.Any()).Return(nil),
	)
	core, logs := observer.New(zap.ErrorLevel)
	s := Open(blobs, logging.FromZap(zap.New(core)), WithClock(tickingClock()), WithIDGenerator(sequentialIDs()))

	saved := s.Save("A", sampleItems(t), 1, "")
	if s.LastSaveSucceeded() {
		t.Fatalf("expected LastSaveSucceeded to be false")
	}
	if _, err := s.Load(saved.ID); err != nil {
		t.Fatalf("entry must stay in memory: %v", err)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}

	if err := s.Rename(saved.ID, "B"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if !s.LastSaveSucceeded() {
		t.Fatalf("expected LastSaveSucceeded to recover")
	}
}

func TestRejectedEstimateKeepsHistoryWritable(t *testing.T) {
	blobs := storage.NewMemoryStore()
	s := openTestStore(t, blobs)
	e := estimate.New()

	items := sampleItems(t)
	for _, in := range []estimate.ConcreteInput{
		{Length: "1e200", Width: "1e200", Thickness: "1"},
		{Length: "1e-200", Width: "1e-200", Thickness: "1", LaborCost: "100"},
	} {
		item, err := e.Concrete(in)
		if !errors.Is(err, estimate.ErrIncompleteInput) {
			t.Fatalf("Concrete(%+v): expected ErrIncompleteInput, got %v (item %+v)", in, err, item)
		}
	}

	first := s.Save("Obra", items, estimate.SumItems(items), "")
	if !s.LastSaveSucceeded() {
		t.Fatalf("first save was not persisted")
	}
	s.Save("Obra 2", items[:1], items[0].Total, "")
	if !s.LastSaveSucceeded() {
		t.Fatalf("second save was not persisted")
	}

	reopened := Open(blobs, logging.NewNop())
	if reopened.Len() != 2 {
		t.Fatalf("expected 2 entries after restart, got %d", reopened.Len())
	}
	if _, err := reopened.Load(first.ID); err != nil {
		t.Fatalf("Load(%s) returned error: %v", first.ID, err)
	}
}
