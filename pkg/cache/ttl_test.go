package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/hovercard/pkg/preview"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// failingStore fails reads and/or writes on demand.
type failingStore struct {
	MemoryStore
	failRead  bool
	failWrite bool
	writes    int
}

func (s *failingStore) Read(ctx context.Context) ([]byte, error) {
	if s.failRead {
		return nil, errors.New("read refused")
	}
	return s.MemoryStore.Read(ctx)
}

func (s *failingStore) Write(ctx context.Context, record []byte) error {
	s.writes++
	if s.failWrite {
		return errors.New("write refused")
	}
	return s.MemoryStore.Write(ctx, record)
}

func card(title string) preview.Data {
	return preview.Data{Title: title, Stats: []preview.Stat{{Label: "Stars", Value: "1", Icon: "⭐"}}}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Fatal("Get on empty cache should miss")
	}
	if err := c.Put(ctx, "github:x", card("x")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok := c.Get(ctx, "github:x")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if got.Title != "x" || got.Stats[0].Value != "1" {
		t.Errorf("Get = %+v", got)
	}
}

func TestTTLBoundary(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	c := New(store, WithClock(clock.Now))

	if err := c.Put(ctx, "github:x", card("x")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	clock.Advance(DefaultTTL - time.Millisecond)
	if _, ok := c.Get(ctx, "github:x"); !ok {
		t.Fatal("entry should be fresh just before the TTL")
	}

	clock.Advance(time.Millisecond)
	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Fatal("entry should be stale at exactly the TTL")
	}

	// The stale entry is gone from the store, not just hidden.
	fresh := New(store, WithClock(clock.Now))
	if items := fresh.Entries(ctx); len(items) != 0 {
		t.Errorf("store still holds %d entries after eviction", len(items))
	}
}

func TestKeyIsolation(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	_ = c.Put(ctx, "github:https://same/X", card("from github"))
	_ = c.Put(ctx, "npm:https://same/X", card("from npm"))

	gh, _ := c.Get(ctx, "github:https://same/X")
	np, _ := c.Get(ctx, "npm:https://same/X")
	if gh.Title != "from github" || np.Title != "from npm" {
		t.Errorf("entries collided: %q / %q", gh.Title, np.Title)
	}
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{failRead: true}
	c := New(store)

	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Fatal("Get should miss when the store cannot be read")
	}
	// Writes are still attempted.
	if err := c.Put(ctx, "github:x", card("x")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, ok := c.Get(ctx, "github:x"); !ok {
		t.Error("Put should populate the cache even when reads fail")
	}
}

func TestWriteFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{failWrite: true}
	c := New(store)

	if err := c.Put(ctx, "github:x", card("x")); err == nil {
		t.Fatal("Put should report the store failure")
	}
	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Error("unacknowledged write must not be visible")
	}
}

func TestCorruptRecordStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Write(ctx, []byte("{not json"))

	c := New(store)
	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Fatal("Get should miss on a corrupt record")
	}
	if err := c.Put(ctx, "github:x", card("x")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, ok := New(store).Get(ctx, "github:x"); !ok {
		t.Error("Put should replace a corrupt record")
	}
}

func TestSharedStoreMerge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := New(store)
	b := New(store)

	// Both load the empty record before either writes.
	a.Get(ctx, "k")
	b.Get(ctx, "k")

	_ = a.Put(ctx, "github:a", card("a"))
	_ = b.Put(ctx, "github:b", card("b"))

	if n := len(New(store).Entries(ctx)); n != 2 {
		t.Errorf("store holds %d entries, want 2", n)
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := New(store)
	b := New(store)

	if _, ok := b.Get(ctx, "github:x"); ok {
		t.Fatal("unexpected hit")
	}
	_ = a.Put(ctx, "github:x", card("x"))

	if _, ok := b.Get(ctx, "github:x"); ok {
		t.Fatal("b should not see a's write before Reload")
	}
	if err := b.Reload(ctx); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if _, ok := b.Get(ctx, "github:x"); !ok {
		t.Error("b should see a's write after Reload")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)
	_ = c.Put(ctx, "github:x", card("x"))

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Error("Get after Clear should miss")
	}
	if n := len(New(store).Entries(ctx)); n != 0 {
		t.Errorf("store holds %d entries after Clear", n)
	}
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := New(NewMemoryStore(), WithClock(clock.Now), WithTTL(time.Minute))

	_ = c.Put(ctx, "npm:b", card("b"))
	clock.Advance(2 * time.Minute)
	_ = c.Put(ctx, "github:a", card("a"))

	items := c.Entries(ctx)
	if len(items) != 2 {
		t.Fatalf("Entries() len = %d, want 2", len(items))
	}
	if items[0].Key != "github:a" || !items[0].Fresh {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Key != "npm:b" || items[1].Fresh || items[1].Age != 2*time.Minute {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestNullStoreDisablesCaching(t *testing.T) {
	ctx := context.Background()
	c := New(NullStore{})
	if err := c.Put(ctx, "github:x", card("x")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, ok := c.Get(ctx, "github:x"); ok {
		t.Error("NullStore cache should never hit")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "previews.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %q", s.Path())
	}

	data, err := s.Read(ctx)
	if err != nil || data != nil {
		t.Fatalf("Read on missing file = %q, %v", data, err)
	}

	if err := s.Write(ctx, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	data, err = s.Read(ctx)
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("Read = %q, %v", data, err)
	}

	files, _ := os.ReadDir(filepath.Dir(path))
	if len(files) != 1 {
		t.Errorf("directory holds %d files, want only the record", len(files))
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "previews.json")

	s1, _ := NewFileStore(path)
	_ = New(s1).Put(ctx, "github:x", card("x"))

	s2, _ := NewFileStore(path)
	if got, ok := New(s2).Get(ctx, "github:x"); !ok || got.Title != "x" {
		t.Errorf("Get from new instance = %+v, %v", got, ok)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		want    any
		wantErr bool
	}{
		{"memory", Options{Backend: BackendMemory}, &MemoryStore{}, false},
		{"none", Options{Backend: BackendNone}, NullStore{}, false},
		{"file", Options{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "c.json")}, &FileStore{}, false},
		{"unknown", Options{Backend: "etcd"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBackend) {
					t.Errorf("Open() error = %v, want ErrUnknownBackend", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer s.Close()
			switch tt.want.(type) {
			case *MemoryStore:
				if _, ok := s.(*MemoryStore); !ok {
					t.Errorf("Open() = %T", s)
				}
			case NullStore:
				if _, ok := s.(NullStore); !ok {
					t.Errorf("Open() = %T", s)
				}
			case *FileStore:
				if _, ok := s.(*FileStore); !ok {
					t.Errorf("Open() = %T", s)
				}
			}
		})
	}
}

func TestKeyType(t *testing.T) {
	tests := []struct{ key, want string }{
		{"github:https://api.github.com/repos/a/b", "github"},
		{"plain", "plain"},
		{":x", ":x"},
	}
	for _, tt := range tests {
		if got := keyType(tt.key); got != tt.want {
			t.Errorf("keyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
