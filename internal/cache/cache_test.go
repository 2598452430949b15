package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestNewSessionIDShapeAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewSessionID()
		if err != nil {
			t.Fatalf("NewSessionID: %v", err)
		}
		if len(id) != uuidLength {
			t.Fatalf("len(id) = %d, want %d", len(id), uuidLength)
		}
		for _, r := range id {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				t.Fatalf("id %q contains non-alphanumeric char %q", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q generated", id)
		}
		seen[id] = true
	}
}

func TestAudioKeyIsDeterministic(t *testing.T) {
	a := AudioKey("/movies/foo.mkv", 1)
	b := AudioKey("/movies/foo.mkv", 1)
	if a != b {
		t.Errorf("AudioKey not deterministic: %q != %q", a, b)
	}
	c := AudioKey("/movies/foo.mkv", 2)
	if a == c {
		t.Errorf("AudioKey collided across indices: %q", a)
	}
}

func TestWipeRemovesDirectChildrenOnly(t *testing.T) {
	root := t.TempDir()
	cacheRoot := filepath.Join(root, "cache")
	if err := os.MkdirAll(filepath.Join(cacheRoot, "stale-session", "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	store := NewStore(cacheRoot, filepath.Join(root, "metadata"))
	if err := store.Wipe(hclog.NewNullLogger()); err != nil {
		t.Fatalf("Wipe: %v", err)
	}
	entries, err := os.ReadDir(cacheRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache root after wipe, found %v", entries)
	}
	if _, err := os.Stat(cacheRoot); err != nil {
		t.Errorf("cache root itself should still exist: %v", err)
	}
}
