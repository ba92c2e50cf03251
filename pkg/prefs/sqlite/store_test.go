package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/prefs/prefstest"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	prefstest.Exercise(t, s)
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "English Stenotype", "/a.json"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if p, ok, err := s.Get(ctx, "English Stenotype"); err != nil || !ok || p != "/a.json" {
		t.Errorf("Get = %q, %v, %v", p, ok, err)
	}
}
