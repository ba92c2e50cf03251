package prefs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/prefs/prefstest"
)

func TestMemory(t *testing.T) {
	s := prefs.NewMemory()
	defer s.Close()
	prefstest.Exercise(t, s)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s, err := prefs.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	prefstest.Exercise(t, s)
}

func TestFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := prefs.NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "English Stenotype", "/a.json"); err != nil {
		t.Fatal(err)
	}

	reopened, err := prefs.NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if p, ok, _ := reopened.Get(ctx, "English Stenotype"); !ok || p != "/a.json" {
		t.Errorf("reopened Get = %q, %v", p, ok)
	}
}

func TestFileRejectsCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := prefs.NewFile(path); err == nil {
		t.Error("NewFile on corrupt file succeeded")
	}
}

func TestFileEmptyFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := prefs.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	prefstest.Exercise(t, s)
}
