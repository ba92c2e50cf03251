package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/layout/resources"
)

func TestModelStartsEmpty(t *testing.T) {
	m := NewModel(nil)
	l := m.Layout()
	if l.Name != DefaultName || len(l.Keys) != 0 {
		t.Errorf("initial layout = %+v, want empty default", l)
	}
}

func TestModelFailedLoadKeepsPrevious(t *testing.T) {
	m := NewModel(nil)
	if err := m.LoadJSON([]byte(`{"name":"first","keys":[{"name":"a"}]}`)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	bad := []string{
		`{"name":"second"}`,
		`{"name":"second","keys":[`,
		`{"name":"second","keys":[{"x":"nope"}]}`,
	}
	for _, doc := range bad {
		if err := m.LoadJSON([]byte(doc)); err == nil {
			t.Fatalf("LoadJSON(%s) succeeded, want error", doc)
		}
		l := m.Layout()
		if l.Name != "first" || len(l.Keys) != 1 || l.Keys[0].Name != "a" {
			t.Errorf("after rejected %s: layout = %+v, want previous", doc, l)
		}
	}
}

func TestModelLayoutIsSnapshot(t *testing.T) {
	m := NewModel(nil)
	if err := m.LoadJSON([]byte(`{"keys":[{"name":"a"}]}`)); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	l := m.Layout()
	l.Keys[0].Name = "mutated"
	if got := m.Layout().Keys[0].Name; got != "a" {
		t.Errorf("model key name = %q, want a", got)
	}
}

func TestModelLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	if err := os.WriteFile(path, []byte(`{"name":"from file","keys":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewModel(nil)
	if err := m.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Name() != "from file" {
		t.Errorf("Name() = %q, want %q", m.Name(), "from file")
	}

	err := m.LoadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if m.Name() != "from file" {
		t.Errorf("Name() after failure = %q, want previous", m.Name())
	}
}

func TestModelLoadReader(t *testing.T) {
	m := NewModel(nil)
	if err := m.LoadReader(strings.NewReader(`{"name":"r","keys":[]}`)); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if m.Name() != "r" {
		t.Errorf("Name() = %q, want r", m.Name())
	}
}

func TestModelLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"a.json": {Data: []byte(`{"name":"fs","keys":[]}`)}}
	m := NewModel(nil)
	if err := m.LoadFS(fsys, "a.json"); err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if err := m.LoadFS(fsys, "b.json"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFS(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestModelLoadDefaultResource(t *testing.T) {
	m := NewModel(nil)
	if err := m.LoadResource(resources.Default); err != nil {
		t.Fatalf("LoadResource: %v", err)
	}
	l := m.Layout()
	if l.Name != "English Stenotype" {
		t.Errorf("Name = %q, want English Stenotype", l.Name)
	}
	for _, name := range []string{"#", "S-", "*", "A-", "-Z"} {
		if _, ok := l.Key(name); !ok {
			t.Errorf("default layout missing key %q", name)
		}
	}

	if err := m.LoadResource(resources.Prefix + resources.Default); err != nil {
		t.Errorf("LoadResource with prefix: %v", err)
	}
	if err := m.LoadResource("nope.json"); !errors.Is(err, errors.ErrCodeResourceNotFound) {
		t.Errorf("LoadResource(nope) = %v, want RESOURCE_NOT_FOUND", err)
	}
}
