// Package prefstest provides a conformance test for prefs.Store backends.
package prefstest

import (
	"context"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/prefs"
)

// Exercise runs the behavior every prefs.Store backend shares against s,
// which must start empty.
func Exercise(t *testing.T, s prefs.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "English Stenotype"); ok || err != nil {
		t.Fatalf("Get on empty store = %v, %v", ok, err)
	}

	if err := s.Set(ctx, "English Stenotype", "/layouts/a.json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "Other", "/layouts/b.json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "English Stenotype", "/layouts/c.json"); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}

	p, ok, err := s.Get(ctx, "English Stenotype")
	if err != nil || !ok || p != "/layouts/c.json" {
		t.Errorf("Get = %q, %v, %v; want /layouts/c.json", p, ok, err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 || all["Other"] != "/layouts/b.json" {
		t.Errorf("All = %v", all)
	}

	if err := s.Delete(ctx, "English Stenotype"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "English Stenotype"); ok {
		t.Error("entry present after Delete")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}
