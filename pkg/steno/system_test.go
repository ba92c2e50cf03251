package steno

import (
	"slices"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

func TestEnglishStenotypeNumbersMapToKeys(t *testing.T) {
	sys := EnglishStenotype()
	if err := sys.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !slices.Contains(sys.Keys, sys.NumberKey) {
		t.Errorf("number key %q not in key order", sys.NumberKey)
	}
	if got := sys.NumericKeys().Len(); got != 10 {
		t.Errorf("len(NumericKeys) = %d, want 10", got)
	}
}

func TestSystemValidate(t *testing.T) {
	tests := []struct {
		name string
		sys  System
		ok   bool
	}{
		{"minimal", System{Name: "Mini"}, true},
		{"blank name", System{Name: "  "}, false},
		{"unknown letter", System{Name: "X", Keys: []string{"A"}, Numbers: map[string]string{"1": "B"}}, false},
		{"empty mapping", System{Name: "X", Numbers: map[string]string{"": "A"}}, false},
		{"keyless mapping", System{Name: "X", Numbers: map[string]string{"1": "A"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sys.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidSystem) {
				t.Errorf("Validate() = %v, want INVALID_SYSTEM", err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup(DefaultSystem); !ok {
		t.Fatalf("built-in %q missing", DefaultSystem)
	}

	custom := System{Name: "Custom", Numbers: map[string]string{"1": "S"}, NumberKey: "#"}
	if err := r.Register(custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := r.Names(); !slices.Equal(got, []string{"Custom", DefaultSystem}) {
		t.Errorf("Names() = %v", got)
	}

	got, _ := r.Lookup("Custom")
	got.Numbers["2"] = "T"
	again, _ := r.Lookup("Custom")
	if _, ok := again.Numbers["2"]; ok {
		t.Error("Lookup returned shared map")
	}

	if _, err := r.Get("missing"); !errors.Is(err, errors.ErrCodeInvalidSystem) {
		t.Errorf("Get(missing) = %v, want INVALID_SYSTEM", err)
	}
	if err := r.Register(System{}); err == nil {
		t.Error("Register(unnamed) succeeded")
	}
}
