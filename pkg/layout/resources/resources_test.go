package resources

import (
	"slices"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

func TestReadDefault(t *testing.T) {
	for _, name := range []string{Default, Prefix + Default} {
		data, err := Read(name)
		if err != nil {
			t.Fatalf("Read(%q) error: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("Read(%q) returned no data", name)
		}
	}
}

func TestReadMissing(t *testing.T) {
	for _, name := range []string{"", "missing.json", "../go.mod", "sub/english_stenotype.json"} {
		if _, err := Read(name); !errors.Is(err, errors.ErrCodeResourceNotFound) {
			t.Errorf("Read(%q) error = %v, want RESOURCE_NOT_FOUND", name, err)
		}
	}
}

func TestNames(t *testing.T) {
	if !slices.Contains(Names(), Default) {
		t.Errorf("Names() = %v, missing %s", Names(), Default)
	}
}
