package steno

import "testing"

func TestNormalize(t *testing.T) {
	numbers := map[string]string{"1": "S", "2": "T"}
	numeric := NewSet("1", "2")

	tests := []struct {
		name   string
		stroke []string
		want   Set
	}{
		{"digit maps to letter and adds flag", []string{"1"}, NewSet("S", "#")},
		// S is the letter 1 maps to, but only numeric keys raise the flag.
		{"letter S that a digit maps to adds no flag", []string{"S"}, NewSet("S")},
		{"mixed", []string{"2", "K"}, NewSet("T", "K", "#")},
		{"two digits add one flag", []string{"1", "2"}, NewSet("S", "T", "#")},
		{"empty stroke", nil, NewSet()},
		{"flag already pressed", []string{"#", "1"}, NewSet("#", "S")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.stroke, numeric, numbers, "#")
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.stroke, got.Sorted(), tt.want.Sorted())
			}
		})
	}
}

func TestNormalizeNumericWithoutMapping(t *testing.T) {
	// A numeric key with no letter mapping still lights the flag and stays as is.
	got := Normalize([]string{"9"}, NewSet("9"), nil, "#")
	if want := NewSet("9", "#"); !got.Equal(want) {
		t.Errorf("Normalize = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestNormalizeEmptyNumberKey(t *testing.T) {
	got := Normalize([]string{"1"}, NewSet("1"), map[string]string{"1": "S"}, "")
	if want := NewSet("S"); !got.Equal(want) {
		t.Errorf("Normalize = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestSystemNormalize(t *testing.T) {
	sys := EnglishStenotype()
	got := sys.Normalize([]string{"1-", "-9", "K-"})
	want := NewSet("S-", "-T", "K-", "#")
	if !got.Equal(want) {
		t.Errorf("Normalize = %v, want %v", got.Sorted(), want.Sorted())
	}
}
