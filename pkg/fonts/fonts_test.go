package fonts

import (
	"strings"
	"testing"
)

func TestLookupEmptyUsesRegular(t *testing.T) {
	f, system := Lookup("")
	if f != Regular() {
		t.Error("Lookup(\"\") should return the embedded font")
	}
	if system {
		t.Error("Lookup(\"\") should not report a system font")
	}
}

func TestLookupMissingFallsBack(t *testing.T) {
	f, system := Lookup("No Such Font Family 9f2c")
	if f != Regular() || system {
		t.Error("unknown family should fall back to the embedded font")
	}
	// Cached second lookup returns the same answer.
	f2, _ := Lookup("No Such Font Family 9f2c")
	if f2 != f {
		t.Error("Lookup should cache results per name")
	}
}

func TestMeasure(t *testing.T) {
	face := Face("", DefaultSize)
	defer face.Close()

	w1, h := Measure(face, "S")
	w2, _ := Measure(face, "SSSS")
	if w1 <= 0 || h <= 0 {
		t.Fatalf("Measure(S) = %v x %v, want positive", w1, h)
	}
	if w2 <= w1 {
		t.Errorf("longer text should be wider: %v <= %v", w2, w1)
	}

	bw, bh := LabelBox(face, "S")
	if bw != w1+2*DocumentMargin || bh != h+2*DocumentMargin {
		t.Errorf("LabelBox = %v x %v, want text plus margins", bw, bh)
	}
}

func TestCSSFamily(t *testing.T) {
	if got := CSSFamily(""); got != FallbackFamily {
		t.Errorf("CSSFamily(\"\") = %q", got)
	}
	got := CSSFamily("Deja'Vu Sans")
	if !strings.HasPrefix(got, "'DejaVu Sans', ") {
		t.Errorf("CSSFamily = %q, want quoted family first", got)
	}
}
