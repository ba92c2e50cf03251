package steno

import (
	"strings"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// ParseChord reads one stroke written in dash notation against the
// system's key order and returns the raw key names it presses.
//
// Letters are matched left to right in steno order, so consonants after a
// vowel or star fall on the right bank. A '-' moves to the right bank
// explicitly. Digits produce the system's numeric keys, which
// [System.Normalize] later maps back to letters.
func (s System) ParseChord(chord string) ([]string, error) {
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty chord")
	}

	digits := s.digitKeys()
	var (
		out    []string
		cursor int
		right  bool
	)
	for _, c := range chord {
		if c == '-' {
			if right {
				return nil, errors.New(errors.ErrCodeInvalidInput, "chord %q: repeated '-'", chord)
			}
			right = true
			continue
		}

		idx := -1
		for i := cursor; i < len(s.Keys); i++ {
			k := s.Keys[i]
			if right && isLeft(k) {
				continue
			}
			if bare(k) == string(c) {
				idx = i
				break
			}
			if d, ok := digits[k]; ok && bare(d) == string(c) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "chord %q: unexpected %q", chord, c)
		}
		cursor = idx + 1

		key := s.Keys[idx]
		if isDigit(c) {
			key = digits[key]
		}
		out = append(out, key)
	}
	return out, nil
}

// ParseStrokes splits a '/'-separated outline into strokes and parses each.
func (s System) ParseStrokes(outline string) ([][]string, error) {
	var strokes [][]string
	for _, chord := range strings.Split(outline, "/") {
		keys, err := s.ParseChord(chord)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, keys)
	}
	return strokes, nil
}

// digitKeys maps each letter key that has a number to its numeric key.
func (s System) digitKeys() map[string]string {
	out := make(map[string]string, len(s.Numbers))
	for digit, letter := range s.Numbers {
		out[letter] = digit
	}
	return out
}

func isLeft(k string) bool {
	return len(k) > 1 && strings.HasSuffix(k, "-")
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// bare strips bank markers.
func bare(k string) string {
	return strings.Trim(k, "-")
}
