package steno

// Normalize converts a raw stroke into the set of key names to light up.
//
// If any raw key is in numeric, numberKey is added. Every raw key with an
// entry in toLetter is replaced by that letter key; all other keys pass
// through unchanged. An empty numberKey is never added.
func Normalize(stroke []string, numeric Set, toLetter map[string]string, numberKey string) Set {
	out := make(Set, len(stroke)+1)
	for _, k := range stroke {
		if numeric.Has(k) && numberKey != "" {
			out.Add(numberKey)
		}
		if letter, ok := toLetter[k]; ok {
			k = letter
		}
		out.Add(k)
	}
	return out
}
