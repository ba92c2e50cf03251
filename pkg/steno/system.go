package steno

import (
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// DefaultSystem names the built-in system used when nothing else is chosen.
const DefaultSystem = "English Stenotype"

// System is a steno key-mapping profile.
type System struct {
	// Name identifies the system; preferences are stored under it.
	Name string `toml:"name" json:"name"`
	// Keys lists the system's keys in steno order.
	Keys []string `toml:"keys" json:"keys"`
	// Numbers maps numeric key names to the letter keys that produce them.
	Numbers map[string]string `toml:"numbers" json:"numbers"`
	// NumberKey is the key that selects digits.
	NumberKey string `toml:"number_key" json:"number_key"`
}

// NumericKeys returns the names of the system's numeric keys.
func (s System) NumericKeys() Set {
	out := make(Set, len(s.Numbers))
	for k := range s.Numbers {
		out.Add(k)
	}
	return out
}

// Normalize converts a raw stroke using this system's number mapping.
func (s System) Normalize(stroke []string) Set {
	return Normalize(stroke, s.NumericKeys(), s.Numbers, s.NumberKey)
}

// Validate checks that the system can be used.
func (s System) Validate() error {
	if err := errors.ValidateSystemName(s.Name); err != nil {
		return err
	}
	known := NewSet(s.Keys...)
	for digit, letter := range s.Numbers {
		if digit == "" || letter == "" {
			return errors.New(errors.ErrCodeInvalidSystem, "system %q: empty number mapping", s.Name)
		}
		if len(s.Keys) > 0 && !known.Has(letter) {
			return errors.New(errors.ErrCodeInvalidSystem, "system %q: number %q maps to unknown key %q", s.Name, digit, letter)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s System) Clone() System {
	s.Keys = slices.Clone(s.Keys)
	s.Numbers = maps.Clone(s.Numbers)
	return s
}

// EnglishStenotype returns the standard English steno system.
func EnglishStenotype() System {
	return System{
		Name: DefaultSystem,
		Keys: []string{
			"#",
			"S-", "T-", "K-", "P-", "W-", "H-", "R-",
			"A-", "O-",
			"*",
			"-E", "-U",
			"-F", "-R", "-P", "-B", "-L", "-G", "-T", "-S", "-D", "-Z",
		},
		Numbers: map[string]string{
			"1-": "S-",
			"2-": "T-",
			"3-": "P-",
			"4-": "H-",
			"5-": "A-",
			"0-": "O-",
			"-6": "-F",
			"-7": "-P",
			"-8": "-L",
			"-9": "-T",
		},
		NumberKey: "#",
	}
}

// Registry holds systems by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]System
}

// NewRegistry returns a registry holding the built-in systems.
func NewRegistry() *Registry {
	r := &Registry{systems: make(map[string]System)}
	en := EnglishStenotype()
	r.systems[en.Name] = en
	return r
}

// Register adds s, replacing any system with the same name.
func (r *Registry) Register(s System) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[s.Name] = s.Clone()
	return nil
}

// Lookup returns the system named name.
func (r *Registry) Lookup(name string) (System, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.systems[name]
	if !ok {
		return System{}, false
	}
	return s.Clone(), true
}

// Get returns the named system or an INVALID_SYSTEM error.
func (r *Registry) Get(name string) (System, error) {
	s, ok := r.Lookup(name)
	if !ok {
		return System{}, errors.New(errors.ErrCodeInvalidSystem, "unknown system %q", name)
	}
	return s, nil
}

// Names lists registered systems in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.systems))
	for n := range r.systems {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
