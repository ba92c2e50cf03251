// Package resources bundles the layouts that ship with stenoboard.
//
// The English Stenotype layout is the terminal fallback of every display:
// it is loaded whenever no user layout is configured or a user layout fails
// to load, so it must always pass schema validation.
package resources

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// Default is the resource name of the built-in fallback layout.
const Default = "english_stenotype.json"

// Prefix is accepted in front of resource names so host-style resource
// paths (":/layout_display/english_stenotype.json") resolve too.
const Prefix = ":/layout_display/"

//go:embed *.json
var files embed.FS

// Read returns the contents of a bundled layout.
func Read(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, Prefix)
	if name == "" || name != path.Base(name) {
		return nil, errors.New(errors.ErrCodeResourceNotFound, "invalid resource name %q", name)
	}
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "resource %q", name)
	}
	return data, nil
}

// Names lists the bundled layouts in lexical order.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
