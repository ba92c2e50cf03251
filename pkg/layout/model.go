package layout

import (
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/layout/resources"
)

// Model holds the current layout of one display. A Model starts with the
// empty default layout and is replaced only by successful loads.
type Model struct {
	mu      sync.RWMutex
	current *Layout
	logger  *log.Logger
}

// NewModel creates a model holding an empty layout. A nil logger discards
// output.
func NewModel(logger *log.Logger) *Model {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Model{current: New(), logger: logger}
}

// Layout returns a copy of the current layout.
func (m *Model) Layout() *Layout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

// Name returns the current layout's name.
func (m *Model) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Name
}

// LoadJSON replaces the layout with the one described by data.
func (m *Model) LoadJSON(data []byte) error {
	l, err := Parse(data)
	if err != nil {
		m.logger.Warn("layout rejected", "err", err)
		return err
	}
	m.replace(l)
	return nil
}

// LoadReader reads a layout document from r and loads it.
func (m *Model) LoadReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeIO, err, "read layout")
		m.logger.Warn("layout rejected", "err", err)
		return err
	}
	return m.LoadJSON(data)
}

// LoadFile loads the layout stored at path (UTF-8 JSON).
func (m *Model) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeIO
		if errors.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		err = errors.Wrap(code, err, "read layout file %s", path)
		m.logger.Warn("layout rejected", "path", path, "err", err)
		return err
	}
	if err := m.LoadJSON(data); err != nil {
		return err
	}
	m.logger.Debug("loaded layout file", "path", path, "name", m.Name())
	return nil
}

// LoadResource loads one of the bundled layouts by name.
func (m *Model) LoadResource(name string) error {
	data, err := resources.Read(name)
	if err != nil {
		m.logger.Warn("layout rejected", "resource", name, "err", err)
		return err
	}
	if err := m.LoadJSON(data); err != nil {
		return err
	}
	m.logger.Debug("loaded layout resource", "resource", name, "name", m.Name())
	return nil
}

// LoadFS loads the layout stored at name in fsys.
func (m *Model) LoadFS(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		code := errors.ErrCodeIO
		if errors.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		err = errors.Wrap(code, err, "read layout %s", name)
		m.logger.Warn("layout rejected", "path", name, "err", err)
		return err
	}
	return m.LoadJSON(data)
}

func (m *Model) replace(l *Layout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = l
}
