package display

import (
	"context"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/layout"
	"github.com/matzehuels/stenoboard/pkg/layout/resources"
	"github.com/matzehuels/stenoboard/pkg/observability"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/scene"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

// Config is the part of the engine configuration the display uses.
type Config struct {
	SystemName string            `json:"system_name"`
	Numbers    map[string]string `json:"numbers"`
	NumberKey  string            `json:"number_key"`
}

// ConfigFor returns the configuration event for a known system.
func ConfigFor(s steno.System) Config {
	return Config{SystemName: s.Name, Numbers: maps.Clone(s.Numbers), NumberKey: s.NumberKey}
}

// Option configures a [Display].
type Option func(*Display)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(d *Display) { d.logger = l } }

// WithPrefs sets the store of preferred layout paths. Without it
// preferences live in memory.
func WithPrefs(s prefs.Store) Option { return func(d *Display) { d.prefs = s } }

// WithViewport sets the initial viewport size.
func WithViewport(size geom.Size) Option { return func(d *Display) { d.viewport = size } }

// WithRendererOptions passes options to the scene renderer.
func WithRendererOptions(opts ...scene.Option) Option {
	return func(d *Display) { d.rendererOpts = append(d.rendererOpts, opts...) }
}

// Display is one layout display.
type Display struct {
	mu sync.Mutex

	logger       *log.Logger
	prefs        prefs.Store
	model        *layout.Model
	renderer     *scene.Renderer
	rendererOpts []scene.Option
	viewport     geom.Size

	system    string
	numeric   steno.Set
	numbers   map[string]string
	numberKey string
	stroke    steno.Set
}

// New creates a display showing the built-in layout with no system chosen.
func New(opts ...Option) *Display {
	d := &Display{
		numeric: steno.NewSet(),
		stroke:  steno.NewSet(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if d.prefs == nil {
		d.prefs = prefs.NewMemory()
	}
	d.model = layout.NewModel(d.logger)
	d.renderer = scene.NewRenderer(append([]scene.Option{scene.WithLogger(d.logger)}, d.rendererOpts...)...)

	ctx := context.Background()
	if err := d.loadDefault(ctx); err != nil {
		d.logger.Error("built-in layout failed to load", "err", err)
	}
	d.render(ctx)
	return d
}

// OnConfigChanged applies a configuration change. Changes without a system
// name are ignored.
func (d *Display) OnConfigChanged(ctx context.Context, cfg Config) {
	if cfg.SystemName == "" {
		d.logger.Debug("ignoring config change without system")
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stroke = steno.NewSet()
	d.numbers = maps.Clone(cfg.Numbers)
	d.numeric = steno.NewSet()
	for k := range cfg.Numbers {
		d.numeric.Add(k)
	}
	d.numberKey = cfg.NumberKey
	d.system = cfg.SystemName
	d.logger.Info("system changed", "system", d.system)

	if path, ok := d.preferredLayout(ctx); ok {
		if err := d.loadFile(ctx, path); err == nil {
			d.render(ctx)
			return
		}
	}
	d.reset(ctx)
}

// OnStroke lights up the keys of a raw stroke and returns the new scene.
func (d *Display) OnStroke(ctx context.Context, keys []string) *scene.Scene {
	observability.Display().OnStroke(ctx, len(keys))

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stroke = steno.Normalize(keys, d.numeric, d.numbers, d.numberKey)
	return d.render(ctx)
}

// Load loads the layout file at path. On success the path becomes the
// current system's preferred layout; on failure the display resets to the
// built-in layout and the error is returned.
func (d *Display) Load(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := errors.ValidateLayoutPath(path)
	if err == nil {
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			d.logger.Warn("layout file does not end in .json", "path", path)
		}
		err = d.loadFile(ctx, path)
	}
	if err != nil {
		d.logger.Warn("layout load failed, resetting", "path", path, "err", err)
		d.reset(ctx)
		return err
	}

	if d.system != "" {
		if perr := d.prefs.Set(ctx, d.system, path); perr != nil {
			d.logger.Warn("could not store preferred layout", "system", d.system, "err", perr)
		}
	}
	d.stroke = steno.NewSet()
	d.render(ctx)
	return nil
}

// LoadJSON replaces the layout with a raw document. Preferences are not
// touched, and a rejected document leaves the display unchanged.
func (d *Display) LoadJSON(ctx context.Context, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.model.LoadJSON(data)
	d.loaded(ctx, "json", err)
	if err != nil {
		return err
	}
	d.stroke = steno.NewSet()
	d.render(ctx)
	return nil
}

// Reset forgets the current system's preferred layout and shows the
// built-in layout.
func (d *Display) Reset(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset(ctx)
}

// Update rebuilds the scene with the last stroke.
func (d *Display) Update(ctx context.Context) *scene.Scene {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render(ctx)
}

// Resize sets the viewport and returns the transform fitting the current
// scene into it.
func (d *Display) Resize(size geom.Size) geom.Transform {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = size
	return d.renderer.Scene().Fit(size)
}

// Transform returns the transform fitting the current scene into the
// viewport, or the identity when no viewport is set.
func (d *Display) Transform() geom.Transform {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderer.Scene().Fit(d.viewport)
}

// Scene returns the current scene.
func (d *Display) Scene() *scene.Scene {
	return d.renderer.Scene()
}

// State is a snapshot of a display.
type State struct {
	System   string    `json:"system"`
	Layout   string    `json:"layout"`
	Active   []string  `json:"active"`
	Viewport geom.Size `json:"viewport"`
}

// State returns a snapshot of the display.
func (d *Display) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		System:   d.system,
		Layout:   d.model.Name(),
		Active:   d.stroke.Sorted(),
		Viewport: d.viewport,
	}
}

// Layout returns a copy of the current layout.
func (d *Display) Layout() *layout.Layout {
	return d.model.Layout()
}

// LayoutName returns the current layout's name.
func (d *Display) LayoutName() string {
	return d.model.Name()
}

// System returns the current system name, empty before the first
// configuration.
func (d *Display) System() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.system
}

func (d *Display) reset(ctx context.Context) {
	if d.system != "" {
		if err := d.prefs.Delete(ctx, d.system); err != nil {
			d.logger.Warn("could not clear preferred layout", "system", d.system, "err", err)
		}
	}
	if err := d.loadDefault(ctx); err != nil {
		d.logger.Error("built-in layout failed to load", "err", err)
	}
	d.stroke = steno.NewSet()
	d.render(ctx)
}

func (d *Display) loadDefault(ctx context.Context) error {
	err := d.model.LoadResource(resources.Default)
	d.loaded(ctx, resources.Default, err)
	return err
}

func (d *Display) loadFile(ctx context.Context, path string) error {
	err := d.model.LoadFile(path)
	d.loaded(ctx, path, err)
	return err
}

func (d *Display) loaded(ctx context.Context, source string, err error) {
	name := ""
	if err == nil {
		name = d.model.Name()
	}
	observability.Display().OnLoad(ctx, source, name, err)
}

// preferredLayout returns the current system's remembered layout path. A
// remembered path that is no longer a regular file is forgotten.
func (d *Display) preferredLayout(ctx context.Context) (string, bool) {
	path, ok, err := d.prefs.Get(ctx, d.system)
	if err != nil {
		d.logger.Warn("could not read preferred layout", "system", d.system, "err", err)
		return "", false
	}
	if !ok || path == "" {
		return "", false
	}

	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		d.logger.Info("forgetting missing preferred layout", "system", d.system, "path", path)
		if err := d.prefs.Delete(ctx, d.system); err != nil {
			d.logger.Warn("could not clear preferred layout", "system", d.system, "err", err)
		}
		return "", false
	}
	return path, true
}

func (d *Display) render(ctx context.Context) *scene.Scene {
	start := time.Now()
	s := d.renderer.Render(d.model.Layout(), d.stroke)
	observability.Display().OnRender(ctx, len(s.Items), len(s.Pressed()), time.Since(start))
	return s
}
