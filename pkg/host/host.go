// Package host reads engine events as JSON lines and applies them to a
// display in order.
//
// Each line is one event object:
//
//	{"type":"config","system_name":"English Stenotype","numbers":{"1-":"S-"},"number_key":"#"}
//	{"type":"stroke","keys":["S-","T-"]}
//	{"type":"load","path":"/home/me/layouts/custom.json"}
//	{"type":"reset"}
//
// Blank lines are skipped. Lines that are not valid events are logged and
// skipped; they never stop the stream. Events without an "id" get a random
// one so log lines and frames can be correlated.
package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

// Event types.
const (
	TypeConfig = "config"
	TypeStroke = "stroke"
	TypeLoad   = "load"
	TypeReset  = "reset"
)

// maxLine bounds a single event line.
const maxLine = 1 << 20

// Event is one engine event.
type Event struct {
	ID         string            `json:"id,omitempty"`
	Type       string            `json:"type"`
	SystemName string            `json:"system_name,omitempty"`
	Numbers    map[string]string `json:"numbers,omitempty"`
	NumberKey  string            `json:"number_key,omitempty"`
	Keys       []string          `json:"keys,omitempty"`
	Path       string            `json:"path,omitempty"`
}

// Config returns the display configuration carried by a config event.
func (e Event) Config() display.Config {
	return display.Config{SystemName: e.SystemName, Numbers: e.Numbers, NumberKey: e.NumberKey}
}

// Decode parses one event line.
func Decode(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode event")
	}
	switch ev.Type {
	case TypeConfig, TypeStroke, TypeReset:
	case TypeLoad:
		if ev.Path == "" {
			return Event{}, errors.New(errors.ErrCodeInvalidInput, "load event without path")
		}
	default:
		return Event{}, errors.New(errors.ErrCodeInvalidFormat, "unknown event type %q", ev.Type)
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return ev, nil
}

// Target receives events.
type Target interface {
	OnConfigChanged(ctx context.Context, cfg display.Config)
	OnStroke(ctx context.Context, keys []string) *scene.Scene
	Load(ctx context.Context, path string) error
	Reset(ctx context.Context)
	Scene() *scene.Scene
}

var _ Target = (*display.Display)(nil)

// Option configures [Run].
type Option func(*runner)

type runner struct {
	logger *log.Logger
	after  func(context.Context, Event, *scene.Scene) error
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(r *runner) { r.logger = l } }

// WithAfter calls fn after each applied event with the resulting scene.
// An error from fn stops the run.
func WithAfter(fn func(ctx context.Context, ev Event, s *scene.Scene) error) Option {
	return func(r *runner) { r.after = fn }
}

// Stats counts what a run did.
type Stats struct {
	Applied int
	Skipped int
}

// Run applies the events read from r to t until EOF or ctx is done.
// Reading blocks; cancellation is noticed between lines.
func Run(ctx context.Context, r io.Reader, t Target, opts ...Option) (Stats, error) {
	rn := runner{}
	for _, opt := range opts {
		opt(&rn)
	}
	if rn.logger == nil {
		rn.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	var st Stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for line := 1; sc.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		raw := sc.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		ev, err := Decode(raw)
		if err != nil {
			st.Skipped++
			rn.logger.Warn("skipping event", "line", line, "err", err)
			continue
		}

		s := Apply(ctx, t, ev, rn.logger)
		st.Applied++
		if rn.after != nil {
			if err := rn.after(ctx, ev, s); err != nil {
				return st, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return st, errors.Wrap(errors.ErrCodeIO, err, "read events")
	}
	return st, ctx.Err()
}

// Apply dispatches one event and returns the scene it produced.
func Apply(ctx context.Context, t Target, ev Event, logger *log.Logger) *scene.Scene {
	logger = logger.With("event", ev.ID)
	switch ev.Type {
	case TypeConfig:
		logger.Debug("config", "system", ev.SystemName)
		t.OnConfigChanged(ctx, ev.Config())
	case TypeStroke:
		logger.Debug("stroke", "keys", ev.Keys)
		return t.OnStroke(ctx, ev.Keys)
	case TypeLoad:
		if err := t.Load(ctx, ev.Path); err != nil {
			logger.Warn("layout load failed", "path", ev.Path, "err", err)
		}
	case TypeReset:
		t.Reset(ctx)
	}
	return t.Scene()
}
