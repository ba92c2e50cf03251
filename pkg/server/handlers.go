package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stenoboard/pkg/buildinfo"
	"github.com/matzehuels/stenoboard/pkg/cache"
	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/render/sink"
)

// DisplayResponse describes one display.
type DisplayResponse struct {
	ID string `json:"id"`
	display.State
}

// StrokeRequest is the body of a stroke event.
type StrokeRequest struct {
	Keys []string `json:"keys"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"displays": s.Len(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"displays": s.ids()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, d := s.create()
	w.Header().Set("Location", "/displays/"+id)
	writeJSON(w, http.StatusCreated, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.remove(id) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "display %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var cfg display.Config
	if err := decodeBody(r, &cfg); err != nil {
		s.writeError(w, err)
		return
	}
	d.OnConfigChanged(r.Context(), cfg)
	s.hub.publish(id)
	writeJSON(w, http.StatusOK, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleStroke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req StrokeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	d.OnStroke(r.Context(), req.Keys)
	s.hub.publish(id)
	writeJSON(w, http.StatusOK, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read layout"))
		return
	}
	if err := d.LoadJSON(r.Context(), data); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.publish(id)
	writeJSON(w, http.StatusOK, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	d.Reset(r.Context())
	s.hub.publish(id)
	writeJSON(w, http.StatusOK, DisplayResponse{ID: id, State: d.State()})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	d, err := s.lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	width, height, err := s.frameSize(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sc := d.Scene()
	switch format := chi.URLParam(r, "format"); format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(sink.RenderSVG(sc, sink.WithSize(float64(width), float64(height)), sink.WithKeyIDs()))
	case "json":
		data, err := sink.RenderJSON(sc, sink.WithJSONSystem(d.System()))
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	case "png":
		data, err := s.pngFrame(r, d, width, height)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	default:
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "unsupported frame format %q", format))
	}
}

// pngFrame rasterizes the display's scene, reusing a cached frame when the
// scene's exported geometry and size are unchanged.
func (s *Server) pngFrame(r *http.Request, d *display.Display, width, height int) ([]byte, error) {
	sc := d.Scene()
	geometry, err := sink.RenderJSON(sc)
	if err != nil {
		return nil, err
	}
	key := s.keyer.FrameKey(cache.Hash(geometry), cache.FrameKeyOpts{Format: "png", Width: width, Height: height})

	ctx := r.Context()
	if data, ok, err := s.frames.Get(ctx, key); err == nil && ok {
		return data, nil
	} else if err != nil {
		s.logger.Warn("frame cache read failed", "err", err)
	}

	data, err := sink.RenderPNG(sc, sink.WithPNGSize(width, height))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
	}
	if err := s.frames.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("frame cache write failed", "err", err)
	}
	return data, nil
}

func (s *Server) frameSize(r *http.Request) (int, int, error) {
	width, height := int(s.viewport.W), int(s.viewport.H)
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &width}, {"height", &height}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8192 {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer in 1..8192, got %q", p.name, v)
		}
		*p.dst = n
	}
	return width, height, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
