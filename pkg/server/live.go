package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/host"
	"github.com/matzehuels/stenoboard/pkg/render/sink"
)

const liveWriteTimeout = 5 * time.Second

// hub signals live subscribers that a display changed. Signals coalesce:
// a slow subscriber gets the newest frame, not every frame.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan struct{}]struct{})}
}

func (h *hub) subscribe(id string) chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan struct{}]struct{})
	}
	h.subs[id][ch] = struct{}{}
	return ch
}

func (h *hub) unsubscribe(id string, ch chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[id][ch]; ok {
		delete(h.subs[id], ch)
		if len(h.subs[id]) == 0 {
			delete(h.subs, id)
		}
	}
}

func (h *hub) publish(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[id] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// closeAll ends every subscription to id.
func (h *hub) closeAll(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[id] {
		close(ch)
	}
	delete(h.subs, id)
}

// subscribe registers a live subscriber for id. It fails once the display
// is gone; remove holds s.mu while closing subscriptions, so a subscriber
// added here is always closed by a later delete.
func (s *Server) subscribe(id string) (chan struct{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.displays[id]; !ok {
		return nil, false
	}
	return s.hub.subscribe(id), true
}

// handleLive streams a display's scene as JSON frames over a websocket.
// Text messages from the client are engine events and are applied to the
// display like the event stream's lines. Load events are refused because
// they name paths on the server.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.lookup(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "display", id, "err", err)
		return
	}
	defer conn.Close()

	frames, ok := s.subscribe(id)
	if !ok {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "display deleted")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(liveWriteTimeout))
		return
	}
	defer s.hub.unsubscribe(id, frames)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.readEvents(ctx, cancel, conn, id, d)

	logger := s.logger.With("display", id)
	logger.Debug("live subscriber connected")
	defer logger.Debug("live subscriber gone")

	if err := writeFrame(conn, d); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-frames:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "display deleted")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(liveWriteTimeout))
				return
			}
			if err := writeFrame(conn, d); err != nil {
				logger.Debug("live write failed", "err", err)
				return
			}
		}
	}
}

func (s *Server) readEvents(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, id string, d *display.Display) {
	defer cancel()
	logger := s.logger.With("display", id)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		ev, err := host.Decode(msg)
		if err != nil {
			logger.Warn("skipping live event", "err", err)
			continue
		}
		if ev.Type == host.TypeLoad {
			logger.Warn("skipping live event", "id", ev.ID, "err", "load events name server paths; use PUT /layout")
			continue
		}
		host.Apply(ctx, d, ev, logger)
		s.hub.publish(id)
	}
}

func writeFrame(conn *websocket.Conn, d *display.Display) error {
	data, err := sink.RenderJSON(d.Scene(), sink.WithJSONSystem(d.System()))
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}
