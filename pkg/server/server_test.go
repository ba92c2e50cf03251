package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/stenoboard/pkg/cache"
	"github.com/matzehuels/stenoboard/pkg/observability"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func create(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/displays", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", w.Code, w.Body)
	}
	return decode[DisplayResponse](t, w).ID
}

func TestHealth(t *testing.T) {
	s := New()
	w := do(t, s, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Server"), "stenoboard/") {
		t.Errorf("Server header = %q", w.Header().Get("Server"))
	}
}

func TestDisplayLifecycle(t *testing.T) {
	s := New()
	id := create(t, s)

	w := do(t, s, http.MethodGet, "/displays/"+id, "")
	got := decode[DisplayResponse](t, w)
	if got.Layout != "English Stenotype" || got.System != "" {
		t.Errorf("new display = %+v", got)
	}

	w = do(t, s, http.MethodPost, "/displays/"+id+"/config",
		`{"system_name":"English Stenotype","numbers":{"1-":"S-","-9":"-T"},"number_key":"#"}`)
	if w.Code != http.StatusOK || decode[DisplayResponse](t, w).System != "English Stenotype" {
		t.Fatalf("config: %d %s", w.Code, w.Body)
	}

	w = do(t, s, http.MethodPost, "/displays/"+id+"/stroke", `{"keys":["1-","-9"]}`)
	if active := decode[DisplayResponse](t, w).Active; !slices.Equal(active, []string{"#", "-T", "S-"}) {
		t.Errorf("active = %v", active)
	}

	w = do(t, s, http.MethodPost, "/displays/"+id+"/reset", "")
	if active := decode[DisplayResponse](t, w).Active; len(active) != 0 {
		t.Errorf("active after reset = %v", active)
	}

	w = do(t, s, http.MethodGet, "/displays", "")
	if ids := decode[map[string][]string](t, w)["displays"]; !slices.Equal(ids, []string{id}) {
		t.Errorf("list = %v", ids)
	}

	if w := do(t, s, http.MethodDelete, "/displays/"+id, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(t, s, http.MethodGet, "/displays/"+id, ""); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", w.Code)
	}
	if w := do(t, s, http.MethodDelete, "/displays/"+id, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestPutLayout(t *testing.T) {
	s := New()
	id := create(t, s)

	w := do(t, s, http.MethodPut, "/displays/"+id+"/layout", `{"name":"Mini","keys":[{"name":"S-"},{"name":"T-","x":50}]}`)
	if w.Code != http.StatusOK || decode[DisplayResponse](t, w).Layout != "Mini" {
		t.Fatalf("put layout: %d %s", w.Code, w.Body)
	}

	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", `{"name":`, "INVALID_JSON"},
		{"schema", `{"name":"Bad","keys":"nope"}`, "SCHEMA_VIOLATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPut, "/displays/"+id+"/layout", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if code := decode[errorResponse](t, w).Error.Code; string(code) != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
			w = do(t, s, http.MethodGet, "/displays/"+id, "")
			if name := decode[DisplayResponse](t, w).Layout; name != "Mini" {
				t.Errorf("layout after failure = %q, want Mini", name)
			}
		})
	}
}

func TestBadRequests(t *testing.T) {
	s := New()
	id := create(t, s)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"unknown display", http.MethodPost, "/displays/nope/stroke", `{"keys":[]}`, http.StatusNotFound},
		{"bad stroke body", http.MethodPost, "/displays/" + id + "/stroke", `[`, http.StatusBadRequest},
		{"bad config body", http.MethodPost, "/displays/" + id + "/config", `"x"`, http.StatusBadRequest},
		{"bad width", http.MethodGet, "/displays/" + id + "/frame.svg?width=-1", "", http.StatusBadRequest},
		{"bad height", http.MethodGet, "/displays/" + id + "/frame.png?height=abc", "", http.StatusBadRequest},
		{"unknown format", http.MethodGet, "/displays/" + id + "/frame.gif", "", http.StatusNotAcceptable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, s, tt.method, tt.target, tt.body); w.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
		})
	}
}

func TestFrames(t *testing.T) {
	s := New()
	id := create(t, s)
	do(t, s, http.MethodPost, "/displays/"+id+"/stroke", `{"keys":["S-"]}`)

	tests := []struct {
		format string
		ctype  string
		check  func([]byte) bool
	}{
		{"svg", "image/svg+xml", func(b []byte) bool { return bytes.Contains(b, []byte(`width="400"`)) }},
		{"png", "image/png", func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) }},
		{"json", "application/json", func(b []byte) bool { return bytes.Contains(b, []byte(`"pressed":["S-"]`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := do(t, s, http.MethodGet, "/displays/"+id+"/frame."+tt.format+"?width=400&height=150", "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body)
			}
			if ct := w.Header().Get("Content-Type"); ct != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", ct, tt.ctype)
			}
			if !tt.check(w.Body.Bytes()) {
				t.Errorf("unexpected body %.120q", w.Body.String())
			}
		})
	}
}

type countingCacheHooks struct {
	mu               sync.Mutex
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestPNGFrameCache(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(WithFrameCache(fc, time.Minute))
	id := create(t, s)

	first := do(t, s, http.MethodGet, "/displays/"+id+"/frame.png", "")
	second := do(t, s, http.MethodGet, "/displays/"+id+"/frame.png", "")
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached frame differs")
	}

	do(t, s, http.MethodPost, "/displays/"+id+"/stroke", `{"keys":["S-"]}`)
	do(t, s, http.MethodGet, "/displays/"+id+"/frame.png", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.hits != 1 || hooks.misses != 2 || hooks.sets != 2 {
		t.Errorf("hits=%d misses=%d sets=%d, want 1/2/2", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestPNGFrameCacheSeesAlphaChange(t *testing.T) {
	const (
		opaque = `{"name":"Red","keys":[{"name":"S-","color":"#FFFF0000"}]}`
		faint  = `{"name":"Red","keys":[{"name":"S-","color":"#10FF0000"}]}`
	)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cached := New(WithFrameCache(fc, time.Minute))
	id := create(t, cached)

	do(t, cached, http.MethodPut, "/displays/"+id+"/layout", opaque)
	before := do(t, cached, http.MethodGet, "/displays/"+id+"/frame.png", "")
	do(t, cached, http.MethodPut, "/displays/"+id+"/layout", faint)
	after := do(t, cached, http.MethodGet, "/displays/"+id+"/frame.png", "")
	if bytes.Equal(before.Body.Bytes(), after.Body.Bytes()) {
		t.Fatal("frame unchanged after alpha-only layout change")
	}

	plain := New()
	pid := create(t, plain)
	do(t, plain, http.MethodPut, "/displays/"+pid+"/layout", faint)
	want := do(t, plain, http.MethodGet, "/displays/"+pid+"/frame.png", "")
	if !bytes.Equal(after.Body.Bytes(), want.Body.Bytes()) {
		t.Error("cached frame differs from a fresh render of the faint layout")
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestHTTPHooksSeeRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := New()
	id := create(t, s)
	do(t, s, http.MethodGet, "/displays/"+id+"/frame.json", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if want := []string{"/displays/", "/displays/{id}/frame.{format}"}; !slices.Equal(hooks.routes, want) {
		t.Errorf("routes = %v, want %v", hooks.routes, want)
	}
	if !slices.Equal(hooks.status, []int{http.StatusCreated, http.StatusOK}) {
		t.Errorf("status = %v", hooks.status)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) []string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var frame struct {
		Pressed []string `json:"pressed"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode frame %q: %v", data, err)
	}
	return frame.Pressed
}

func TestLive(t *testing.T) {
	s := New()
	ts := httptest.NewServer(s)
	defer ts.Close()
	id := create(t, s)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/displays/" + id + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if got := readFrame(t, conn); len(got) != 0 {
		t.Fatalf("initial pressed = %v", got)
	}

	resp, err := http.Post(ts.URL+"/displays/"+id+"/stroke", "application/json", strings.NewReader(`{"keys":["S-"]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := readFrame(t, conn); !slices.Equal(got, []string{"S-"}) {
		t.Errorf("after POST stroke pressed = %v", got)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"stroke","keys":["T-"]}`)); err != nil {
		t.Fatal(err)
	}
	if got := readFrame(t, conn); !slices.Equal(got, []string{"T-"}) {
		t.Errorf("after live stroke pressed = %v", got)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/displays/"+id, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("after delete err = %v, want going-away close", err)
	}
}

func TestLiveUnknownDisplay(t *testing.T) {
	s := New()
	w := do(t, s, http.MethodGet, "/displays/nope/live", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestSubscribeAfterDelete(t *testing.T) {
	s := New()
	id := create(t, s)

	frames, ok := s.subscribe(id)
	if !ok {
		t.Fatal("subscribe to live display failed")
	}
	if !s.remove(id) {
		t.Fatal("remove failed")
	}
	if _, open := <-frames; open {
		t.Error("subscription still open after delete")
	}

	// A request that looked the display up before the delete must not
	// subscribe after it.
	if _, ok := s.subscribe(id); ok {
		t.Error("subscribed to deleted display")
	}
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if len(s.hub.subs) != 0 {
		t.Errorf("subs = %v, want empty", s.hub.subs)
	}
}

func TestHubCoalesces(t *testing.T) {
	h := newHub()
	ch := h.subscribe("a")
	h.publish("a")
	h.publish("a")
	if len(ch) != 1 {
		t.Errorf("pending signals = %d, want 1", len(ch))
	}
	h.unsubscribe("a", ch)
	h.publish("a")
	h.closeAll("a")
	if len(h.subs) != 0 {
		t.Errorf("subs = %v, want empty", h.subs)
	}
}
