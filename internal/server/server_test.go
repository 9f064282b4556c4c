package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/logging"
	"github.com/f3rmion/emojify/internal/translate"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	d := dictionary.FromEntries(
		emojify.Entry{Emoji: "🔥", Definition: "fire - something intense", Context: []emojify.ContextEntry{{Key: "lit"}}},
		emojify.Entry{Emoji: "cat", Definition: "big kitty"},
		emojify.Entry{Emoji: "🐱", Definition: "cat"},
	)
	session := translate.NewSession(translate.MustNew(dictionary.Compile(d)))
	return New(session, d, logging.Discard())
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTranslate(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantResult string
		wantPolicy string
	}{
		{"text to emoji", `{"text": "I am fire today", "direction": "emoji"}`, "I am 🔥 today", "sequential"},
		{"emoji to text", `{"text": "I am 🔥 today", "direction": "text"}`, "I am fire today", "sequential"},
		{"web form name", `{"text": "lit", "direction": "textInput"}`, "🔥", "sequential"},
		{"empty text", `{"text": "", "direction": "emoji"}`, "", "sequential"},
		{"sequential cascade", `{"text": "a big kitty", "direction": "emoji"}`, "a 🐱", "sequential"},
		{"single pass", `{"text": "a big kitty", "direction": "emoji", "policy": "single-pass"}`, "a cat", "single-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/translate", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			resp := decode[TranslateResponse](t, rec)
			if resp.Result != tt.wantResult {
				t.Errorf("Result = %q, want %q", resp.Result, tt.wantResult)
			}
			if resp.Policy != tt.wantPolicy {
				t.Errorf("Policy = %q, want %q", resp.Policy, tt.wantPolicy)
			}
		})
	}
}

func TestTranslateRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"number text", `{"text": 42, "direction": "emoji"}`, "text must be a string"},
		{"null text", `{"text": null, "direction": "emoji"}`, "text must be a string"},
		{"missing text", `{"direction": "emoji"}`, "text must be a string"},
		{"object text", `{"text": {"a": 1}, "direction": "text"}`, "text must be a string"},
		{"unknown direction", `{"text": "x", "direction": "sideways"}`, "unknown translation direction"},
		{"unknown policy", `{"text": "x", "direction": "emoji", "policy": "random"}`, "unknown substitution policy"},
		{"malformed body", `{"text":`, "decoding request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/translate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decode[ErrorResponse](t, rec)
			if !strings.Contains(resp.Error, tt.want) {
				t.Errorf("Error = %q, want it to contain %q", resp.Error, tt.want)
			}
		})
	}
}

func TestTranslateMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/translate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestSegment(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/segment?text=hi%F0%9F%94%A5%F0%9F%94%A5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"kind":"emoji"`) {
		t.Errorf("body = %s, want kinds rendered by name", rec.Body.String())
	}

	resp := decode[SegmentResponse](t, rec)
	want := []string{"hi", "🔥", "🔥"}
	if len(resp.Segments) != len(want) {
		t.Fatalf("len(Segments) = %d, want %d", len(resp.Segments), len(want))
	}
	for i, seg := range resp.Segments {
		if seg.Content != want[i] {
			t.Errorf("Segments[%d].Content = %q, want %q", i, seg.Content, want[i])
		}
		wantKind := emojify.SegmentEmoji
		if i == 0 {
			wantKind = emojify.SegmentText
		}
		if seg.Kind != wantKind {
			t.Errorf("Segments[%d].Kind = %v, want %v", i, seg.Kind, wantKind)
		}
	}

	empty := do(t, s, http.MethodGet, "/api/segment", "")
	if !strings.Contains(empty.Body.String(), `"segments":[]`) {
		t.Errorf("empty body = %s, want empty list", empty.Body.String())
	}
}

func TestLookup(t *testing.T) {
	s := newTestServer(t)

	byEmoji := decode[LookupResponse](t, do(t, s, http.MethodGet, "/api/lookup?q=%F0%9F%94%A5", ""))
	if byEmoji.Definition != "fire" || byEmoji.Full != "fire - something intense" {
		t.Errorf("lookup by emoji = %+v", byEmoji)
	}
	if len(byEmoji.Context) != 1 || byEmoji.Context[0] != "lit" {
		t.Errorf("Context = %v, want [lit]", byEmoji.Context)
	}

	byPhrase := decode[LookupResponse](t, do(t, s, http.MethodGet, "/api/lookup?q=LIT", ""))
	if byPhrase.Emoji != "🔥" {
		t.Errorf("lookup by phrase Emoji = %q, want 🔥", byPhrase.Emoji)
	}

	if rec := do(t, s, http.MethodGet, "/api/lookup?q=nothing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown lookup status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/lookup", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("empty lookup status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := decode[HealthResponse](t, do(t, s, http.MethodGet, "/healthz", ""))

	if resp.Status != "ok" || resp.Entries != 3 {
		t.Errorf("health = %+v", resp)
	}
	if resp.Maps.EmojiToText != 3 {
		t.Errorf("Maps.EmojiToText = %d, want 3", resp.Maps.EmojiToText)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID = %q, want a UUID", rec.Header().Get("X-Request-ID"))
	}

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("X-Request-ID = %q, want incoming %q", got, id)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/translate", `{"text": "fire", "direction": "emoji"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	body := rec.Body.String()
	for _, want := range []string{
		`emojify_translations_total{direction="text-to-emoji",policy="sequential"} 1`,
		`emojify_http_requests_total{code="200",route="/api/translate"} 1`,
		`emojify_dictionary_entries 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestReloadInvalidatesVariants(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/translate", `{"text": "fire", "direction": "emoji", "policy": "single-pass"}`)

	d := dictionary.FromEntries(emojify.Entry{Emoji: "🌊", Definition: "fire"})
	if _, err := s.session.Reload(d); err != nil {
		t.Fatal(err)
	}
	s.SetDictionary(d)

	rec := do(t, s, http.MethodPost, "/api/translate", `{"text": "fire", "direction": "emoji", "policy": "single-pass"}`)
	if resp := decode[TranslateResponse](t, rec); resp.Result != "🌊" {
		t.Errorf("Result after reload = %q, want 🌊", resp.Result)
	}
}
