// Package server exposes the translator over a small JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emoji"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/translate"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves translations from a translate.Session.
type Server struct {
	session *translate.Session
	dict    atomic.Pointer[dictionary.Dictionary]
	logger  *slog.Logger
	mux     *http.ServeMux

	// Translators for a policy other than the session's, keyed by the
	// maps they were built from so a reload invalidates them.
	mu       sync.Mutex
	variants map[variantKey]*translate.Translator

	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	translations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	entries      prometheus.Gauge
}

type variantKey struct {
	maps   *dictionary.Maps
	policy emojify.Policy
}

// New creates a server. d is the dictionary session was compiled from.
func New(session *translate.Session, d *dictionary.Dictionary, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	s := &Server{
		session:  session,
		logger:   logger,
		mux:      http.NewServeMux(),
		variants: make(map[variantKey]*translate.Translator),
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emojify_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		translations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emojify_translations_total",
			Help: "Translations by direction and policy.",
		}, []string{"direction", "policy"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emojify_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		entries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "emojify_dictionary_entries",
			Help: "Entries in the loaded dictionary.",
		}),
	}
	s.SetDictionary(d)

	s.handle("POST /api/translate", s.handleTranslate)
	s.handle("GET /api/segment", s.handleSegment)
	s.handle("GET /api/lookup", s.handleLookup)
	s.handle("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return s
}

// SetDictionary records the dictionary behind the session's current
// translator, used by lookups.
func (s *Server) SetDictionary(d *dictionary.Dictionary) {
	if d == nil {
		d = dictionary.New()
	}
	s.dict.Store(d)
	s.entries.Set(float64(d.Len()))
}

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID(s.mux).ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// handle registers h under pattern with metrics.
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	route := pattern[strings.IndexByte(pattern, ' ')+1:]
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		s.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.requests.WithLabelValues(route, fmt.Sprint(sw.code)).Inc()
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"code", sw.code,
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}

// TranslateRequest is the body of POST /api/translate. Text is kept raw so
// that a value which is not a string can be rejected.
type TranslateRequest struct {
	Text      json.RawMessage `json:"text"`
	Direction string          `json:"direction"`
	Policy    string          `json:"policy,omitempty"`
}

// TranslateResponse is returned by POST /api/translate.
type TranslateResponse struct {
	Result    string `json:"result"`
	Direction string `json:"direction"`
	Policy    string `json:"policy"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	text, err := stringValue(req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	dir, err := emojify.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tr, err := s.translator(req.Policy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := tr.Translate(dir, text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.translations.WithLabelValues(dir.String(), tr.Policy().String()).Inc()

	writeJSON(w, http.StatusOK, TranslateResponse{
		Result:    result,
		Direction: dir.String(),
		Policy:    tr.Policy().String(),
	})
}

// stringValue accepts only a JSON string.
func stringValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w: text must be a string", emojify.ErrInvalidInput)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %v", emojify.ErrInvalidInput, err)
	}
	return s, nil
}

// translator returns the session's translator, or one built from the same
// maps with the requested policy.
func (s *Server) translator(policyName string) (*translate.Translator, error) {
	cur := s.session.Translator()
	if policyName == "" {
		return cur, nil
	}
	policy, err := emojify.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}
	if policy == cur.Policy() {
		return cur, nil
	}

	key := variantKey{maps: cur.Maps(), policy: policy}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tr, ok := s.variants[key]; ok {
		return tr, nil
	}
	tr, err := translate.New(cur.Maps(), translate.WithPolicy(policy))
	if err != nil {
		return nil, err
	}
	// Only the current maps are worth keeping.
	for k := range s.variants {
		if k.maps != key.maps {
			delete(s.variants, k)
		}
	}
	s.variants[key] = tr
	return tr, nil
}

// SegmentResponse is returned by GET /api/segment.
type SegmentResponse struct {
	Segments []emojify.Segment `json:"segments"`
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	segments := emoji.Segment(r.URL.Query().Get("text"))
	if segments == nil {
		segments = []emojify.Segment{}
	}
	writeJSON(w, http.StatusOK, SegmentResponse{Segments: segments})
}

// LookupResponse is returned by GET /api/lookup.
type LookupResponse struct {
	Query      string   `json:"query"`
	Emoji      string   `json:"emoji"`
	Definition string   `json:"definition"`
	Full       string   `json:"full_definition,omitempty"`
	Context    []string `json:"context,omitempty"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: missing q", emojify.ErrInvalidInput))
		return
	}

	maps := s.session.Translator().Maps()
	e := q
	if owner, ok := maps.Emoji(strings.ToLower(q)); ok {
		e = owner
	}
	def, ok := maps.Text(e)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no dictionary entry for %q", q))
		return
	}

	resp := LookupResponse{Query: q, Emoji: e, Definition: def}
	if entry, ok := s.dict.Load().Lookup(e); ok {
		resp.Full = entry.Definition
		resp.Context = entry.ContextKeys()
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string           `json:"status"`
	Entries int              `json:"entries"`
	Maps    dictionary.Stats `json:"maps"`
	Policy  string           `json:"policy"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	tr := s.session.Translator()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Entries: s.dict.Load().Len(),
		Maps:    tr.Maps().Stats(),
		Policy:  tr.Policy().String(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

// requestID tags every request and response with an X-Request-ID,
// keeping a valid incoming one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		r.Header.Set("X-Request-ID", id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
