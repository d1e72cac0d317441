package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/analytics"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/classifier"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/escalation"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/eventlog"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/fallback"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/llm"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/service"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
)

type echoGenerator struct{}

func (echoGenerator) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	last := req.Messages[len(req.Messages)-1]
	return &llm.CompletionResponse{Content: "you said: " + last.Content}, nil
}

func (echoGenerator) Name() string { return "echo" }

type noopChannel struct{}

func (noopChannel) Open(context.Context, string, model.Topic, string) error { return nil }

func newTestRouter(store eventlog.Store) http.Handler {
	log := logger.NewNop()
	chatSvc := service.NewChatService(
		classifier.New(), escalation.New(), fallback.NewCatalog(),
		echoGenerator{}, store, noopChannel{}, time.Second, log,
	)
	analyticsSvc := service.NewAnalyticsService(store, analytics.NewEngine(time.UTC), 7, 90, log)

	chat := NewChatHandler(chatSvc, log)
	admin := NewAnalyticsHandler(analyticsSvc, log)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Post("/messages", chat.Send)
			r.Post("/handoff", chat.Handoff)
		})
		r.Route("/admin/analytics", func(r chi.Router) {
			r.Get("/", admin.Report)
			r.Get("/export", admin.Export)
		})
	})
	return r
}

func TestSendEndpoint(t *testing.T) {
	store := eventlog.NewMemoryStore()
	router := newTestRouter(store)

	body := `{"message":"I cannot sleep at night"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/sess-1/messages", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp model.SendMessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Topic != model.TopicSleep {
		t.Errorf("topic = %q, want sleep", resp.Topic)
	}
	if resp.Routed != model.RoutePrimary {
		t.Errorf("routed = %q, want primary", resp.Routed)
	}
	if !strings.Contains(resp.Reply, "I cannot sleep at night") {
		t.Errorf("reply = %q, want echo of the message", resp.Reply)
	}

	events, _ := store.Query(context.Background(), eventlog.Window{})
	if len(events) != 1 {
		t.Errorf("stored %d events, want 1", len(events))
	}
}

func TestSendEndpointValidation(t *testing.T) {
	router := newTestRouter(eventlog.NewMemoryStore())

	tests := []struct {
		name string
		path string
		body string
	}{
		{"empty message", "/api/v1/sessions/sess-1/messages", `{"message":""}`},
		{"bad json", "/api/v1/sessions/sess-1/messages", `{`},
		{"bad language", "/api/v1/sessions/sess-1/messages", `{"message":"hi","language":"fr"}`},
		{"bad session id", "/api/v1/sessions/bad%20id/messages", `{"message":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandoffEndpoint(t *testing.T) {
	router := newTestRouter(eventlog.NewMemoryStore())

	body := `{"topic":"medication","reason":"complex_topic"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/sess-1/handoff", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	store := eventlog.NewMemoryStore()
	store.Append(context.Background(), model.Event{
		ID: "1", SessionID: "s1", Timestamp: time.Now().Add(-time.Hour),
		Topic: model.TopicSleep, Language: model.LanguageEnglish, Routed: model.RoutePrimary,
	})
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics/?days=7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report model.AnalyticsReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Usage.TotalEvents != 1 {
		t.Errorf("total events = %d, want 1", report.Usage.TotalEvents)
	}
}

func TestAnalyticsEndpointBadDays(t *testing.T) {
	router := newTestRouter(eventlog.NewMemoryStore())

	for _, days := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics/?days="+days, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("days=%s: status = %d, want 400", days, rec.Code)
		}
	}
}

func TestExportEndpoint(t *testing.T) {
	store := eventlog.NewMemoryStore()
	store.Append(context.Background(), model.Event{
		ID: "1", SessionID: "s1", Timestamp: time.Now().Add(-time.Hour),
		TextSnippet: "cannot sleep", Topic: model.TopicSleep,
		Language: model.LanguageEnglish, Routed: model.RoutePrimary,
	})
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/analytics/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "cannot sleep") {
		t.Errorf("export body missing event row:\n%s", rec.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}

	// No NATS client wired: not ready.
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
}
