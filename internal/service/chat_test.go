package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/classifier"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/escalation"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/eventlog"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/fallback"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/handoff"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/llm"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
)

type stubGenerator struct {
	reply   string
	flagged bool
	err     error

	mu    sync.Mutex
	calls []*llm.CompletionRequest
}

func (g *stubGenerator) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return &llm.CompletionResponse{Content: g.reply, FlaggedForHandoff: g.flagged}, nil
}

func (g *stubGenerator) Name() string { return "stub" }

type stubChannel struct {
	mu     sync.Mutex
	opened []string
}

func (c *stubChannel) Open(_ context.Context, sessionID string, topic model.Topic, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened = append(c.opened, sessionID+"/"+string(topic)+"/"+reason)
	return nil
}

func newTestChatService(gen llm.Client, store eventlog.Store, ch handoff.Channel) *ChatService {
	if store == nil {
		store = eventlog.NewMemoryStore()
	}
	if ch == nil {
		ch = &stubChannel{}
	}
	return NewChatService(
		classifier.New(),
		escalation.New(),
		fallback.NewCatalog(),
		gen,
		store,
		ch,
		0,
		logger.NewNop(),
	)
}

func TestSendMessagePrimaryRoute(t *testing.T) {
	gen := &stubGenerator{reply: "Warm milk before bed can help."}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)

	resp, err := svc.SendMessage(context.Background(), "sess-1", &model.SendMessageRequest{
		Message: "I cannot sleep at night",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Reply != gen.reply {
		t.Errorf("reply = %q, want generator reply", resp.Reply)
	}
	if resp.Routed != model.RoutePrimary {
		t.Errorf("routed = %q, want %q", resp.Routed, model.RoutePrimary)
	}
	if resp.Topic != model.TopicSleep {
		t.Errorf("topic = %q, want sleep", resp.Topic)
	}
	if resp.TurnCount != 1 {
		t.Errorf("turn count = %d, want 1", resp.TurnCount)
	}
	if resp.Escalation != nil {
		t.Errorf("unexpected escalation: %+v", resp.Escalation)
	}

	events, err := store.Query(context.Background(), eventlog.Window{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("stored %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.SessionID != "sess-1" || ev.Topic != model.TopicSleep || ev.Routed != model.RoutePrimary {
		t.Errorf("event = %+v", ev)
	}
	if ev.HandoffTriggered {
		t.Error("handoff flagged on a plain sleep question")
	}
	if ev.ID == "" {
		t.Error("event ID not assigned")
	}
}

func TestSendMessageFallbackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)

	resp, err := svc.SendMessage(context.Background(), "sess-1", &model.SendMessageRequest{
		Message: "what should I eat for breakfast",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Routed != model.RouteFallback {
		t.Errorf("routed = %q, want fallback", resp.Routed)
	}
	if resp.Reply == "" {
		t.Error("fallback reply is empty")
	}

	events, _ := store.Query(context.Background(), eventlog.Window{})
	if len(events) != 1 || events[0].Routed != model.RouteFallback {
		t.Errorf("events = %+v, want one fallback-routed event", events)
	}
}

func TestSendMessageNoGeneratorConfigured(t *testing.T) {
	svc := newTestChatService(nil, nil, nil)

	resp, err := svc.SendMessage(context.Background(), "sess-1", &model.SendMessageRequest{
		Message: "hello there",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Routed != model.RouteFallback {
		t.Errorf("routed = %q, want fallback", resp.Routed)
	}
}

func TestSendMessageEmergencyEscalates(t *testing.T) {
	gen := &stubGenerator{reply: "Please call for help right away."}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)

	resp, err := svc.SendMessage(context.Background(), "sess-1", &model.SendMessageRequest{
		Message: "she has chest pain and cannot breathe",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Escalation == nil || !resp.Escalation.ShouldRecommend {
		t.Fatal("expected escalation recommendation")
	}
	if resp.Escalation.Urgency != string(escalation.UrgencyHigh) {
		t.Errorf("urgency = %q, want high", resp.Escalation.Urgency)
	}
	if resp.Escalation.Reason != string(escalation.ReasonEmergency) {
		t.Errorf("reason = %q, want emergency", resp.Escalation.Reason)
	}

	events, _ := store.Query(context.Background(), eventlog.Window{})
	if len(events) != 1 || !events[0].HandoffTriggered {
		t.Errorf("emergency event not marked handoff_triggered: %+v", events)
	}
}

func TestSendMessageGeneratorFlaggedHandoff(t *testing.T) {
	gen := &stubGenerator{reply: "You should speak with our staff.", flagged: true}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)

	resp, err := svc.SendMessage(context.Background(), "sess-1", &model.SendMessageRequest{
		Message: "can you help me with something",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Escalation == nil || !resp.Escalation.ShouldRecommend {
		t.Fatal("generator flag should surface as an escalation")
	}
	if resp.Escalation.Reason != "generator_flagged" {
		t.Errorf("reason = %q, want generator_flagged", resp.Escalation.Reason)
	}

	events, _ := store.Query(context.Background(), eventlog.Window{})
	if len(events) != 1 || !events[0].HandoffTriggered {
		t.Error("generator-flagged event not marked handoff_triggered")
	}
}

func TestSendMessageTurnCountPerSession(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	svc := newTestChatService(gen, nil, nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		resp, err := svc.SendMessage(ctx, "sess-a", &model.SendMessageRequest{Message: "hello"})
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if resp.TurnCount != i {
			t.Errorf("sess-a turn %d reported as %d", i, resp.TurnCount)
		}
	}

	resp, err := svc.SendMessage(ctx, "sess-b", &model.SendMessageRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.TurnCount != 1 {
		t.Errorf("sess-b turn count = %d, want 1 (sessions must not share state)", resp.TurnCount)
	}

	svc.ResetSession("sess-a")
	resp, err = svc.SendMessage(ctx, "sess-a", &model.SendMessageRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.TurnCount != 1 {
		t.Errorf("turn count after reset = %d, want 1", resp.TurnCount)
	}
}

func TestSendMessageHistorySentToGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "reply"}
	svc := newTestChatService(gen, nil, nil)
	ctx := context.Background()

	if _, err := svc.SendMessage(ctx, "sess-1", &model.SendMessageRequest{Message: "first"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := svc.SendMessage(ctx, "sess-1", &model.SendMessageRequest{Message: "second"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if len(gen.calls) != 2 {
		t.Fatalf("generator called %d times, want 2", len(gen.calls))
	}
	second := gen.calls[1].Messages
	if len(second) != 3 {
		t.Fatalf("second call carried %d messages, want 3 (user, assistant, user)", len(second))
	}
	if second[0].Content != "first" || second[1].Content != "reply" || second[2].Content != "second" {
		t.Errorf("history = %+v", second)
	}
}

func TestSendMessageLanguageResolution(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)
	ctx := context.Background()

	// Explicit language wins.
	if _, err := svc.SendMessage(ctx, "s1", &model.SendMessageRequest{Message: "hello", Language: "th"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	// Unset language is detected from script.
	if _, err := svc.SendMessage(ctx, "s2", &model.SendMessageRequest{Message: "นอนไม่หลับ"}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	events, _ := store.Query(ctx, eventlog.Window{})
	if len(events) != 2 {
		t.Fatalf("stored %d events, want 2", len(events))
	}
	byType := map[string]model.Language{}
	for _, ev := range events {
		byType[ev.SessionID] = ev.Language
	}
	if byType["s1"] != model.LanguageThai {
		t.Errorf("s1 language = %q, want th", byType["s1"])
	}
	if byType["s2"] != model.LanguageThai {
		t.Errorf("s2 language = %q, want th (Thai script detected)", byType["s2"])
	}
}

func TestSendMessageSnippetTruncation(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	store := eventlog.NewMemoryStore()
	svc := newTestChatService(gen, store, nil)

	long := strings.Repeat("a", 300)
	if _, err := svc.SendMessage(context.Background(), "s1", &model.SendMessageRequest{Message: long}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	events, _ := store.Query(context.Background(), eventlog.Window{})
	if got := len([]rune(events[0].TextSnippet)); got > model.SnippetMaxLen {
		t.Errorf("snippet length = %d, want <= %d", got, model.SnippetMaxLen)
	}
}

func TestOpenHandoff(t *testing.T) {
	ch := &stubChannel{}
	svc := newTestChatService(nil, nil, ch)

	err := svc.OpenHandoff(context.Background(), "sess-1", &model.HandoffRequest{
		Topic:  "medication",
		Reason: "complex_topic",
	})
	if err != nil {
		t.Fatalf("OpenHandoff: %v", err)
	}
	if len(ch.opened) != 1 || ch.opened[0] != "sess-1/medication/complex_topic" {
		t.Errorf("opened = %v", ch.opened)
	}

	// Unknown topics degrade to general rather than failing.
	if err := svc.OpenHandoff(context.Background(), "sess-1", &model.HandoffRequest{Topic: "bogus"}); err != nil {
		t.Fatalf("OpenHandoff with unknown topic: %v", err)
	}
	if got := ch.opened[1]; !strings.HasPrefix(got, "sess-1/general/") {
		t.Errorf("unknown topic routed as %q, want general", got)
	}
}

func TestSendMessageConcurrentSessions(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	svc := newTestChatService(gen, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := "sess-" + string(rune('a'+n%5))
			if _, err := svc.SendMessage(context.Background(), session, &model.SendMessageRequest{Message: "hello"}); err != nil {
				t.Errorf("SendMessage: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
