// Package service provides business logic for the conversational signal
// pipeline.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/classifier"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/escalation"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/eventlog"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/fallback"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/handoff"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/llm"
	"github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/logger"
	"github.com/SpaceC00kies/pranara-prototype-sub001/pkg/metrics"
)

// historyLimit bounds the conversation context sent to the generator.
const historyLimit = 20

// sessionState is the per-conversation state held in memory: the user turn
// count, the per-topic fallback usage counters, and the generator context.
// Conversations have no explicit close; state for idle sessions is simply
// never touched again.
type sessionState struct {
	turnCount   int
	fallbackUse *fallback.UsageCounter
	history     []llm.ChatMessage
}

// ChatService runs the per-message pipeline: classify, advise on escalation,
// generate or fall back, and append the event record.
type ChatService struct {
	classifier *classifier.Classifier
	advisor    *escalation.Advisor
	catalog    *fallback.Catalog
	generator  llm.Client
	events     eventlog.Store
	channel    handoff.Channel
	logger     *logger.Logger
	genTimeout time.Duration

	// In-memory session state (would move to a shared store if the API
	// ever runs more than one replica).
	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewChatService creates a chat service. generator may be nil, in which
// case every reply comes from the fallback catalog.
func NewChatService(
	cls *classifier.Classifier,
	advisor *escalation.Advisor,
	catalog *fallback.Catalog,
	generator llm.Client,
	events eventlog.Store,
	channel handoff.Channel,
	genTimeout time.Duration,
	log *logger.Logger,
) *ChatService {
	if genTimeout <= 0 {
		genTimeout = 30 * time.Second
	}
	return &ChatService{
		classifier: cls,
		advisor:    advisor,
		catalog:    catalog,
		generator:  generator,
		events:     events,
		channel:    channel,
		logger:     log,
		genTimeout: genTimeout,
		sessions:   make(map[string]*sessionState),
	}
}

// SendMessage processes one user message through the full pipeline and
// returns the reply. The reply itself never fails: when the generator is
// unavailable the fallback catalog answers.
func (s *ChatService) SendMessage(ctx context.Context, sessionID string, req *model.SendMessageRequest) (*model.SendMessageResponse, error) {
	lang := resolveLanguage(req)

	state, turn := s.beginTurn(sessionID)

	cls := s.classifier.Classify(req.Message)
	advice := s.advisor.ShouldEscalate(req.Message, cls.Topic, turn)
	if advice.ShouldRecommend {
		metrics.EscalationsTotal.WithLabelValues(string(advice.Reason), string(advice.Urgency)).Inc()
	}

	reply, routed, generatorFlagged := s.reply(ctx, state, req.Message, cls.Topic, lang, turn)

	// The advisor's recommendation and the generator's own flag are OR-ed
	// here, at the caller, not inside either component.
	handoffShown := advice.ShouldRecommend || generatorFlagged

	ev := model.Event{
		ID:               uuid.New().String(),
		SessionID:        sessionID,
		Timestamp:        time.Now(),
		TextSnippet:      model.Snippet(req.Message),
		Topic:            cls.Topic,
		Language:         lang,
		HandoffTriggered: handoffShown,
		Routed:           routed,
	}
	if err := s.events.Append(ctx, ev); err != nil {
		// The reply still stands; losing one analytics record is better
		// than failing the conversation.
		s.logger.Error("failed to append event",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	metrics.MessagesTotal.WithLabelValues(string(cls.Topic), string(lang), string(routed)).Inc()

	resp := &model.SendMessageResponse{
		Reply:           reply,
		Topic:           cls.Topic,
		Confidence:      cls.Confidence,
		MatchedKeywords: cls.MatchedKeywords,
		Routed:          routed,
		TurnCount:       turn,
	}
	if advice.ShouldRecommend {
		resp.Escalation = &model.EscalationAdvice{
			ShouldRecommend: true,
			Urgency:         string(advice.Urgency),
			Reason:          string(advice.Reason),
			DisplayMessage:  advice.DisplayMessage,
		}
	} else if generatorFlagged {
		// The model asked for a human without the rule engine agreeing;
		// surface it as a low-urgency suggestion.
		resp.Escalation = &model.EscalationAdvice{
			ShouldRecommend: true,
			Urgency:         string(escalation.UrgencyLow),
			Reason:          "generator_flagged",
		}
	}

	return resp, nil
}

// OpenHandoff records that the user acted on a handoff recommendation.
func (s *ChatService) OpenHandoff(ctx context.Context, sessionID string, req *model.HandoffRequest) error {
	topic := model.Topic(req.Topic)
	if !topic.Valid() {
		topic = model.TopicGeneral
	}
	return s.channel.Open(ctx, sessionID, topic, req.Reason)
}

// ResetSession clears in-memory state for a session.
func (s *ChatService) ResetSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// beginTurn bumps the session's user-turn count and returns its state.
func (s *ChatService) beginTurn(sessionID string) (*sessionState, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		state = &sessionState{fallbackUse: fallback.NewUsageCounter()}
		s.sessions[sessionID] = state
	}
	state.turnCount++
	return state, state.turnCount
}

// reply asks the primary generator and substitutes a catalog response when
// the call fails or no generator is configured.
func (s *ChatService) reply(ctx context.Context, state *sessionState, message string, topic model.Topic, lang model.Language, turn int) (string, model.Route, bool) {
	if s.generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
		defer cancel()

		start := time.Now()
		resp, err := s.generator.Complete(genCtx, &llm.CompletionRequest{
			Messages: append(s.historySnapshot(state), llm.ChatMessage{Role: "user", Content: message}),
		})
		if err == nil {
			metrics.RecordGeneration(s.generator.Name(), "success",
				time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
			s.recordTurn(state, message, resp.Content)
			return resp.Content, model.RoutePrimary, resp.FlaggedForHandoff
		}

		metrics.RecordGeneration(s.generator.Name(), "error", time.Since(start).Seconds(), 0, 0)
		s.logger.Warn("generator failed, serving fallback", zap.Error(err))
	}

	usage := state.fallbackUse.Increment(topic)
	reply := s.catalog.GetContextualResponse(topic, lang, turn, usage)
	metrics.FallbacksTotal.WithLabelValues(string(topic)).Inc()
	s.recordTurn(state, message, reply)
	return reply, model.RouteFallback, false
}

func (s *ChatService) historySnapshot(state *sessionState) []llm.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.ChatMessage, len(state.history))
	copy(out, state.history)
	return out
}

func (s *ChatService) recordTurn(state *sessionState, userMessage, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.history = append(state.history,
		llm.ChatMessage{Role: "user", Content: userMessage},
		llm.ChatMessage{Role: "assistant", Content: reply},
	)
	if len(state.history) > historyLimit {
		state.history = state.history[len(state.history)-historyLimit:]
	}
}

func resolveLanguage(req *model.SendMessageRequest) model.Language {
	switch model.Language(req.Language) {
	case model.LanguageThai, model.LanguageEnglish:
		return model.Language(req.Language)
	}
	return escalation.DetectLanguage(req.Message)
}
