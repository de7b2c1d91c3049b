package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Reply sources.
const (
	SourceRemote  = "remote"
	SourceKeyword = "keyword"
)

// ChatReply is the outcome of one user turn.
type ChatReply struct {
	Message domain.ChatMessage   `json:"message"`
	Source  string               `json:"source"`
	History []domain.ChatMessage `json:"history"`
}

// Chat runs the assistant conversation for each session.
type Chat struct {
	history   *store.Collection[domain.ChatMessage]
	matcher   *domain.KeywordMatcher
	generator domain.ReplyGenerator
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewChat creates the chat service. generator may be nil, in which case
// every reply comes from matcher.
func NewChat(backend store.Backend, matcher *domain.KeywordMatcher, generator domain.ReplyGenerator, metrics *observability.Metrics, logger *slog.Logger) *Chat {
	return &Chat{
		history:   store.NewCollection(backend, store.KeyChatHistory, welcomeHistory),
		matcher:   matcher,
		generator: generator,
		metrics:   metrics,
		logger:    logger,
	}
}

func welcomeHistory() []domain.ChatMessage {
	return []domain.ChatMessage{domain.WelcomeMessage()}
}

// History returns the session's conversation, oldest first.
func (s *Chat) History(ctx context.Context, session string) ([]domain.ChatMessage, error) {
	return s.history.GetAll(ctx, session)
}

// Send records the user's message, produces a reply and records that too.
// The user's message is saved before the reply is generated.
func (s *Chat) Send(ctx context.Context, session, content string) (ChatReply, error) {
	userMsg, err := domain.NewUserMessage(content)
	if err != nil {
		return ChatReply{}, err
	}
	history, err := s.history.GetAll(ctx, session)
	if err != nil {
		return ChatReply{}, err
	}
	prior := history
	history = append(history, userMsg)
	if err := s.history.SaveAll(ctx, session, history); err != nil {
		return ChatReply{}, err
	}

	text, source := s.reply(ctx, prior, content)
	s.metrics.ChatReplies.WithLabelValues(source).Inc()

	reply := domain.NewAssistantMessage(text)
	history = append(history, reply)
	if err := s.history.SaveAll(ctx, session, history); err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Message: reply, Source: source, History: history}, nil
}

// reply asks the generator first and falls back to the keyword matcher.
func (s *Chat) reply(ctx context.Context, prior []domain.ChatMessage, prompt string) (string, string) {
	if s.generator != nil {
		window := domain.ContextWindow(prior, domain.ChatContextLength)
		text, err := s.generator.GenerateReply(ctx, window, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, SourceRemote
		}
		if err != nil {
			s.logger.Warn("remote reply failed, using keyword matcher", "error", err)
		}
	}
	return s.matcher.Respond(prompt), SourceKeyword
}

// Clear truncates the conversation back to the welcome message.
func (s *Chat) Clear(ctx context.Context, session string) ([]domain.ChatMessage, error) {
	history, err := s.history.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	history = domain.TruncateHistory(history)
	if err := s.history.SaveAll(ctx, session, history); err != nil {
		return nil, err
	}
	return history, nil
}
