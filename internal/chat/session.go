// Package chat maintains the question-answering session for one course.
package chat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/core/model"
)

// FallbackAnswer is appended when a send fails, so the conversation never
// hangs on an unanswered question.
const FallbackAnswer = "Sorry, I encountered an error. Please try again."

// Querier is the backend call a send resolves through.
type Querier interface {
	Chat(ctx context.Context, courseID, query string) (answer string, sources []string, err error)
}

// Session holds the append-only transcript. Sends are serialized: the mutex
// is held for the whole exchange, so overlapping calls queue and each
// user/assistant pair stays adjacent and ordered.
type Session struct {
	backend  Querier
	courseID string
	log      *zap.Logger

	mu         sync.Mutex
	transcript []model.ChatMessage
}

func NewSession(backend Querier, courseID string, log *zap.Logger) *Session {
	return &Session{backend: backend, courseID: courseID, log: log}
}

// Send submits a query. Empty (after trimming) queries are ignored: no
// request, no transcript change, and sent is false. Otherwise the user
// message is appended before the request resolves, and an assistant message
// (answer or fallback) always follows it. Nothing is retried or removed.
func (s *Session) Send(ctx context.Context, query string) (reply model.ChatMessage, sent bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.ChatMessage{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript, model.ChatMessage{Role: model.RoleUser, Body: query})

	answer, sources, err := s.backend.Chat(ctx, s.courseID, query)
	if err != nil {
		s.log.Warn("chat request failed", zap.Error(err))
		reply = model.ChatMessage{Role: model.RoleAssistant, Body: FallbackAnswer}
	} else {
		reply = model.ChatMessage{Role: model.RoleAssistant, Body: answer, Sources: sources}
	}

	s.transcript = append(s.transcript, reply)
	return reply, true
}

// Transcript returns a copy of the messages in send order.
func (s *Session) Transcript() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}
