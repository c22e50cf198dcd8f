package driver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/coursemap/coursemap/internal/core/model"
)

type memoryCourse struct {
	stage model.Stage
	doc   GraphDoc
	saved bool
}

// MemoryStore is a CourseStore without a database behind it. It backs unit
// tests and lets the server run when no Memgraph URI is configured.
type MemoryStore struct {
	mu      sync.Mutex
	courses map[string]*memoryCourse
	events  []Event
	reports map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses: make(map[string]*memoryCourse),
		reports: make(map[string]string),
	}
}

func (s *MemoryStore) GetStage(ctx context.Context, courseID string) (model.Stage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok {
		return model.StageNeedsInit, nil
	}
	switch c.stage {
	case model.StageGenerating, model.StageActive:
		return c.stage, nil
	default:
		return model.StageNotReady, nil
	}
}

func (s *MemoryStore) SetStage(ctx context.Context, courseID string, stage model.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.course(courseID).stage = stage
	return nil
}

func (s *MemoryStore) SaveGraph(ctx context.Context, courseID string, doc GraphDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.course(courseID)
	c.doc = doc
	c.saved = true
	return nil
}

func (s *MemoryStore) GetGraph(ctx context.Context, courseID string) (GraphDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok || !c.saved {
		return GraphDoc{}, ErrNotFound
	}
	return c.doc, nil
}

func (s *MemoryStore) RecordEvent(ctx context.Context, kind string, fields map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.events = append(s.events, Event{ID: id, Kind: kind, Fields: fields})
	return id, nil
}

func (s *MemoryStore) ListEvents(ctx context.Context, courseID, kind string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, ev := range s.events {
		if ev.Kind != kind {
			continue
		}
		if id, _ := ev.Fields["course_id"].(string); id != courseID {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *MemoryStore) SaveReport(ctx context.Context, courseID, report string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[courseID] = report
	return nil
}

func (s *MemoryStore) GetReport(ctx context.Context, courseID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[courseID]
	if !ok {
		return "", ErrNotFound
	}
	return report, nil
}

// Events returns a copy of everything recorded so far.
func (s *MemoryStore) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) course(courseID string) *memoryCourse {
	c, ok := s.courses[courseID]
	if !ok {
		c = &memoryCourse{stage: model.StageNeedsInit}
		s.courses[courseID] = c
	}
	return c
}
