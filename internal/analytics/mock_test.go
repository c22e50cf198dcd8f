package analytics

import (
	"context"
	"errors"

	"github.com/coursemap/coursemap/internal/driver"
)

type MockReportStore struct {
	Events    []driver.Event
	ListErr   error
	SaveErr   error
	Saved     map[string]string
	ListCalls []string
}

func NewMockReportStore() *MockReportStore {
	return &MockReportStore{Saved: make(map[string]string)}
}

func (m *MockReportStore) ListEvents(ctx context.Context, courseID, kind string) ([]driver.Event, error) {
	m.ListCalls = append(m.ListCalls, kind)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Events, nil
}

func (m *MockReportStore) SaveReport(ctx context.Context, courseID, report string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved[courseID] = report
	return nil
}

func (m *MockReportStore) GetReport(ctx context.Context, courseID string) (string, error) {
	report, ok := m.Saved[courseID]
	if !ok {
		return "", driver.ErrNotFound
	}
	return report, nil
}

// MockGenerator returns one scripted reply for every call, or fails when
// none is set.
type MockGenerator struct {
	Reply   string
	Err     error
	Prompts []string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply == "" {
		return "", errors.New("model unavailable")
	}
	return m.Reply, nil
}
