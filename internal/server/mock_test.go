package server

import (
	"context"
	"errors"
	"sync"

	"github.com/coursemap/coursemap/internal/canvas"
)

// MockGenerator replays scripted replies in order, repeating the last one.
// With no replies every call fails. It is goroutine safe because the build
// path runs off the request goroutine.
type MockGenerator struct {
	mu      sync.Mutex
	Replies []string
	calls   int
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Replies) == 0 {
		return "", errors.New("model unavailable")
	}
	i := m.calls
	m.calls++
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	return m.Replies[i], nil
}

func (m *MockGenerator) SetReplies(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies = replies
	m.calls = 0
}

type MockFileLister struct {
	Files []canvas.File
	Err   error
}

func (m *MockFileLister) ListCourseFiles(ctx context.Context, courseID string) ([]canvas.File, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Files, nil
}
