package core

import (
	"context"
	"errors"
)

// MockGenerator replays scripted replies in order; the last entry repeats.
// A nil Replies slice makes every call fail.
type MockGenerator struct {
	Replies []string
	Prompts []string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Replies) == 0 {
		return "", errors.New("model unavailable")
	}
	i := len(m.Prompts) - 1
	if i >= len(m.Replies) {
		i = len(m.Replies) - 1
	}
	return m.Replies[i], nil
}
