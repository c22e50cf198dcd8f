package llm

import (
	"context"
)

// Generator is the single capability this app needs from a language model:
// prompt in, text out. Summaries and answers both go through it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
