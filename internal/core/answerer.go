package core

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/core/common"
	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/llm"
)

// Answerer answers student questions against the course's topic summaries.
type Answerer struct {
	gen llm.Generator
	log *zap.Logger
}

func NewAnswerer(gen llm.Generator, log *zap.Logger) *Answerer {
	return &Answerer{gen: gen, log: log}
}

type answerPayload struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Answer returns the answer text and the filenames it cites. A reply the
// model failed to structure is passed through as plain text with no sources.
func (a *Answerer) Answer(ctx context.Context, snap *model.Snapshot, query string) (string, []string, error) {
	raw, err := a.gen.Generate(ctx, answerPrompt(snap, query))
	if err != nil {
		return "", nil, err
	}

	parsed, perr := common.ParseJSON[answerPayload](raw)
	if perr != nil {
		a.log.Warn("unstructured answer from model", zap.Error(perr))
		return strings.TrimSpace(raw), nil, nil
	}
	return parsed.Answer, parsed.Sources, nil
}

func answerPrompt(snap *model.Snapshot, query string) string {
	var sb strings.Builder
	sb.WriteString("Answer the student's question using only the course context below.\n\n")
	for _, n := range snap.Nodes {
		if n.Kind() != model.KindTopic {
			continue
		}
		data := snap.Data[n.ID]
		if data.Summary == "" {
			continue
		}
		sb.WriteString("## " + n.Label + "\n")
		sb.WriteString(data.Summary + "\n")
		if len(data.Sources) > 0 {
			names := make([]string, 0, len(data.Sources))
			for _, s := range data.Sources {
				names = append(names, s.Filename)
			}
			sb.WriteString("Materials: " + strings.Join(names, ", ") + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Question: " + query + "\n")
	sb.WriteString("\nReply with a JSON object: {\"answer\": \"...\", \"sources\": [\"cited material names\"]}\n")
	return sb.String()
}
