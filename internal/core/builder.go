package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/canvas"
	"github.com/coursemap/coursemap/internal/core/common"
	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/llm"
)

// Builder turns an instructor's topic list and the course's file listing
// into a graph snapshot: one node per topic, one per file, an edge from each
// topic to every file its summary cites.
type Builder struct {
	gen llm.Generator
	log *zap.Logger
}

func NewBuilder(gen llm.Generator, log *zap.Logger) *Builder {
	return &Builder{gen: gen, log: log}
}

type topicSummary struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

func (b *Builder) Build(ctx context.Context, topics []string, files []canvas.File) (*model.Snapshot, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("no topics to build a graph from")
	}

	snap := &model.Snapshot{Data: make(map[string]model.NodeData)}

	fileByName := make(map[string]canvas.File, len(files))
	for _, f := range files {
		id := strconv.FormatInt(f.ID, 10)
		snap.Nodes = append(snap.Nodes, model.Node{ID: id, Label: f.DisplayName, Group: model.GroupFile})
		snap.Data[id] = model.NodeData{FileURL: f.HTMLURL}
		fileByName[f.DisplayName] = f
	}

	for i, topic := range topics {
		id := fmt.Sprintf("topic_%d", i+1)
		snap.Nodes = append(snap.Nodes, model.Node{ID: id, Label: topic, Group: model.GroupTopic})

		raw, err := b.gen.Generate(ctx, summaryPrompt(topic, files))
		if err != nil {
			// A topic without a summary still belongs on the graph.
			b.log.Warn("topic summary failed", zap.String("topic", topic), zap.Error(err))
			snap.Data[id] = model.NodeData{}
			continue
		}

		ts, err := common.ParseJSON[topicSummary](raw)
		if err != nil {
			b.log.Warn("unparseable topic summary", zap.String("topic", topic), zap.Error(err))
			snap.Data[id] = model.NodeData{Summary: strings.TrimSpace(raw)}
			continue
		}

		var refs []model.SourceRef
		for _, name := range ts.Sources {
			f, ok := fileByName[name]
			if !ok {
				continue
			}
			snap.Edges = append(snap.Edges, model.Edge{From: id, To: strconv.FormatInt(f.ID, 10)})
			refs = append(refs, model.SourceRef{Filename: f.DisplayName, URI: f.HTMLURL})
		}
		snap.Data[id] = model.NodeData{Summary: ts.Summary, Sources: refs}
	}

	return snap, nil
}

func summaryPrompt(topic string, files []canvas.File) string {
	var sb strings.Builder
	sb.WriteString("You are summarizing a course topic for students.\n")
	sb.WriteString("Topic: " + topic + "\n")
	sb.WriteString("Course materials:\n")
	for _, f := range files {
		sb.WriteString("- " + f.DisplayName + "\n")
	}
	sb.WriteString("\nReply with a JSON object: {\"summary\": \"2-3 sentence summary of the topic\", ")
	sb.WriteString("\"sources\": [\"names of the listed materials most relevant to it\"]}\n")
	return sb.String()
}

// ParseTopics splits the free-text topic list an instructor submits.
// Commas and newlines both separate entries.
func ParseTopics(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
