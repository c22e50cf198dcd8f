// Package analytics records usage events (node clicks, chat exchanges,
// answer ratings) on the course store.
package analytics

import (
	"context"

	"go.uber.org/zap"
)

type Store interface {
	RecordEvent(ctx context.Context, kind string, fields map[string]interface{}) (string, error)
}

type Recorder struct {
	store Store
	log   *zap.Logger
}

func NewRecorder(store Store, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

func (r *Recorder) LogNodeClick(ctx context.Context, courseID, nodeID, nodeLabel, nodeType string) (string, error) {
	return r.store.RecordEvent(ctx, "node_click", map[string]interface{}{
		"course_id":  courseID,
		"node_id":    nodeID,
		"node_label": nodeLabel,
		"node_type":  nodeType,
	})
}

// LogChat records one question/answer exchange and returns the record id the
// client can later rate.
func (r *Recorder) LogChat(ctx context.Context, courseID, query, answer string) (string, error) {
	return r.store.RecordEvent(ctx, "chat", map[string]interface{}{
		"course_id": courseID,
		"query":     query,
		"answer":    answer,
	})
}

func (r *Recorder) RateAnswer(ctx context.Context, logDocID, rating string) error {
	_, err := r.store.RecordEvent(ctx, "rating", map[string]interface{}{
		"log_id": logDocID,
		"rating": rating,
	})
	return err
}
