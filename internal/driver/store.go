package driver

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coursemap/coursemap/internal/core/model"
)

// MemgraphStore keeps one Course node per course, carrying its lifecycle
// status and the three serialized graph fields as properties, mirroring the
// document layout clients consume.
type MemgraphStore struct {
	driver GraphDriver
}

func NewMemgraphStore(d GraphDriver) *MemgraphStore {
	return &MemgraphStore{driver: d}
}

func (s *MemgraphStore) GetStage(ctx context.Context, courseID string) (model.Stage, error) {
	res, err := s.driver.ExecuteQuery(ctx, GetCourseQuery, map[string]interface{}{
		"course_id": courseID,
	})
	if err != nil {
		return "", err
	}
	if len(res.Records) == 0 {
		// An unseen course is an uninitialized one.
		return model.StageNeedsInit, nil
	}

	raw, _ := res.Records[0].Get("status")
	status, _ := raw.(string)
	switch model.Stage(status) {
	case model.StageGenerating:
		return model.StageGenerating, nil
	case model.StageActive:
		return model.StageActive, nil
	default:
		return model.StageNotReady, nil
	}
}

func (s *MemgraphStore) SetStage(ctx context.Context, courseID string, stage model.Stage) error {
	_, err := s.driver.ExecuteQuery(ctx, SetStageQuery, map[string]interface{}{
		"course_id": courseID,
		"status":    string(stage),
	})
	return err
}

func (s *MemgraphStore) SaveGraph(ctx context.Context, courseID string, doc GraphDoc) error {
	_, err := s.driver.ExecuteQuery(ctx, SaveGraphQuery, map[string]interface{}{
		"course_id": courseID,
		"nodes":     doc.Nodes,
		"edges":     doc.Edges,
		"data":      doc.Data,
	})
	return err
}

func (s *MemgraphStore) GetGraph(ctx context.Context, courseID string) (GraphDoc, error) {
	res, err := s.driver.ExecuteQuery(ctx, GetCourseQuery, map[string]interface{}{
		"course_id": courseID,
	})
	if err != nil {
		return GraphDoc{}, err
	}
	if len(res.Records) == 0 {
		return GraphDoc{}, ErrNotFound
	}

	rec := res.Records[0]
	rawNodes, _ := rec.Get("nodes")
	nodes, ok := rawNodes.(string)
	if !ok || nodes == "" {
		return GraphDoc{}, ErrNotFound
	}
	rawEdges, _ := rec.Get("edges")
	rawData, _ := rec.Get("data")
	edges, _ := rawEdges.(string)
	data, _ := rawData.(string)

	return GraphDoc{Nodes: nodes, Edges: edges, Data: data}, nil
}

func (s *MemgraphStore) RecordEvent(ctx context.Context, kind string, fields map[string]interface{}) (string, error) {
	id := uuid.New().String()
	_, err := s.driver.ExecuteQuery(ctx, RecordEventQuery, map[string]interface{}{
		"uuid":       id,
		"kind":       kind,
		"created_at": time.Now().UTC(),
		"fields":     fields,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemgraphStore) ListEvents(ctx context.Context, courseID, kind string) ([]Event, error) {
	res, err := s.driver.ExecuteQuery(ctx, ListEventsQuery, map[string]interface{}{
		"course_id": courseID,
		"kind":      kind,
	})
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(res.Records))
	for _, rec := range res.Records {
		raw, _ := rec.Get("event")
		props, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		ev := Event{Kind: kind, Fields: make(map[string]interface{})}
		for k, v := range props {
			switch k {
			case "uuid":
				ev.ID, _ = v.(string)
			case "kind", "created_at":
			default:
				ev.Fields[k] = v
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *MemgraphStore) SaveReport(ctx context.Context, courseID, report string) error {
	_, err := s.driver.ExecuteQuery(ctx, SaveReportQuery, map[string]interface{}{
		"course_id": courseID,
		"report":    report,
	})
	return err
}

func (s *MemgraphStore) GetReport(ctx context.Context, courseID string) (string, error) {
	res, err := s.driver.ExecuteQuery(ctx, GetReportQuery, map[string]interface{}{
		"course_id": courseID,
	})
	if err != nil {
		return "", err
	}
	if len(res.Records) == 0 {
		return "", ErrNotFound
	}
	raw, _ := res.Records[0].Get("report")
	report, ok := raw.(string)
	if !ok || report == "" {
		return "", ErrNotFound
	}
	return report, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
