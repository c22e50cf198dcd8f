package driver

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/coursemap/coursemap/internal/core/model"
)

// ErrNotFound is returned when a course has no stored graph.
var ErrNotFound = errors.New("course not found")

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// GraphDoc holds the three serialized graph fields exactly as they are
// served to clients, each one an independent JSON document.
type GraphDoc struct {
	Nodes string
	Edges string
	Data  string
}

// Event is one recorded analytics entry. Fields carries everything the
// caller attached beyond the identifying pair.
type Event struct {
	ID     string
	Kind   string
	Fields map[string]interface{}
}

// CourseStore persists course lifecycle state, the generated graph, and
// analytics events. MemgraphStore is the production implementation;
// MemoryStore backs tests and database-less runs.
type CourseStore interface {
	// GetStage reports NEEDS_INIT for a course that has never been seen.
	GetStage(ctx context.Context, courseID string) (model.Stage, error)
	SetStage(ctx context.Context, courseID string, stage model.Stage) error
	SaveGraph(ctx context.Context, courseID string, doc GraphDoc) error
	GetGraph(ctx context.Context, courseID string) (GraphDoc, error)
	// RecordEvent stores an analytics record and returns its id.
	RecordEvent(ctx context.Context, kind string, fields map[string]interface{}) (string, error)
	// ListEvents returns the stored events of one kind for a course.
	ListEvents(ctx context.Context, courseID, kind string) ([]Event, error)
	SaveReport(ctx context.Context, courseID, report string) error
	// GetReport returns ErrNotFound when no report has been generated yet.
	GetReport(ctx context.Context, courseID string) (string, error)
	Close(ctx context.Context) error
}
