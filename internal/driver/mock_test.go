package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

// MockDriver records every query and replays scripted results in order; once
// the script runs out it returns empty results.
type MockDriver struct {
	Executed []executedQuery
	Results  []neo4j.EagerResult
	Err      error
	Closed   bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if len(m.Results) == 0 {
		return neo4j.EagerResult{}, nil
	}
	res := m.Results[0]
	m.Results = m.Results[1:]
	return res, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

func courseRecord(status, nodes, edges, data interface{}) neo4j.EagerResult {
	return neo4j.EagerResult{
		Records: []*neo4j.Record{{
			Keys:   []string{"status", "nodes", "edges", "data"},
			Values: []interface{}{status, nodes, edges, data},
		}},
	}
}
