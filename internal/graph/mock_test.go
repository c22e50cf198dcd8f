package graph

import (
	"context"

	"github.com/coursemap/coursemap/internal/api"
	"github.com/coursemap/coursemap/internal/core/model"
)

type MockFetcher struct {
	Response *api.GraphResponse
	Err      error
	Calls    int
}

func (m *MockFetcher) GetGraph(ctx context.Context, courseID string) (*api.GraphResponse, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

type MockCanvas struct {
	Clears int
	Nodes  []model.Node
	Styles []NodeStyle
	Edges  []model.Edge
}

func (m *MockCanvas) Clear() {
	m.Clears++
	m.Nodes = nil
	m.Styles = nil
	m.Edges = nil
}

func (m *MockCanvas) DrawNode(node model.Node, style NodeStyle) {
	m.Nodes = append(m.Nodes, node)
	m.Styles = append(m.Styles, style)
}

func (m *MockCanvas) DrawEdge(edge model.Edge) {
	m.Edges = append(m.Edges, edge)
}

type MockSink struct {
	Shown []Detail
}

func (m *MockSink) ShowDetail(d Detail) {
	m.Shown = append(m.Shown, d)
}

func (m *MockSink) Last() Detail {
	return m.Shown[len(m.Shown)-1]
}
