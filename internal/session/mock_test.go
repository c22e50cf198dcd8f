package session

import (
	"context"
	"errors"
	"sync"

	"github.com/coursemap/coursemap/internal/api"
	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/graph"
)

type MockPanel struct {
	visible bool
	shows   int
}

func (p *MockPanel) Show() { p.visible = true; p.shows++ }
func (p *MockPanel) Hide() { p.visible = false }

type mockPanels struct {
	init, notReady, loading, main *MockPanel
}

func newMockPanels() (mockPanels, Panels) {
	m := mockPanels{
		init:     &MockPanel{},
		notReady: &MockPanel{},
		loading:  &MockPanel{},
		main:     &MockPanel{},
	}
	return m, Panels{Init: m.init, NotReady: m.notReady, Loading: m.loading, Main: m.main}
}

func (m mockPanels) visibleCount() int {
	count := 0
	for _, p := range []*MockPanel{m.init, m.notReady, m.loading, m.main} {
		if p.visible {
			count++
		}
	}
	return count
}

// MockBackend scripts one status per poll; the last entry repeats. The
// first FailFirst status calls return an error instead.
type MockBackend struct {
	mu          sync.Mutex
	InitStatus  string
	InitErr     error
	Statuses    []model.Stage
	FailFirst   int
	statusCalls int

	// Hold, when set, blocks each status call until it is closed; the call
	// announces itself on Holding first.
	Hold    chan struct{}
	Holding chan struct{}
}

func (b *MockBackend) InitializeCourse(ctx context.Context, courseID, topics string) (string, error) {
	if b.InitErr != nil {
		return "", b.InitErr
	}
	return b.InitStatus, nil
}

func (b *MockBackend) CourseStatus(ctx context.Context, courseID string) (model.Stage, error) {
	if b.Hold != nil {
		b.Holding <- struct{}{}
		<-b.Hold
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.statusCalls
	b.statusCalls++
	if i < b.FailFirst {
		return "", errors.New("status unavailable")
	}
	i -= b.FailFirst
	if len(b.Statuses) == 0 {
		return model.StageGenerating, nil
	}
	if i >= len(b.Statuses) {
		i = len(b.Statuses) - 1
	}
	return b.Statuses[i], nil
}

func (b *MockBackend) StatusCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusCalls
}

type MockFetcher struct {
	Response *api.GraphResponse
	Err      error
}

func (m *MockFetcher) GetGraph(ctx context.Context, courseID string) (*api.GraphResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

type MockCanvas struct {
	Nodes []model.Node
	Edges []model.Edge
}

func (m *MockCanvas) Clear() {
	m.Nodes, m.Edges = nil, nil
}

func (m *MockCanvas) DrawNode(n model.Node, s graph.NodeStyle) {
	m.Nodes = append(m.Nodes, n)
}

func (m *MockCanvas) DrawEdge(e model.Edge) {
	m.Edges = append(m.Edges, e)
}

type MockSink struct {
	Shown []graph.Detail
}

func (m *MockSink) ShowDetail(d graph.Detail) { m.Shown = append(m.Shown, d) }

type MockQuerier struct{}

func (MockQuerier) Chat(ctx context.Context, courseID, query string) (string, []string, error) {
	return "ok", nil, nil
}

type MockClicks struct {
	mu      sync.Mutex
	Clicked []string
}

func (m *MockClicks) LogNodeClick(ctx context.Context, courseID, nodeID, nodeLabel, nodeType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicked = append(m.Clicked, nodeID)
	return nil
}

func (m *MockClicks) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clicked)
}
