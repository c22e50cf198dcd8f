// Package graph holds the client-side graph components: the Store that
// fetches and caches one course's snapshot, the Renderer that draws it, and
// the DetailPanel that describes a selected node.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/api"
	"github.com/coursemap/coursemap/internal/core/model"
)

var (
	// ErrNetwork means the graph request itself did not complete.
	ErrNetwork = errors.New("graph fetch failed")
	// ErrDecode means a response field did not match its expected shape.
	ErrDecode = errors.New("malformed graph payload")
)

type Fetcher interface {
	GetGraph(ctx context.Context, courseID string) (*api.GraphResponse, error)
}

// Store owns the snapshot for one course. Load replaces the cache wholesale;
// a failed load leaves the previous snapshot untouched.
type Store struct {
	fetch Fetcher
	log   *zap.Logger

	mu   sync.RWMutex
	snap *model.Snapshot
}

func NewStore(fetch Fetcher, log *zap.Logger) *Store {
	return &Store{fetch: fetch, log: log}
}

func (s *Store) Load(ctx context.Context, courseID string) (*model.Snapshot, error) {
	resp, err := s.fetch.GetGraph(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	snap, err := model.DecodeSnapshot(resp.Nodes, resp.Edges, resp.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.log.Info("graph loaded",
		zap.String("course_id", courseID),
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)))
	return snap, nil
}

// Snapshot returns the cached snapshot, nil before the first successful Load.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
