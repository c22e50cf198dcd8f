package graph

import (
	"sync"

	"go.uber.org/zap"

	"github.com/coursemap/coursemap/internal/core/model"
)

// NodeStyle is the visual treatment of a node on the canvas.
type NodeStyle struct {
	Color string
	Shape string
}

// StyleFor maps a node kind to its style. The mapping depends on kind alone,
// never on load order or id.
func StyleFor(kind model.NodeKind) NodeStyle {
	if kind == model.KindFile {
		return NodeStyle{Color: "#7f8c8d", Shape: "box"}
	}
	return NodeStyle{Color: "#2980b9", Shape: "dot"}
}

// Canvas is the drawing surface the renderer targets. Implementations range
// from a terminal view to a test double.
type Canvas interface {
	Clear()
	DrawNode(node model.Node, style NodeStyle)
	DrawEdge(edge model.Edge)
}

// Renderer draws a snapshot onto a Canvas and reports node selections. It
// never mutates the snapshot; toggling file visibility only changes what is
// drawn. Safe for concurrent use: the completion poll renders from its own
// goroutine while input keeps clicking and toggling.
type Renderer struct {
	canvas Canvas
	log    *zap.Logger

	mu           sync.Mutex
	onSelect     func(nodeID string)
	snap         *model.Snapshot
	filesVisible bool
	visible      map[string]model.Node
}

func NewRenderer(canvas Canvas, log *zap.Logger) *Renderer {
	return &Renderer{
		canvas:       canvas,
		log:          log,
		filesVisible: true,
		visible:      make(map[string]model.Node),
	}
}

// OnNodeSelected registers the selection callback. It is invoked
// synchronously from Click, outside the renderer's lock.
func (r *Renderer) OnNodeSelected(fn func(nodeID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSelect = fn
}

func (r *Renderer) Render(snap *model.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	r.redraw()
}

// SetFilesVisible shows or hides file nodes and their incident edges.
func (r *Renderer) SetFilesVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filesVisible == visible {
		return
	}
	r.filesVisible = visible
	if r.snap != nil {
		r.redraw()
	}
}

func (r *Renderer) FilesVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filesVisible
}

// Click reports a user click on a node id. Clicks on anything that is not a
// currently drawn node emit nothing.
func (r *Renderer) Click(nodeID string) {
	r.mu.Lock()
	_, ok := r.visible[nodeID]
	fn := r.onSelect
	r.mu.Unlock()

	if ok && fn != nil {
		fn(nodeID)
	}
}

func (r *Renderer) redraw() {
	r.canvas.Clear()
	r.visible = make(map[string]model.Node, len(r.snap.Nodes))

	for _, n := range r.snap.Nodes {
		if n.Kind() == model.KindFile && !r.filesVisible {
			continue
		}
		r.canvas.DrawNode(n, StyleFor(n.Kind()))
		r.visible[n.ID] = n
	}

	for _, e := range r.snap.Edges {
		// An edge is drawn only when both endpoints are.
		if _, ok := r.visible[e.From]; !ok {
			continue
		}
		if _, ok := r.visible[e.To]; !ok {
			continue
		}
		r.canvas.DrawEdge(e)
	}

	r.log.Debug("graph rendered",
		zap.Int("visible_nodes", len(r.visible)),
		zap.Bool("files_visible", r.filesVisible))
}
