package graph

import (
	"github.com/coursemap/coursemap/internal/core/model"
)

// Detail is the rendered content of the detail panel for one node.
type Detail struct {
	Title string
	Lines []string
}

// DetailSink receives each Detail, replacing whatever it showed before.
type DetailSink interface {
	ShowDetail(d Detail)
}

// DetailPanel resolves a selected node id against a snapshot and pushes the
// node's human-readable description to its sink.
type DetailPanel struct {
	sink DetailSink
}

func NewDetailPanel(sink DetailSink) *DetailPanel {
	return &DetailPanel{sink: sink}
}

// Show renders the node's detail. An id that is not in the snapshot (or a
// nil snapshot, when the graph never loaded) shows a placeholder rather than
// failing; the id came from the renderer so this is a wiring bug, not a
// user error.
func (p *DetailPanel) Show(nodeID string, snap *model.Snapshot) {
	if snap == nil {
		p.sink.ShowDetail(Detail{Title: nodeID, Lines: []string{"No details available."}})
		return
	}
	node, ok := snap.NodeByID(nodeID)
	if !ok {
		p.sink.ShowDetail(Detail{Title: nodeID, Lines: []string{"No details available."}})
		return
	}

	data := snap.Data[nodeID]
	d := Detail{Title: node.Label}

	switch node.Kind() {
	case model.KindFile:
		if data.FileURL != "" {
			d.Lines = append(d.Lines, "File: "+data.FileURL)
		} else {
			d.Lines = append(d.Lines, "File: "+node.Label)
		}
	default:
		if data.Summary != "" {
			d.Lines = append(d.Lines, data.Summary)
		}
		if len(data.Sources) > 0 {
			d.Lines = append(d.Lines, "Sources:")
			for _, s := range data.Sources {
				d.Lines = append(d.Lines, "- "+s.Filename)
			}
		}
		if len(d.Lines) == 0 {
			d.Lines = append(d.Lines, "No summary available.")
		}
	}

	p.sink.ShowDetail(d)
}
