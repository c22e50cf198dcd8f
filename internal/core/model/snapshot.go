package model

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the full graph payload for one course, loaded once per Active
// entry and read-only for the rest of the session.
type Snapshot struct {
	Nodes []Node              `json:"nodes"`
	Edges []Edge              `json:"edges"`
	Data  map[string]NodeData `json:"data"`
}

// NodeByID does a linear scan; snapshots are small (tens of nodes).
func (s *Snapshot) NodeByID(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// DecodeSnapshot decodes the three independently serialized graph fields.
// Each field is its own JSON document, as the backend stores them; a failure
// names the field that did not decode.
func DecodeSnapshot(nodes, edges, data string) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(nodes), &snap.Nodes); err != nil {
		return nil, fmt.Errorf("decode nodes: %w", err)
	}
	if err := json.Unmarshal([]byte(edges), &snap.Edges); err != nil {
		return nil, fmt.Errorf("decode edges: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return &snap, nil
}

// EncodeSnapshot is the inverse of DecodeSnapshot, producing the three wire
// fields from an in-memory snapshot.
func EncodeSnapshot(snap *Snapshot) (nodes, edges, data string, err error) {
	n, err := json.Marshal(snap.Nodes)
	if err != nil {
		return "", "", "", fmt.Errorf("encode nodes: %w", err)
	}
	e, err := json.Marshal(snap.Edges)
	if err != nil {
		return "", "", "", fmt.Errorf("encode edges: %w", err)
	}
	d, err := json.Marshal(snap.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("encode data: %w", err)
	}
	return string(n), string(e), string(d), nil
}
