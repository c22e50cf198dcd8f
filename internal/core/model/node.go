package model

// Node groups match the values the graph payload uses on the wire.
const (
	GroupTopic = "topic"
	GroupFile  = "file_pdf"
)

type NodeKind int

const (
	KindTopic NodeKind = iota
	KindFile
)

// Node is a single vertex of the course knowledge graph. IDs are stable for
// the lifetime of a session; topic nodes use synthetic "topic_N" ids, file
// nodes reuse the LMS file id.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
}

func (n Node) Kind() NodeKind {
	if n.Group == GroupFile {
		return KindFile
	}
	return KindTopic
}

// SourceRef points at a course file a topic summary was drawn from.
type SourceRef struct {
	Filename string `json:"filename"`
	URI      string `json:"uri,omitempty"`
}

// NodeData is the per-node payload keyed by node id in the snapshot's data
// field. Topic nodes carry Summary and Sources, file nodes carry FileURL.
type NodeData struct {
	Summary string      `json:"summary,omitempty"`
	Sources []SourceRef `json:"sources,omitempty"`
	FileURL string      `json:"file_url,omitempty"`
}
