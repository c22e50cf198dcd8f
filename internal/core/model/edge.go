package model

// Edge connects a topic to one of its source files, or two topics. The
// from/to keys mirror the wire format. Edges may be parallel or
// self-referential; nothing in the graph guarantees acyclicity.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}
