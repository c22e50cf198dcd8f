package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a session transcript. Sources is always empty
// for user messages.
type ChatMessage struct {
	Role    Role     `json:"role"`
	Body    string   `json:"body"`
	Sources []string `json:"sources,omitempty"`
}
