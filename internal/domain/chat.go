package domain

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleError Role = "error"
)

// ChatMessage is a single visible transcript entry. It is never persisted.
type ChatMessage struct {
	Text string
	Role Role
}

// ChatResponse is what the chat client produces for one send.
type ChatResponse struct {
	Text    string
	IsError bool
}

// RoleFor maps a response to the bubble role it is rendered with.
func (r ChatResponse) RoleFor() Role {
	if r.IsError {
		return RoleError
	}
	return RoleAgent
}
