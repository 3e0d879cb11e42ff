package domain

// AgentRequest is the JSON body the live chat client posts to the agent endpoint.
type AgentRequest struct {
	Message string `json:"message"`
}

// AgentReply is the JSON body the stand-in agent endpoint answers with.
type AgentReply struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId,omitempty"`
}
