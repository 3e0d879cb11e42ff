package agent

// Mode selects how the chat client produces responses.
type Mode string

const (
	// ModeMock answers locally with canned replies after a simulated delay.
	ModeMock Mode = "mock"
	// ModeAPI posts each message to the agent endpoint.
	ModeAPI Mode = "api"
)

// Switch DefaultMode to ModeAPI once the agent endpoint is live.
const (
	DefaultMode     = ModeMock
	DefaultEndpoint = "/api/agent/chat"
	DefaultOrigin   = "http://localhost:8080"
)

// Config is the static chat client configuration.
type Config struct {
	Mode     Mode
	Endpoint string
}

// DefaultConfig returns the configuration the site ships with.
func DefaultConfig() Config {
	return Config{Mode: DefaultMode, Endpoint: DefaultEndpoint}
}
