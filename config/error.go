package config

// Error represents a config loading or validation failure.
type Error struct {
	reason string
}

func (e Error) Error() string {
	return "config error: " + e.reason
}
