package lessons

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings every generator call uses.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
