package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider request.
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Image is an optional JPEG payload sent alongside the prompt for
	// vision-capable models.
	Image []byte
}

// Provider defines the interface for an LLM provider.
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
