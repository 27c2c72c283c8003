package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, basic summarization.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured explanation output.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier, falling back to the
// standard tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
