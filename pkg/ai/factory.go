package ai

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "openai", "ollama" or "auto"

	// OpenAI-compatible config
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewClassifier creates a Classifier based on the config. The returned
// service always ends in the safe-default fallback, so callers never see a
// classification error. Switch AI provider by changing config.Provider.
func NewClassifier(cfg Config) Classifier {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewFallbackService(NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil)

	case ProviderOllama:
		return NewFallbackService(NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil)

	default:
		// Prefer the hosted model when an API key is available and keep
		// the local model as the fallback path.
		ollama := NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)
		if cfg.OpenAIAPIKey != "" {
			return NewFallbackService(NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), ollama)
		}
		return NewFallbackService(ollama, nil)
	}
}
