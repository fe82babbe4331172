package llm

import (
	"fmt"

	"github.com/Pooyash1998/studyplanner/config"
)

// NewClient 按配置选择提供方
func NewClient(cfg *config.GeneratorConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg.Endpoint, cfg.Timeout), nil
	case "gemini":
		return NewGeminiClient(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}
