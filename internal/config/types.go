package config

// FullConfig is the application config stored in the database
// (options table, key="configs"). It is PATCH-merged by the admin UI.
type FullConfig struct {
	Site    SiteConfig     `json:"site"`
	AI      AIConfig       `json:"ai"`
	Capture CaptureOptions `json:"capture"`
}

type SiteConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WebURL      string `json:"web_url"`
}

// AIConfig configures model providers and which model serves each feature.
type AIConfig struct {
	Providers       []AIProvider       `json:"providers"`
	EnrichModel     *AIModelAssignment `json:"enrich_model,omitempty"`
	AskModel        *AIModelAssignment `json:"ask_model,omitempty"`
	EnableEnrich    bool               `json:"enable_enrich"`
	EnableAsk       bool               `json:"enable_ask"`
	Temperature     float64            `json:"temperature"`
	TopP            float64            `json:"top_p"`
	MaxOutputTokens int                `json:"max_output_tokens"`
}

type AIModelAssignment struct {
	ProviderID string `json:"provider_id"`
	Model      string `json:"model"`
}

type AIProvider struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `json:"api_key"`
	Endpoint     string `json:"endpoint,omitempty"`
	DefaultModel string `json:"default_model"`
	Enabled      bool   `json:"enabled"`
}

// CaptureOptions tunes item capture behavior.
type CaptureOptions struct {
	EnrichOnCreate bool `json:"enrich_on_create"`
	EnrichOnUpdate bool `json:"enrich_on_update"`
}

// DefaultFullConfig returns the config used before the owner saves one.
func DefaultFullConfig() FullConfig {
	return FullConfig{
		Site: SiteConfig{
			Title: "Stashbox",
		},
		AI: AIConfig{
			Providers:       []AIProvider{},
			EnableEnrich:    true,
			EnableAsk:       true,
			Temperature:     0.4,
			TopP:            0.9,
			MaxOutputTokens: 500,
		},
		Capture: CaptureOptions{
			EnrichOnCreate: true,
			EnrichOnUpdate: false,
		},
	}
}
