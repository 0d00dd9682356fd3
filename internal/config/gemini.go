package config

// GeminiConfig содержит настройки для клиента Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"LIFEBOOK_GEMINI_API_KEY" env-default:""`
	Model  string `yaml:"model" env:"LIFEBOOK_GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}
