package config

// FeaturesConfig toggles the optional parts of the HTTP surface.
type FeaturesConfig struct {
	EnablePut       bool     `yaml:"enable_put" env:"NOTES_ENABLE_PUT" env-default:"true"`
	UnknownEndpoint bool     `yaml:"unknown_endpoint" env:"NOTES_UNKNOWN_ENDPOINT" env-default:"true"`
	StaticDir       string   `yaml:"static_dir" env:"NOTES_STATIC_DIR" env-default:""`
	CORSOrigins     []string `yaml:"cors_origins" env:"NOTES_CORS_ORIGINS" env-default:"*"`
	Seed            bool     `yaml:"seed" env:"NOTES_SEED" env-default:"true"`
}
