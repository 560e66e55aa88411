package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	Model               string              `mapstructure:"model"`
	GeminiAPIKey        string              `mapstructure:"GEMINI_API_KEY"`
	EmbeddingEndpoint   string              `mapstructure:"embedding_endpoint"`
	EmbeddingModel      string              `mapstructure:"embedding_model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	DocumentDir         string              `mapstructure:"document_dir"`
	IndexPath           string              `mapstructure:"index_path"`
	RoomsPath           string              `mapstructure:"rooms_path"`
	UploadDir           string              `mapstructure:"upload_dir"`
	StaticDir           string              `mapstructure:"static_dir"`
	VectorStore         string              `mapstructure:"vector_store"` // "local" (default) or "weaviate"
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	setDefaults(&config)
	return &config, nil
}

func setDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8000"
	}
	if c.Model == "" {
		c.Model = "gemini-1.5-flash"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
	if c.DocumentDir == "" {
		c.DocumentDir = "data"
	}
	if c.IndexPath == "" {
		c.IndexPath = "bia_index.bin"
	}
	if c.RoomsPath == "" {
		c.RoomsPath = "salas_de_apoio.json"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.VectorStore == "" {
		c.VectorStore = "local"
	}
}
