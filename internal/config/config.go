package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type UploadConfig struct {
	MaxFileBytes int64 `mapstructure:"max_file_bytes"`
	MaxFiles     int   `mapstructure:"max_files"`
	// BufferBody reads the whole request body up front and feeds the
	// multipart parser from memory. Needed behind frontends that replay
	// bodies instead of streaming them.
	BufferBody bool `mapstructure:"buffer_body"`
}

type VisionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Prompt  string        `mapstructure:"prompt"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Upload UploadConfig `mapstructure:"upload"`
	Vision VisionConfig `mapstructure:"vision"`
}

// Load reads config.yaml from the working directory if present, with
// VISION_BATCH_* environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("upload.max_file_bytes", 10<<20)
	v.SetDefault("upload.max_files", 20)
	v.SetDefault("upload.buffer_body", false)
	v.SetDefault("vision.model", "gemini-2.5-flash")
	v.SetDefault("vision.prompt", "")
	v.SetDefault("vision.timeout", 30*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VISION_BATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("vision.api_key", "VISION_BATCH_VISION_API_KEY", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
