package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingAPIKey = errors.New("GROQ_API_KEY no está configurada. Por favor, configura la variable de entorno")

// Load reads .env, an optional config.yaml and the environment, in increasing
// order of precedence.
func Load() (*Config, error) {
	loadEnvFile(".env")
	return load(viper.New(), []string{"./configs", ".", "/app/configs"})
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	// Existing environment variables win over the file.
	_ = godotenv.Load(path)
}

func load(v *viper.Viper, configPaths []string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.BindEnv("http.port", "PORT", "HTTP_PORT", "APP_HTTP_PORT")
	v.BindEnv("llm.api_key", "GROQ_API_KEY", "APP_LLM_API_KEY")
	v.BindEnv("llm.model", "GROQ_MODEL")
	v.BindEnv("llm.temperature", "GROQ_TEMPERATURE")
	v.BindEnv("llm.max_tokens", "GROQ_MAX_TOKENS")
	v.BindEnv("llm.top_p", "GROQ_TOP_P")
	v.BindEnv("llm.base_url", "GROQ_BASE_URL")
	v.BindEnv("llm.timeout", "GROQ_TIMEOUT")
	v.BindEnv("alexa.output_format", "ALEXA_OUTPUT_FORMAT")
	v.BindEnv("opentelemetry.enabled", "OTEL_ENABLED")
	v.BindEnv("opentelemetry.jaeger.endpoint", "JAEGER_ENDPOINT")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "JARVIS Backend")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 3000)

	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.top_p", 1.0)
	v.SetDefault("llm.timeout", 0)

	v.SetDefault("alexa.output_format", "plain")
	v.SetDefault("alexa.max_speech_len", 7000)

	v.SetDefault("opentelemetry.enabled", false)
	v.SetDefault("opentelemetry.service_name", "jarvis-backend")
	v.SetDefault("opentelemetry.jaeger.endpoint", "http://jaeger:14268/api/traces")

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 1)
	v.SetDefault("circuit_breaker.interval", "60s")
	v.SetDefault("circuit_breaker.timeout", "30s")
	v.SetDefault("circuit_breaker.consecutive_failures", 5)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.Alexa.OutputFormat {
	case "plain", "ssml":
	default:
		return fmt.Errorf("alexa.output_format must be \"plain\" or \"ssml\", got %q", c.Alexa.OutputFormat)
	}
	return nil
}
