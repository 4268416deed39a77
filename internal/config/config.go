package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB        DBConfig
	Server    ServerConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Providers ProvidersConfig
	Cache     CacheConfig
	Tracing   TracingConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type JWTConfig struct {
	SecretKey string
}

// CacheConfig controls how long anonymous graded results stay retrievable.
type CacheConfig struct {
	AnonymousResultTTL time.Duration
}

type TracingConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	Insecure     bool
	SampleRatio  float64
}

// ProviderConfig describes a single text-generation backend. An entry whose
// credential (APIKey, or BaseURL for local servers) is empty is not used.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ProvidersConfig lists every backend the chain knows about. Order is fixed
// by the chain builder, not by this struct.
type ProvidersConfig struct {
	OpenAI    ProviderConfig
	Gemini    ProviderConfig
	Mistral   ProviderConfig
	Groq      ProviderConfig
	Anthropic ProviderConfig
	Ollama    ProviderConfig
}

const defaultProviderTimeout = 30 * time.Second

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("cache.anonymous_result_ttl", "1h")
	v.SetDefault("tracing.service_name", "medquiz")
	v.SetDefault("tracing.sample_ratio", 0.1)

	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.gemini.model", "gemini-1.5-flash")
	v.SetDefault("providers.mistral.model", "mistral-tiny")
	v.SetDefault("providers.mistral.base_url", "https://api.mistral.ai/v1")
	v.SetDefault("providers.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("providers.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("providers.anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("providers.ollama.model", "qwen3:0.6b")
}

// LoadConfig reads config.yaml (when present) and overlays environment
// variables. Nested keys map to env names with "_" (providers.openai.api_key
// becomes PROVIDERS_OPENAI_API_KEY); the conventional vendor variables such as
// OPENAI_API_KEY are honoured as well.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("jwt.secret_key"),
		},
		Cache: CacheConfig{
			AnonymousResultTTL: v.GetDuration("cache.anonymous_result_ttl"),
		},
		Tracing: TracingConfig{
			Enabled:      v.GetBool("tracing.enabled"),
			ServiceName:  v.GetString("tracing.service_name"),
			OTLPEndpoint: v.GetString("tracing.otlp_endpoint"),
			Insecure:     v.GetBool("tracing.insecure"),
			SampleRatio:  v.GetFloat64("tracing.sample_ratio"),
		},
		Providers: ProvidersConfig{
			OpenAI:    providerFromViper(v, "openai"),
			Gemini:    providerFromViper(v, "gemini"),
			Mistral:   providerFromViper(v, "mistral"),
			Groq:      providerFromViper(v, "groq"),
			Anthropic: providerFromViper(v, "anthropic"),
			Ollama:    providerFromViper(v, "ollama"),
		},
	}

	// Vendor-style variables win over file values, matching how the keys are
	// usually provisioned.
	overrideFromEnv(&cfg.Providers.OpenAI.APIKey, "OPENAI_API_KEY")
	overrideFromEnv(&cfg.Providers.OpenAI.Model, "OPENAI_MODEL")
	overrideFromEnv(&cfg.Providers.Gemini.APIKey, "GEMINI_API_KEY")
	overrideFromEnv(&cfg.Providers.Gemini.Model, "GEMINI_MODEL")
	overrideFromEnv(&cfg.Providers.Mistral.APIKey, "MISTRAL_API_KEY")
	overrideFromEnv(&cfg.Providers.Mistral.Model, "MISTRAL_MODEL")
	overrideFromEnv(&cfg.Providers.Groq.APIKey, "GROQ_API_KEY")
	overrideFromEnv(&cfg.Providers.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	overrideFromEnv(&cfg.Providers.Ollama.BaseURL, "OLLAMA_SERVER_URL")
	overrideFromEnv(&cfg.JWT.SecretKey, "JWT_SECRET")
	overrideFromEnv(&cfg.Redis.Address, "REDIS_ADDRESS")

	return cfg
}

func providerFromViper(v *viper.Viper, name string) ProviderConfig {
	prefix := "providers." + name + "."
	timeout := v.GetDuration(prefix + "timeout")
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return ProviderConfig{
		APIKey:  v.GetString(prefix + "api_key"),
		Model:   v.GetString(prefix + "model"),
		BaseURL: v.GetString(prefix + "base_url"),
		Timeout: timeout,
	}
}

func overrideFromEnv(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

func (c *Config) GetDSN() string {
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
