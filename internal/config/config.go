package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Provider names accepted by TRIAGE_PROVIDER.
const (
	ProviderArk    = "ark"
	ProviderOpenAI = "openai"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	Triage     TriageConfig
}

// Load reads the full configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	classifier, err := loadClassifierConfig()
	if err != nil {
		return nil, err
	}

	triage, err := loadTriageConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Classifier: classifier, Triage: triage}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// TriageConfig carries the product policy knobs of the triage engine.
type TriageConfig struct {
	// HistoryLimit bounds how many trailing turns are sent per
	// classification request.
	HistoryLimit int
	// RequestTimeout caps a single classification round-trip; expiry is
	// treated as backend unavailability.
	RequestTimeout time.Duration
}

func loadTriageConfig() (TriageConfig, error) {
	historyLimit := 8
	if override, err := parseOptionalIntEnv("TRIAGE_HISTORY_LIMIT"); err != nil {
		return TriageConfig{}, err
	} else if override != nil {
		if *override < 1 {
			historyLimit = 1
		} else {
			historyLimit = *override
		}
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("TRIAGE_REQUEST_TIMEOUT"); err != nil {
		return TriageConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	return TriageConfig{
		HistoryLimit:   historyLimit,
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ClassifierConfig selects and configures the model backend used for
// severity classification.
type ClassifierConfig struct {
	Provider    string
	Ark         ArkConfig
	OpenAI      OpenAIConfig
	Temperature *float64
}

// ArkConfig holds credentials for the Ark chat model backend.
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
}

// OpenAIConfig holds credentials for the OpenAI chat completion backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Enabled reports whether the Ark backend has usable credentials.
func (c ArkConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// Enabled reports whether the OpenAI backend has usable credentials.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// ResolveProvider picks the backend: the explicit TRIAGE_PROVIDER value when
// set, otherwise whichever backend has credentials (OpenAI preferred).
// Returns "" when no backend is usable.
func (c ClassifierConfig) ResolveProvider() string {
	switch c.Provider {
	case ProviderArk:
		if c.Ark.Enabled() {
			return ProviderArk
		}
		return ""
	case ProviderOpenAI:
		if c.OpenAI.Enabled() {
			return ProviderOpenAI
		}
		return ""
	}

	if c.OpenAI.Enabled() {
		return ProviderOpenAI
	}
	if c.Ark.Enabled() {
		return ProviderArk
	}
	return ""
}

// Enabled reports whether any classification backend can be constructed.
func (c ClassifierConfig) Enabled() bool {
	return c.ResolveProvider() != ""
}

// NewChatModel builds an Ark chat model instance from the configuration.
func (c ArkConfig) NewChatModel(ctx context.Context, temperature *float64) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY + ARK_MODEL or the AK/SK pair")
	}

	var temp *float32
	if temperature != nil {
		val := float32(*temperature)
		temp = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		Temperature: temp,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadClassifierConfig() (ClassifierConfig, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("TRIAGE_PROVIDER")))
	switch provider {
	case "", ProviderArk, ProviderOpenAI:
	default:
		return ClassifierConfig{}, fmt.Errorf("invalid TRIAGE_PROVIDER value: %q", provider)
	}

	temperature, err := parseOptionalFloatEnv("TRIAGE_TEMPERATURE")
	if err != nil {
		return ClassifierConfig{}, err
	}

	return ClassifierConfig{
		Provider: provider,
		Ark: ArkConfig{
			APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
			AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
			Model:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
			BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
			Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
		Temperature: temperature,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
