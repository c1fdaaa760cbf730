package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/ideascope/internal/recovery"
)

// LLM providers.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

// defaultModels are used when IDEASCOPE_LLM_MODEL is unset.
var defaultModels = map[string]string{
	ProviderOllama:    "llama3.2",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderBedrock:   "anthropic.claude-3-haiku-20240307-v1:0",
}

// Config holds all configuration values.
type Config struct {
	// Completion model
	LLMProvider       string
	LLMModel          string
	OllamaHost        string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	AWSRegion         string
	Temperature       float64
	CompletionTimeout time.Duration

	// Recovery policy per stage
	SnapshotPolicy  recovery.Policy
	ExecutivePolicy recovery.Policy

	// Evidence providers
	SemanticScholarURL  string
	SemanticScholarKey  string
	OpenAlexURL         string
	OpenAlexMailto      string
	ArxivURL            string
	ArxivEnabled        bool
	UserAgent           string
	ProviderTimeout     time.Duration
	ProviderConcurrency int
	CacheSize           int
	CacheTTL            time.Duration

	// GitHub
	GitHubURL   string
	GitHubToken string

	// SurrealDB connection (report history)
	DBEnabled          bool
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// HTTP server
	HTTPAddr  string
	PublicURL string

	// Client
	ServerURL     string
	ClientTimeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present, and IDEASCOPE_CONFIG may name a
// YAML file whose keys are the same variable names. Variables set in the
// environment take precedence over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	file, err := readFile(os.Getenv("IDEASCOPE_CONFIG"))
	if err != nil {
		return Config{}, err
	}
	l := &loader{file: file}

	provider := strings.ToLower(l.get("IDEASCOPE_LLM_PROVIDER", ProviderOllama))

	cfg := Config{
		// Completion
		LLMProvider:       provider,
		LLMModel:          l.get("IDEASCOPE_LLM_MODEL", defaultModels[provider]),
		OllamaHost:        l.get("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:      l.get("OPENAI_API_KEY", ""),
		AnthropicAPIKey:   l.get("ANTHROPIC_API_KEY", ""),
		AWSRegion:         l.get("AWS_REGION", "us-east-1"),
		Temperature:       l.float("IDEASCOPE_TEMPERATURE", 0.2),
		CompletionTimeout: l.duration("IDEASCOPE_COMPLETION_TIMEOUT", 45*time.Second),

		// Recovery
		SnapshotPolicy:  l.policy("IDEASCOPE_STAGE1_FALLBACK", "allow"),
		ExecutivePolicy: l.policy("IDEASCOPE_STAGE2_FALLBACK", "allow"),

		// Evidence
		SemanticScholarURL:  l.get("IDEASCOPE_SEMANTIC_SCHOLAR_URL", "https://api.semanticscholar.org/graph/v1"),
		SemanticScholarKey:  l.get("SEMANTIC_SCHOLAR_API_KEY", ""),
		OpenAlexURL:         l.get("IDEASCOPE_OPENALEX_URL", "https://api.openalex.org"),
		OpenAlexMailto:      l.get("IDEASCOPE_OPENALEX_MAILTO", ""),
		ArxivURL:            l.get("IDEASCOPE_ARXIV_URL", "https://export.arxiv.org/api/query"),
		ArxivEnabled:        l.bool("IDEASCOPE_ARXIV_ENABLED", false),
		UserAgent:           l.get("IDEASCOPE_USER_AGENT", ""),
		ProviderTimeout:     l.duration("IDEASCOPE_PROVIDER_TIMEOUT", 8*time.Second),
		ProviderConcurrency: l.int("IDEASCOPE_PROVIDER_CONCURRENCY", 3),
		CacheSize:           l.int("IDEASCOPE_CACHE_SIZE", 256),
		CacheTTL:            l.duration("IDEASCOPE_CACHE_TTL", 15*time.Minute),

		// GitHub
		GitHubURL:   l.get("IDEASCOPE_GITHUB_URL", "https://api.github.com"),
		GitHubToken: l.get("GITHUB_TOKEN", ""),

		// SurrealDB
		DBEnabled:          l.bool("IDEASCOPE_DB_ENABLED", false),
		SurrealDBURL:       l.get("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: l.get("SURREALDB_NAMESPACE", "ideascope"),
		SurrealDBDatabase:  l.get("SURREALDB_DATABASE", "reports"),
		SurrealDBUser:      l.get("SURREALDB_USER", "root"),
		SurrealDBPass:      l.get("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: l.get("SURREALDB_AUTH_LEVEL", "root"),

		// HTTP
		HTTPAddr:  l.get("IDEASCOPE_HTTP_ADDR", ":8484"),
		PublicURL: strings.TrimSuffix(l.get("IDEASCOPE_PUBLIC_URL", "http://localhost:8484"), "/"),

		// Client
		ServerURL:     strings.TrimSuffix(l.get("IDEASCOPE_SERVER_URL", "http://localhost:8484"), "/"),
		ClientTimeout: l.duration("IDEASCOPE_CLIENT_TIMEOUT", 2*time.Minute),

		// Logging
		LogFile:  l.get("IDEASCOPE_LOG_FILE", "/tmp/ideascope.log"),
		LogLevel: parseLogLevel(l.get("IDEASCOPE_LOG_LEVEL", "INFO")),
	}

	if _, ok := defaultModels[cfg.LLMProvider]; !ok {
		l.fail("IDEASCOPE_LLM_PROVIDER", fmt.Errorf("unsupported provider %q", cfg.LLMProvider))
	}

	if err := errors.Join(l.errs...); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Policy returns the recovery policy configured for a stage name.
func (c Config) Policy(stage string) recovery.Policy {
	if stage == "stage2" {
		return c.ExecutivePolicy
	}
	return c.SnapshotPolicy
}

func readFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return values, nil
}

// loader resolves keys from the environment, then the config file, then the
// default, and collects parse errors.
type loader struct {
	file map[string]string
	errs []error
}

func (l *loader) get(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val := l.file[key]; val != "" {
		return val
	}
	return defaultVal
}

func (l *loader) fail(key string, err error) {
	l.errs = append(l.errs, fmt.Errorf("%s: %w", key, err))
}

func (l *loader) int(key string, defaultVal int) int {
	s := l.get(key, "")
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return v
}

func (l *loader) float(key string, defaultVal float64) float64 {
	s := l.get(key, "")
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return v
}

func (l *loader) bool(key string, defaultVal bool) bool {
	s := l.get(key, "")
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return v
}

func (l *loader) duration(key string, defaultVal time.Duration) time.Duration {
	s := l.get(key, "")
	if s == "" {
		return defaultVal
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		l.fail(key, err)
		return defaultVal
	}
	return v
}

func (l *loader) policy(key, defaultVal string) recovery.Policy {
	p, err := recovery.ParsePolicy(l.get(key, defaultVal))
	if err != nil {
		l.fail(key, err)
	}
	return p
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
