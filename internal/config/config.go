package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Auth      AuthConfig
	LLM       LLMConfig
	STT       STTConfig
	Storage   StorageConfig
	Answer    AnswerConfig
	Diagram   DiagramConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	Version            string
	LogFilePath        string
	STTLogFilePath     string
	CorsAllowedOrigins string
	ShutdownTimeout    time.Duration
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type AuthConfig struct {
	APIKey string // empty disables auth
}

type LLMConfig struct {
	Provider         string // "openai" (alias "groq") or "gemini"
	OpenAIKey        string
	OpenAIBaseURL    string
	Model            string
	GeminiKey        string
	GeminiModel      string
	Temperature      float64
	TopP             float64
	MaxTokens        int // overrides the per-tier budget when > 0
	MaxTokensSimple  int
	MaxTokensCode    int
	MaxTokensComplex int
	Timeout          time.Duration
}

type STTConfig struct {
	Provider   string // "none" or "openai"
	Model      string
	ChunkBytes int
}

type StorageConfig struct {
	SessionsDir   string
	AnalyticsPath string // empty disables the audit sink
}

type AnswerConfig struct {
	HistoryWindow       int
	ClassifierRulesPath string
}

type DiagramConfig struct {
	KrokiURL string
	CacheTTL time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

// Load reads the given env files (".env" when none are given) and then the
// process environment. A missing file is not an error.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			log.Printf("Note: %s not found, using system environment", f)
		}
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			STTLogFilePath:     getEnv("STT_LOG_FILE_PATH", "logs/stt.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			ShutdownTimeout:    time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			OpenAIKey:        firstNonEmpty(getEnv("OPENAI_API_KEY", ""), getEnv("GROQ_API_KEY", "")),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:            getEnv("LLM_MODEL", "openai/gpt-oss-120b"),
			GeminiKey:        getEnv("GEMINI_API_KEY", ""),
			GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
			Temperature:      clamp(getEnvAsFloat("ANSWER_TEMPERATURE", 0.4), 0, 1),
			TopP:             clamp(getEnvAsFloat("LLM_TOP_P", 0), 0, 1),
			MaxTokens:        getEnvAsInt("LLM_MAX_TOKENS", 0),
			MaxTokensSimple:  getEnvAsInt("LLM_MAX_TOKENS_SIMPLE", 300),
			MaxTokensCode:    getEnvAsInt("LLM_MAX_TOKENS_CODE", 800),
			MaxTokensComplex: getEnvAsInt("LLM_MAX_TOKENS_COMPLEX", 1200),
			Timeout:          time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		STT: STTConfig{
			Provider:   strings.ToLower(getEnv("STT_PROVIDER", "none")),
			Model:      getEnv("STT_MODEL", "whisper-1"),
			ChunkBytes: getEnvAsInt("STT_CHUNK_BYTES", 256*1024),
		},
		Storage: StorageConfig{
			SessionsDir:   getEnv("SESSIONS_DIR", "data/sessions"),
			AnalyticsPath: getEnv("ANALYTICS_PATH", ""),
		},
		Answer: AnswerConfig{
			HistoryWindow:       getEnvAsInt("HISTORY_WINDOW", 5),
			ClassifierRulesPath: getEnv("CLASSIFIER_RULES_PATH", ""),
		},
		Diagram: DiagramConfig{
			KrokiURL: strings.TrimRight(getEnv("KROKI_URL", "https://kroki.io"), "/"),
			CacheTTL: time.Duration(getEnvAsInt("RENDER_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strings.TrimSpace(strValue)); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strings.TrimSpace(strValue)); err == nil {
		return value
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
