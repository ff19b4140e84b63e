package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	AI       AIConfig
	GigaChat GigaChatConfig
	OCR      OCRConfig
	Storage  StorageConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
	// Format is json or console.
	Format string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
	// BodyLimit is the maximum request body in bytes, uploads included.
	BodyLimit int
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// AIConfig selects the completion backend. Provider "none" disables the
// model and leaves every analysis on the local fallbacks.
type AIConfig struct {
	Provider        string
	MaxPromptTokens int
	Timeout         time.Duration

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	BedrockRegion string
	BedrockModel  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type OCRConfig struct {
	// Provider is tesseract, gigachat or gemini. PDFs with a text layer are
	// always read locally.
	Provider  string
	Languages []string
}

type StorageConfig struct {
	Type          string
	Dir           string
	Bucket        string
	Region        string
	Prefix        string
	PublicBaseURL string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work on their own
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	bodyLimitMB, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "10"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	maxPromptTokens, _ := strconv.Atoi(getEnv("AI_MAX_PROMPT_TOKENS", "3000"))
	aiTimeout, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "60"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
			BodyLimit:    bodyLimitMB * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "mindgrid"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnv("DB_AUTO_MIGRATE", "true") == "true",
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
			MaxPromptTokens: maxPromptTokens,
			Timeout:         time.Duration(aiTimeout) * time.Second,
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			BedrockRegion:   getEnv("BEDROCK_REGION", "us-east-1"),
			BedrockModel:    getEnv("BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
		},
		OCR: OCRConfig{
			Provider:  strings.ToLower(getEnv("OCR_PROVIDER", "tesseract")),
			Languages: splitList(getEnv("OCR_LANGUAGES", "eng")),
		},
		Storage: StorageConfig{
			Type:          strings.ToLower(getEnv("STORAGE_TYPE", "local")),
			Dir:           getEnv("STORAGE_DIR", "uploads"),
			Bucket:        getEnv("S3_BUCKET", ""),
			Region:        getEnv("S3_REGION", ""),
			Prefix:        getEnv("S3_PREFIX", ""),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "/uploads"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
