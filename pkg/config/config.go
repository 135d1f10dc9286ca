package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Engine and backend identifiers
const (
	STTEngineWhisper    = "whisper"
	STTEngineAssemblyAI = "assemblyai"

	ChatEngineOpenAI = "openai"
	ChatEngineGemini = "gemini"

	RegistryBackendDocument = "document"
	RegistryBackendPostgres = "postgres"

	LockBackendMemory = "memory"
	LockBackendRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Media      MediaConfig
	Registry   RegistryConfig
	Database   DatabaseConfig
	Lock       LockConfig
	Redis      RedisConfig
	STTEngine  string
	Whisper    WhisperConfig
	Assembly   AssemblyAIConfig
	ChatEngine string
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Prompts    Prompts
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	MaxUploadSizeMB int
}

// MediaConfig holds filesystem locations and tool paths for the media pipeline
type MediaConfig struct {
	UploadDir     string
	OutputDir     string
	FramesDir     string
	TempDir       string
	MinAudioBytes int64
	FFmpegPath    string
	FFprobePath   string
}

// RegistryConfig selects the processing registry backend
type RegistryConfig struct {
	Backend      string
	DocumentPath string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// LockConfig controls the per-file in-flight guard
type LockConfig struct {
	Backend string
	TTL     time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WhisperConfig configures the local whisper.cpp engine
type WhisperConfig struct {
	BinaryPath string `envconfig:"BINARY_PATH" default:"whisper-cli"`
	ModelPath  string `envconfig:"MODEL_PATH" default:"models/ggml-base.bin"`
	Language   string `envconfig:"LANGUAGE" default:"auto"`
	Threads    int    `envconfig:"THREADS" default:"4"`
}

// AssemblyAIConfig configures the hosted AssemblyAI engine
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"API_KEY"`
	LanguageCode string `envconfig:"LANGUAGE_CODE"`
	// BaseURL overrides the SDK default endpoint when set
	BaseURL string `envconfig:"BASE_URL"`
}

// OpenAIConfig configures any OpenAI-compatible chat completion endpoint (OpenAI, Groq)
type OpenAIConfig struct {
	APIKey      string        `envconfig:"API_KEY"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	Model       string        `envconfig:"MODEL" default:"gpt-3.5-turbo"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.3"`
	MaxTokens   int           `envconfig:"MAX_TOKENS" default:"2048"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"120s"`
}

// GeminiConfig configures the Gemini chat engine
type GeminiConfig struct {
	APIKey string `envconfig:"API_KEY"`
	Model  string `envconfig:"MODEL" default:"gemini-2.0-flash"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			MaxUploadSizeMB: getEnvAsInt("MAX_UPLOAD_SIZE_MB", 500),
		},
		Media: MediaConfig{
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			OutputDir:     getEnv("OUTPUT_DIR", "processed"),
			FramesDir:     getEnv("FRAMES_DIR", "processed/frames"),
			TempDir:       getEnv("TEMP_DIR", os.TempDir()),
			MinAudioBytes: int64(getEnvAsInt("MIN_AUDIO_BYTES", 1024)),
			FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),
			FFprobePath:   getEnv("FFPROBE_PATH", "ffprobe"),
		},
		Registry: RegistryConfig{
			Backend:      getEnv("REGISTRY_BACKEND", RegistryBackendDocument),
			DocumentPath: getEnv("REGISTRY_FILE", "data/registry.json"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "video_digest"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Lock: LockConfig{
			Backend: getEnv("LOCK_BACKEND", LockBackendMemory),
			TTL:     getEnvAsDuration("LOCK_TTL", "30m"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		STTEngine:  strings.ToLower(getEnv("STT_ENGINE", STTEngineWhisper)),
		ChatEngine: strings.ToLower(getEnv("CHAT_ENGINE", ChatEngineOpenAI)),
		Prompts:    DefaultPrompts(),
	}

	// Engine sections are read with envconfig under their own prefixes
	if err := envconfig.Process("WHISPER", &config.Whisper); err != nil {
		return nil, fmt.Errorf("failed to read WHISPER_* settings: %w", err)
	}
	if err := envconfig.Process("ASSEMBLYAI", &config.Assembly); err != nil {
		return nil, fmt.Errorf("failed to read ASSEMBLYAI_* settings: %w", err)
	}
	if err := envconfig.Process("OPENAI", &config.OpenAI); err != nil {
		return nil, fmt.Errorf("failed to read OPENAI_* settings: %w", err)
	}
	if err := envconfig.Process("GEMINI", &config.Gemini); err != nil {
		return nil, fmt.Errorf("failed to read GEMINI_* settings: %w", err)
	}

	if path := getEnv("PROMPTS_FILE", ""); path != "" {
		prompts, err := LoadPrompts(path)
		if err != nil {
			return nil, err
		}
		config.Prompts = prompts
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.STTEngine {
	case STTEngineWhisper:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("WHISPER_MODEL_PATH is required when STT_ENGINE=whisper")
		}
	case STTEngineAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when STT_ENGINE=assemblyai")
		}
	default:
		return fmt.Errorf("unsupported STT_ENGINE %q", c.STTEngine)
	}

	switch c.ChatEngine {
	case ChatEngineOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when CHAT_ENGINE=openai")
		}
	case ChatEngineGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when CHAT_ENGINE=gemini")
		}
	default:
		return fmt.Errorf("unsupported CHAT_ENGINE %q", c.ChatEngine)
	}

	switch c.Registry.Backend {
	case RegistryBackendDocument:
		if c.Registry.DocumentPath == "" {
			return fmt.Errorf("REGISTRY_FILE is required when REGISTRY_BACKEND=document")
		}
		if c.Media.OutputDir != "" && within(c.Media.OutputDir, c.Registry.DocumentPath) {
			return fmt.Errorf("REGISTRY_FILE must live outside OUTPUT_DIR, which is served publicly")
		}
	case RegistryBackendPostgres:
	default:
		return fmt.Errorf("unsupported REGISTRY_BACKEND %q", c.Registry.Backend)
	}

	if c.Lock.Backend != LockBackendMemory && c.Lock.Backend != LockBackendRedis {
		return fmt.Errorf("unsupported LOCK_BACKEND %q", c.Lock.Backend)
	}
	if c.Server.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// within reports whether path resolves to dir or somewhere below it
func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
