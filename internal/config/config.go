package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	PersistBackend  string
	DBPath          string
	DataDir         string
	PhotoPath       string
	LogLevel        string
	LogFile         string
	LogFormat       string
	Unrestricted    bool
	SweepInterval   time.Duration
	VisionBackend   string
	OllamaHost      string
	OllamaModel     string
	ClaudeAPIKey    string
	ClaudeModel     string
	ImportCacheSize int
	ImportCacheTTL  time.Duration
	ImportTimeout   time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		PersistBackend:  getEnv("PERSIST_BACKEND", "sqlite"),
		DBPath:          getEnv("DB_PATH", "/data/mealprep.db"),
		DataDir:         getEnv("DATA_DIR", "/data/collections"),
		PhotoPath:       getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		Unrestricted:    getBool("UNRESTRICTED", false),
		SweepInterval:   getDuration("SWEEP_INTERVAL", time.Minute),
		VisionBackend:   getEnv("VISION_BACKEND", "none"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "moondream"),
		ClaudeAPIKey:    getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-sonnet-4-5"),
		ImportCacheSize: getInt("IMPORT_CACHE_SIZE", 128),
		ImportCacheTTL:  getDuration("IMPORT_CACHE_TTL", time.Hour),
		ImportTimeout:   getDuration("IMPORT_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return b
}

func getInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
