package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// CORS
	CORSOrigins []string

	// Gemini AI (optional; without a key chat replies use fallback text)
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// ElevenLabs TTS (optional; without a key /text-to-speech returns 503)
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// Storage (optional; without DATABASE_URL consents live in memory)
	DatabaseURL string

	// Redis (optional; without REDIS_URL TTS audio is not cached)
	RedisURL string

	// Chat behavior
	ExtractorMultiWord bool
	ChatRateLimit      int // requests per minute per IP
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		CORSOrigins:          splitOrigins(getEnvOrDefault("CORS_ORIGINS", "http://localhost:8081")),
		GeminiAPIKey:         getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		ElevenLabsAPIKey:     getEnvOrDefault("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:    getEnvOrDefault("ELEVENLABS_VOICE_ID", "9BWtsMINqrJLrRacOk9x"),
		DatabaseURL:          getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		ExtractorMultiWord:   getEnvAsBoolOrDefault("EXTRACTOR_MULTIWORD", false),
		ChatRateLimit:        getEnvAsIntOrDefault("CHAT_RATE_LIMIT", 30),
	}

	return cfg
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
