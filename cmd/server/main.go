package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"econsent-backend/internal/config"
	"econsent-backend/internal/database"
	"econsent-backend/internal/handlers"
	"econsent-backend/internal/interpreter"
	"econsent-backend/internal/repository"
	"econsent-backend/internal/router"
	"econsent-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting E-Consent Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Consent Storage ────
	var consentStore repository.ConsentStore
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		if err := database.RunMigrations(pool, "migrations"); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		consentStore = repository.NewPgConsentStore(pool)
		log.Println("✓ PostgreSQL consent storage ready")
	} else {
		consentStore = repository.NewMemoryConsentStore()
		log.Println("✓ In-memory consent storage ready (set DATABASE_URL to persist)")
	}

	// ──── Step 3: Redis (optional TTS audio cache) ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		log.Println("✓ Redis connected (TTS audio cache enabled)")
	}

	// ──── Step 4: Gemini Oracle ────
	var oracle interpreter.Oracle
	if cfg.GeminiAPIKey != "" {
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		oracle = geminiService
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	} else {
		log.Println("⚠ GEMINI_API_KEY not set, chat replies will use fallback text")
	}

	// ──── Step 5: Chat Engine & Services ────
	engine := interpreter.NewEngine(oracle, interpreter.Options{MultiWord: cfg.ExtractorMultiWord})
	ttsService := services.NewTTSService(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID, redisClient)
	if cfg.ElevenLabsAPIKey == "" {
		log.Println("⚠ ELEVENLABS_API_KEY not set, /text-to-speech will return 503")
	}
	docExtract := services.NewDocExtractService()

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		handlers.NewChatHandler(engine),
		handlers.NewConsentHandler(consentStore),
		handlers.NewTTSHandler(ttsService),
		handlers.NewInfoHandler(docExtract),
		cfg.CORSOrigins,
		cfg.ChatRateLimit,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // TTS synthesis can take a while
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ E-Consent Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
