package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"econsent-backend/internal/handlers"
	"econsent-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	consentHandler *handlers.ConsentHandler,
	ttsHandler *handlers.TTSHandler,
	infoHandler *handlers.InfoHandler,
	corsOrigins []string,
	chatRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(corsOrigins))

	// The chat endpoints front a metered LLM API, so they get their own limiter.
	chatLimiter := middleware.NewRateLimiter(chatRateLimit, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// ──── Chat Routes ────
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter.Middleware)
			r.Post("/chat", chatHandler.Ask)
			r.Post("/chat/text", chatHandler.Ask) // path the frontend uses
		})

		// ──── Consent Routes ────
		r.Route("/consents", func(r chi.Router) {
			r.Post("/", consentHandler.Submit)
			r.Get("/", consentHandler.List)
			r.Get("/{id}", consentHandler.Get)
			r.Patch("/{id}", consentHandler.UpdateStatus)
			r.Delete("/{id}", consentHandler.Delete)
		})

		// ──── TTS & Info Routes ────
		r.Post("/text-to-speech", ttsHandler.Speak)
		r.Post("/info/extract", infoHandler.Extract)
	})

	// Legacy mount kept for frontends built against the hosted functions path
	r.Post("/functions/v1/text-to-speech", ttsHandler.Speak)

	return r
}
