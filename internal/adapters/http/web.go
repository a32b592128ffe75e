package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"courtside/internal/adapters/email"
	"courtside/internal/adapters/http/middleware"
	accountStore "courtside/internal/adapters/storage/account"
	leagueStore "courtside/internal/adapters/storage/league"
	scheduleStore "courtside/internal/adapters/storage/schedule"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	LeagueStore   leagueStore.Store
	ScheduleStore scheduleStore.Store
}

// Options carries the editor configuration the handlers need.
type Options struct {
	Season             string       // season the editor operates on
	NotifyEmail        string       // recipient of the saved-schedule notification, empty disables
	Sender             email.Sender // nil disables notifications
	DisableLocking     bool         // admin tooling: skip the week lock policy
	RateLimitPerSecond int          // per-IP request budget; 0 falls back to the default
}

// defaultRateLimitPerSecond applies when Options leaves the limit unset.
const defaultRateLimitPerSecond = 10

// loadCSRFKey reads the CSRF secret from COURTSIDE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("COURTSIDE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("COURTSIDE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("COURTSIDE_ENV") == "production" {
		log.Fatal("COURTSIDE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set COURTSIDE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global options instance (set by NewMux)
var options Options

// Global session store instance
var sessions *middleware.SessionStore

// Global per-session editor state registry
var editors *editorRegistry

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, opts Options) http.Handler {
	stores = s
	options = opts
	sessions = middleware.NewSessionStore()
	editors = newEditorRegistry()
	middleware.SecureCookies = os.Getenv("COURTSIDE_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	rps := opts.RateLimitPerSecond
	if rps <= 0 {
		rps = defaultRateLimitPerSecond
	}
	limiter := middleware.NewRateLimiter(rps, time.Second)

	// Apply middleware: RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
