package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	emailPkg "courtside/internal/adapters/email"
	web "courtside/internal/adapters/http"
	"courtside/internal/adapters/storage"
	accountStore "courtside/internal/adapters/storage/account"
	leagueStore "courtside/internal/adapters/storage/league"
	scheduleStore "courtside/internal/adapters/storage/schedule"
	"courtside/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	accounts := accountStore.NewSQLiteStore(timedDB)
	leagues := leagueStore.NewSQLiteStore(timedDB)
	schedules := scheduleStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  accounts,
		LeagueStore:   leagues,
		ScheduleStore: schedules,
	}

	// Seed default admin account if no accounts exist
	seedAdmin := orchestrators.SeedAdminInput{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedAdmin, orchestrators.SeedAdminDeps{AccountStore: accounts}); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed the default league and season if the database is empty
	season, err := orchestrators.ExecuteSeedLeague(context.Background(), orchestrators.SeedLeagueDeps{
		LeagueStore:   leagues,
		ScheduleStore: schedules,
	})
	if err != nil {
		log.Fatalf("failed to seed league: %v", err)
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NoopSender{}
		if cfg.Env == "production" {
			log.Println("WARNING: COURTSIDE_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set COURTSIDE_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(cfg.StaticDir, stores, web.Options{
		Season:         season,
		NotifyEmail:    cfg.NotifyEmail,
		Sender:         sender,
		DisableLocking: cfg.DisableLocking,
	})

	log.Printf("Courtside %s starting on %s (env=%s, season=%q)", version, cfg.Addr, cfg.Env, season)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
