package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// CloudDomain is the hosted tagtog instance. Certificate verification is
// only relaxed for other (self-hosted) endpoints.
const CloudDomain = "https://tagtog.net"

type Config struct {
	Port string

	// tagtog connection
	TagtogDomain   string
	TagtogUsername string
	TagtogPassword string
	TagtogProject  string
	TagtogOwner    string

	// NER service
	NERServiceURL string
	NERModel      string

	// Optional bearer token for the webhook endpoint
	WebhookToken string
}

func Load() Config {
	// Environment variables win over .env entries; a missing .env is fine.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		TagtogDomain:   envOr("TAGTOG_DOMAIN", CloudDomain),
		TagtogUsername: os.Getenv("TAGTOG_USERNAME"),
		TagtogPassword: os.Getenv("TAGTOG_PASSWORD"),
		TagtogProject:  os.Getenv("TAGTOG_PROJECT"),
		TagtogOwner:    os.Getenv("TAGTOG_OWNER"),

		NERServiceURL: envOr("NER_URL", "http://localhost:8000"),
		NERModel:      envOr("NER_MODEL", "en_core_web_sm"),

		WebhookToken: os.Getenv("PRELABEL_WEBHOOK_TOKEN"),
	}

	// The project owner is usually the same account as the credentials.
	if cfg.TagtogOwner == "" {
		cfg.TagtogOwner = cfg.TagtogUsername
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TagtogUsername == "" {
		return fmt.Errorf("TAGTOG_USERNAME is required")
	}
	if c.TagtogPassword == "" {
		return fmt.Errorf("TAGTOG_PASSWORD is required")
	}
	if c.TagtogProject == "" {
		return fmt.Errorf("TAGTOG_PROJECT is required")
	}
	return nil
}

// VerifyTLS reports whether server certificates should be verified for the
// configured tagtog endpoint. Self-hosted instances commonly run with
// self-signed certificates.
func (c Config) VerifyTLS() bool {
	return c.TagtogDomain == CloudDomain
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
