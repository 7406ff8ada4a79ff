package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DBPath      string
	CatalogPath string // generated products.json
	ProductsDir string // image tree the catalog is built from
	PublicDir   string // filesystem dir served under /assets

	WhatsAppNumber string // checkout handoff target, digits only

	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8585"),
		DBPath:         getEnv("DB_PATH", "./scrunchcreate.db"),
		CatalogPath:    getEnv("CATALOG_PATH", "./data/products.json"),
		ProductsDir:    getEnv("PRODUCTS_DIR", "./public/assets/products"),
		PublicDir:      getEnv("PUBLIC_DIR", "./public"),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "911234567890"),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey reads a base64 key from the environment, generating a random
// development key (with a loud warning) when it is missing or too short.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("key not set, generating a random development key; set it in production", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("key invalid or shorter than 32 bytes, generating a random development key", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for key material
		panic("config: cannot read random bytes: " + err.Error())
	}
	return b
}
