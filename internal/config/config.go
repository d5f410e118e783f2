package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/questhunt/internal/token"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/questhunt.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// CatalogPath points at the quest catalog YAML. Empty means the
	// bundled demo catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	// TokenKeyHex is the hex-encoded state token key. Must decode to
	// exactly the required key length; anything else is fatal at
	// startup, never a per-request error.
	TokenKeyHex string `env:"TOKEN_KEY,required"`

	// LocationCheck is the startup default for the proximity check. The
	// operator endpoint can flip it at runtime.
	LocationCheck bool `env:"LOCATION_CHECK" envDefault:"true"`

	// OperatorPasswordHash is the bcrypt hash guarding operator
	// endpoints. Empty disables them entirely.
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if _, err := cfg.TokenKey(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TokenKey decodes and validates the state token key.
func (c *Config) TokenKey() ([]byte, error) {
	key, err := hex.DecodeString(c.TokenKeyHex)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_KEY is not valid hex: %w", err)
	}
	if len(key) != token.KeySize {
		return nil, fmt.Errorf("TOKEN_KEY must be %d bytes (%d hex characters), got %d bytes",
			token.KeySize, token.KeySize*2, len(key))
	}
	return key, nil
}
