package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/token"
)

// Config holds the simulator configuration.
type Config struct {
	CatalogDir  string `env:"GACHA_CATALOG_DIR" envDefault:"configs/catalog" validate:"required"`
	DefaultPool string `env:"GACHA_DEFAULT_POOL"` // empty: the catalog's default

	MaxPity5  int     `env:"GACHA_MAX_PITY_5" envDefault:"80" validate:"gte=1"`
	MaxPity4  int     `env:"GACHA_MAX_PITY_4" envDefault:"10" validate:"gte=1"`
	BaseProb5 float64 `env:"GACHA_BASE_PROB_5" envDefault:"0.008" validate:"gte=0,lte=1"`
	BaseProb4 float64 `env:"GACHA_BASE_PROB_4" envDefault:"0.06" validate:"gte=0,lte=1"`

	CharacterAlwaysUp bool `env:"GACHA_CHARACTER_ALWAYS_UP" envDefault:"false"`
	ItemAlwaysUp      bool `env:"GACHA_ITEM_ALWAYS_UP" envDefault:"true"`

	TokenName       string `env:"GACHA_TOKEN_NAME" envDefault:"Astrite"`
	TokenPerDraw    int    `env:"GACHA_TOKEN_PER_DRAW" envDefault:"160" validate:"gte=0"`
	TokenPerTenDraw int    `env:"GACHA_TOKEN_PER_TEN_DRAW" envDefault:"1600" validate:"gte=0"`

	WatchInterval time.Duration `env:"GACHA_WATCH_INTERVAL" envDefault:"2s" validate:"gt=0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// Load reads the configuration from environment variables, after loading a
// .env file when one exists.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every failing variable.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Rules converts the draw settings into engine rules.
func (c *Config) Rules() gacha.Rules {
	return gacha.Rules{
		MaxPity5:          c.MaxPity5,
		MaxPity4:          c.MaxPity4,
		BaseProb5:         c.BaseProb5,
		BaseProb4:         c.BaseProb4,
		CharacterAlwaysUp: c.CharacterAlwaysUp,
		ItemAlwaysUp:      c.ItemAlwaysUp,
	}
}

// Token returns the draw currency.
func (c *Config) Token() token.Token {
	return token.Token{
		Name:       c.TokenName,
		PerDraw:    c.TokenPerDraw,
		PerTenDraw: c.TokenPerTenDraw,
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, logger.DefaultServiceName, logger.DefaultVersion, logger.EnvironmentDev, false)
}
