// Package config loads settings from the environment.
package config

import (
	"fmt"
	"time"

	"codeberg.org/tslocum/pips/dice"
	"github.com/caarlos0/env/v11"
)

// DefaultServerAddress is the hub used when no address is configured.
const DefaultServerAddress = "http://localhost:5369/gamehub"

// Config holds the client settings.
type Config struct {
	ServerAddress  string        `env:"PIPS_SERVER"          envDefault:"http://localhost:5369/gamehub"`
	Negotiate      bool          `env:"PIPS_NEGOTIATE"`
	ReconnectDelay time.Duration `env:"PIPS_RECONNECT_DELAY" envDefault:"3s"`

	DiceTick    time.Duration `env:"PIPS_DICE_TICK"    envDefault:"80ms"`
	DiceMinimum time.Duration `env:"PIPS_DICE_MINIMUM" envDefault:"1s"`
	DiceHold    time.Duration `env:"PIPS_DICE_HOLD"    envDefault:"1500ms"`

	NoticeDuration time.Duration `env:"PIPS_NOTICE_DURATION" envDefault:"4s"`

	Locale    string `env:"PIPS_LOCALE"`
	LocaleDir string `env:"PIPS_LOCALE_DIR"`

	Debug int `env:"PIPS_DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration read from the environment.
func Load() (*Config, error) {
	c := &Config{}
	if err := ParseEnv(c); err != nil {
		return nil, err
	}
	if c.ServerAddress == "" {
		c.ServerAddress = DefaultServerAddress
	}
	return c, nil
}

// Timing returns the dice animation timing.
func (c *Config) Timing() dice.Timing {
	return dice.Timing{
		Tick:    c.DiceTick,
		Minimum: c.DiceMinimum,
		Hold:    c.DiceHold,
	}
}
