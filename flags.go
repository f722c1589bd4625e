package main

import (
	"flag"

	"codeberg.org/tslocum/pips/config"
	"codeberg.org/tslocum/pips/game"
)

// parseFlags loads the configuration from the environment. Command line
// flags take precedence.
func parseFlags() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}

	flag.StringVar(&c.ServerAddress, "address", c.ServerAddress, "Server address")
	flag.BoolVar(&c.Negotiate, "negotiate", c.Negotiate, "Negotiate a connection token before connecting")
	flag.DurationVar(&c.ReconnectDelay, "reconnect", c.ReconnectDelay, "Delay before reconnecting")
	flag.StringVar(&c.Locale, "locale", c.Locale, "Language (defaults to the system locale)")
	flag.StringVar(&c.LocaleDir, "locales", c.LocaleDir, "Translations directory")
	flag.IntVar(&c.Debug, "debug", c.Debug, "Print debug information")
	flag.Parse()

	if c.Debug > game.MaxDebug {
		c.Debug = game.MaxDebug
	} else if c.Debug < 0 {
		c.Debug = 0
	}
	game.Debug = c.Debug
	return c, nil
}
