package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/blackjack/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   *GameSettings  `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings tunes the game rules. Pointer fields distinguish an explicit
// zero from an absent value: play_timeout_ms = 0 disables the play timer.
type GameSettings struct {
	StartingChips     int   `hcl:"starting_chips,optional"`
	MinimumBet        int   `hcl:"minimum_bet,optional"`
	MaxRounds         int   `hcl:"max_rounds,optional"`
	BettingTimeoutMS  int   `hcl:"betting_timeout_ms,optional"`
	RoundEndDelayMS   int   `hcl:"round_end_delay_ms,optional"`
	PlayTimeoutMS     *int  `hcl:"play_timeout_ms,optional"`
	SurfaceRejections *bool `hcl:"surface_rejections,optional"`
}

// DefaultConfig returns the default server configuration. The PORT
// environment variable overrides the listen port.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerSettings{
			Address:  "",
			Port:     defaultPort(),
			LogLevel: "info",
		},
		Game: &GameSettings{},
	}
	cfg.applyDefaults()
	return cfg
}

func defaultPort() int {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			return port
		}
	}
	return 3000
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort()
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	def := game.DefaultConfig()
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = def.StartingChips
	}
	if c.Game.MinimumBet == 0 {
		c.Game.MinimumBet = def.MinimumBet
	}
	if c.Game.MaxRounds == 0 {
		c.Game.MaxRounds = def.MaxRounds
	}
	if c.Game.BettingTimeoutMS == 0 {
		c.Game.BettingTimeoutMS = int(def.BettingTimeout / time.Millisecond)
	}
	if c.Game.RoundEndDelayMS == 0 {
		c.Game.RoundEndDelayMS = int(def.RoundEndDelay / time.Millisecond)
	}
	if c.Game.PlayTimeoutMS == nil {
		ms := int(def.PlayTimeout / time.Millisecond)
		c.Game.PlayTimeoutMS = &ms
	}
	if c.Game.SurfaceRejections == nil {
		on := def.SurfaceRejections
		c.Game.SurfaceRejections = &on
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.Game.MinimumBet <= 0 {
		return fmt.Errorf("minimum bet must be positive")
	}
	if c.Game.MinimumBet > c.Game.StartingChips {
		return fmt.Errorf("minimum bet %d exceeds starting chips %d", c.Game.MinimumBet, c.Game.StartingChips)
	}
	if c.Game.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive")
	}
	if c.Game.BettingTimeoutMS <= 0 {
		return fmt.Errorf("betting timeout must be positive")
	}
	if c.Game.RoundEndDelayMS <= 0 {
		return fmt.Errorf("round end delay must be positive")
	}
	if *c.Game.PlayTimeoutMS < 0 {
		return fmt.Errorf("play timeout must not be negative")
	}
	return nil
}

// GameConfig converts the settings into the game package's config.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		StartingChips:     c.Game.StartingChips,
		MinimumBet:        c.Game.MinimumBet,
		MaxRounds:         c.Game.MaxRounds,
		BettingTimeout:    time.Duration(c.Game.BettingTimeoutMS) * time.Millisecond,
		RoundEndDelay:     time.Duration(c.Game.RoundEndDelayMS) * time.Millisecond,
		PlayTimeout:       time.Duration(*c.Game.PlayTimeoutMS) * time.Millisecond,
		SurfaceRejections: *c.Game.SurfaceRejections,
	}
}

// Addr returns the full listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
