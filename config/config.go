// Package config loads mudconsole settings from an optional YAML file,
// MUDCONSOLE_* environment variables and command line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ergochat/mudconsole/lib"
)

const (
	DefaultMudName = "Barren Realms"
	DefaultAddress = "barrenrealmsmud.com"
	DefaultPort    = 8000

	EnvPrefix = "MUDCONSOLE"
	fileName  = "mudconsole"
)

type Config struct {
	MudName     string `mapstructure:"mud_name"`
	Address     string `mapstructure:"address"`
	Port        int    `mapstructure:"port"`
	TLS         bool   `mapstructure:"tls"`
	TLSNoVerify bool   `mapstructure:"tls_noverify"`
	Origin      string `mapstructure:"origin"`

	PollInterval   time.Duration `mapstructure:"poll_interval"`
	PollTimeout    time.Duration `mapstructure:"poll_timeout"`
	SendTimeout    time.Duration `mapstructure:"send_timeout"`
	ReadChunkSize  int           `mapstructure:"read_chunk_size"`
	ScrollDuration time.Duration `mapstructure:"scroll_duration"`

	Transcript TranscriptConfig `mapstructure:"transcript"`
	Console    ConsoleConfig    `mapstructure:"console"`
	Log        LogConfig        `mapstructure:"log"`
}

type TranscriptConfig struct {
	MaxBytes int    `mapstructure:"max_bytes"`
	LogFile  string `mapstructure:"log_file"`
}

type ConsoleConfig struct {
	TUI         bool   `mapstructure:"tui"`
	Readline    bool   `mapstructure:"readline"`
	HistoryFile string `mapstructure:"history_file"`
	NoColor     bool   `mapstructure:"no_color"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MudName:        DefaultMudName,
		Address:        DefaultAddress,
		Port:           DefaultPort,
		PollInterval:   lib.DefaultPollInterval,
		PollTimeout:    lib.DefaultPollTimeout,
		SendTimeout:    lib.DefaultSendTimeout,
		ReadChunkSize:  lib.DefaultReadChunkSize,
		ScrollDuration: lib.DefaultScrollDuration,
		Transcript: TranscriptConfig{
			MaxBytes: lib.DefaultTranscriptMaxBytes,
		},
		Console: ConsoleConfig{
			TUI:      true,
			Readline: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/mudconsole/mudconsole.yaml or the
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName, fileName+".yaml"), nil
}

// Validate checks the settings a session cannot run without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if !lib.IsWebSocketURL(c.Address) && (c.Port < 1 || 65535 < c.Port) {
		errs = append(errs, fmt.Errorf("port must be a number 1-65535, got %d", c.Port))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %v", c.PollInterval))
	}
	if c.PollTimeout <= 0 {
		errs = append(errs, fmt.Errorf("poll_timeout must be positive, got %v", c.PollTimeout))
	}
	if c.SendTimeout < 0 {
		errs = append(errs, fmt.Errorf("send_timeout must not be negative, got %v", c.SendTimeout))
	}
	if c.ReadChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("read_chunk_size must be positive, got %d", c.ReadChunkSize))
	}
	if c.ScrollDuration < 0 {
		errs = append(errs, fmt.Errorf("scroll_duration must not be negative, got %v", c.ScrollDuration))
	}
	if c.Transcript.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("transcript.max_bytes must not be negative, got %d", c.Transcript.MaxBytes))
	}
	return errors.Join(errs...)
}

// RemoteAddress is the address shown to the user and written to logs.
func (c Config) RemoteAddress() string {
	if lib.IsWebSocketURL(c.Address) {
		return c.Address
	}
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

// Overrides holds command line values; nil fields are left alone.
type Overrides struct {
	MudName        *string
	Address        *string
	Port           *int
	TLS            *bool
	TLSNoVerify    *bool
	Origin         *string
	TranscriptFile *string
	MaxTranscript  *int
	NoTUI          *bool
	NoReadline     *bool
	HistoryFile    *string
	NoColor        *bool
	LogFile        *string
	LogLevel       *string
}

// Apply copies every set override onto c.
func (c *Config) Apply(o Overrides) {
	if o.MudName != nil {
		c.MudName = *o.MudName
	}
	if o.Address != nil {
		c.Address = *o.Address
	}
	if o.Port != nil {
		c.Port = *o.Port
	}
	if o.TLS != nil {
		c.TLS = *o.TLS
	}
	if o.TLSNoVerify != nil {
		c.TLSNoVerify = *o.TLSNoVerify
	}
	if o.Origin != nil {
		c.Origin = *o.Origin
	}
	if o.TranscriptFile != nil {
		c.Transcript.LogFile = *o.TranscriptFile
	}
	if o.MaxTranscript != nil {
		c.Transcript.MaxBytes = *o.MaxTranscript
	}
	if o.NoTUI != nil {
		c.Console.TUI = !*o.NoTUI
	}
	if o.NoReadline != nil {
		c.Console.Readline = !*o.NoReadline
	}
	if o.HistoryFile != nil {
		c.Console.HistoryFile = *o.HistoryFile
	}
	if o.NoColor != nil {
		c.Console.NoColor = *o.NoColor
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
}
