package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration. With an explicit path the file must exist;
// otherwise the default locations are searched and a missing file is fine.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, fileName))
		}
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mud_name", cfg.MudName)
	v.SetDefault("address", cfg.Address)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("tls", cfg.TLS)
	v.SetDefault("tls_noverify", cfg.TLSNoVerify)
	v.SetDefault("origin", cfg.Origin)
	v.SetDefault("poll_interval", cfg.PollInterval)
	v.SetDefault("poll_timeout", cfg.PollTimeout)
	v.SetDefault("send_timeout", cfg.SendTimeout)
	v.SetDefault("read_chunk_size", cfg.ReadChunkSize)
	v.SetDefault("scroll_duration", cfg.ScrollDuration)
	v.SetDefault("transcript.max_bytes", cfg.Transcript.MaxBytes)
	v.SetDefault("transcript.log_file", cfg.Transcript.LogFile)
	v.SetDefault("console.tui", cfg.Console.TUI)
	v.SetDefault("console.readline", cfg.Console.Readline)
	v.SetDefault("console.history_file", cfg.Console.HistoryFile)
	v.SetDefault("console.no_color", cfg.Console.NoColor)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	expandConfigEnv(&cfg)
	return cfg, nil
}

func expandConfigEnv(cfg *Config) {
	cfg.Transcript.LogFile = os.ExpandEnv(cfg.Transcript.LogFile)
	cfg.Console.HistoryFile = os.ExpandEnv(cfg.Console.HistoryFile)
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
}

// document mirrors Config with durations spelled the way people write them.
func document(cfg Config) map[string]any {
	return map[string]any{
		"mud_name":        cfg.MudName,
		"address":         cfg.Address,
		"port":            cfg.Port,
		"tls":             cfg.TLS,
		"tls_noverify":    cfg.TLSNoVerify,
		"origin":          cfg.Origin,
		"poll_interval":   cfg.PollInterval.String(),
		"poll_timeout":    cfg.PollTimeout.String(),
		"send_timeout":    cfg.SendTimeout.String(),
		"read_chunk_size": cfg.ReadChunkSize,
		"scroll_duration": cfg.ScrollDuration.String(),
		"transcript": map[string]any{
			"max_bytes": cfg.Transcript.MaxBytes,
			"log_file":  cfg.Transcript.LogFile,
		},
		"console": map[string]any{
			"tui":          cfg.Console.TUI,
			"readline":     cfg.Console.Readline,
			"history_file": cfg.Console.HistoryFile,
			"no_color":     cfg.Console.NoColor,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
		},
	}
}

// WriteDefault writes the default config to path, refusing to overwrite.
func WriteDefault(path string) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}

	data, err := yaml.Marshal(document(Default()))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
