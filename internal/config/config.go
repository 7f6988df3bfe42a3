package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "pomo"
	configFileName = "config.yaml"

	// DefaultAlertSound is the alert played when an interval completes.
	DefaultAlertSound = "https://actions.google.com/sounds/v1/alarms/beep_short.ogg"
)

type Config struct {
	DatabasePath string `yaml:"database_path"`
	LogPath      string `yaml:"log_path"`
	LogLevel     string `yaml:"log_level"`
	Alert        Alert  `yaml:"alert"`
}

// Alert selects how completion is announced. With no command the terminal
// bell is used.
type Alert struct {
	Sound   string   `yaml:"sound"`
	Command []string `yaml:"command"`
}

// Default returns the configuration used when no file exists.
func Default() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DatabasePath: filepath.Join(dir, "pomo.db"),
		LogPath:      filepath.Join(dir, "pomo.log"),
		LogLevel:     "info",
		Alert:        Alert{Sound: DefaultAlertSound},
	}, nil
}

// Dir returns ~/.config/pomo
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, appName), nil
}

// DefaultPath returns ~/.config/pomo/config.yaml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the YAML config at path. A missing file yields the defaults;
// fields left empty in the file keep their default values.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData Config
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	apply(&cfg, fileData)
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Init writes the defaults to path when no config file exists there yet,
// so users have a file to edit. It reports whether a file was written.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	cfg, err := Default()
	if err != nil {
		return false, err
	}
	if err := Save(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}

func apply(cfg *Config, fileData Config) {
	if fileData.DatabasePath != "" {
		cfg.DatabasePath = expandHome(fileData.DatabasePath)
	}
	if fileData.LogPath != "" {
		cfg.LogPath = expandHome(fileData.LogPath)
	}
	if fileData.LogLevel != "" {
		cfg.LogLevel = fileData.LogLevel
	}
	if fileData.Alert.Sound != "" {
		cfg.Alert.Sound = fileData.Alert.Sound
	}
	if len(fileData.Alert.Command) > 0 {
		cfg.Alert.Command = fileData.Alert.Command
	}
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
