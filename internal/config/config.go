// Package config resolves the CLI settings from flags, CMDLINE_* environment
// variables, .env files and an optional config file, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CMDLINE_LOG_LEVEL.
const EnvPrefix = "CMDLINE"

// Setting keys shared by flags, environment and config file.
const (
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyTestMode = "test-mode"
	KeyTheme    = "theme"
)

// Config is the resolved CLI configuration.
type Config struct {
	LogLevel string
	LogFile  string
	TestMode bool
	Theme    string
	// File is the config file that was read, empty if none.
	File string
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyTheme, "default")
	return v
}

// Load reads .env files from the user config directory and workDir, then the
// config file (explicit path, or config.yaml/config.toml in the user config
// directory), and resolves every key. Missing files are not errors.
func Load(v *viper.Viper, configFile, workDir string) (Config, error) {
	configDir, dirErr := UserConfigDir()

	var envFiles []string
	if dirErr == nil {
		envFiles = append(envFiles, filepath.Join(configDir, ".env"))
	}
	if workDir != "" {
		envFiles = append(envFiles, filepath.Join(workDir, ".env"))
	}
	if err := LoadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}

	switch {
	case configFile != "":
		v.SetConfigFile(configFile)
	case dirErr == nil:
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
	}
	if configFile != "" || dirErr == nil {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if configFile != "" || !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	return Config{
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		TestMode: v.GetBool(KeyTestMode),
		Theme:    v.GetString(KeyTheme),
		File:     v.ConfigFileUsed(),
	}, nil
}

// LoadDotEnv exports the CMDLINE_* entries of each existing file into the
// process environment. Later files override earlier ones, and variables
// already set in the environment are kept.
func LoadDotEnv(paths ...string) error {
	merged := make(map[string]string)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read .env file %s: %w", path, err)
		}
		envMap, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", path, err)
		}
		for key, value := range envMap {
			if strings.HasPrefix(key, EnvPrefix+"_") {
				merged[key] = value
			}
		}
	}
	for key, value := range merged {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/cmdline, falling back to ~/.config/cmdline.
func UserConfigDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "cmdline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cmdline"), nil
}
