package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv. They win over the YAML file.
const (
	EnvConfigPath  = "SCENE_CONFIG"
	EnvVariant     = "SCENE_VARIANT"
	EnvTargetFPS   = "SCENE_TARGET_FPS"
	EnvLogLevel    = "SCENE_LOG_LEVEL"
	EnvLogPath     = "SCENE_LOG_PATH"
	EnvMetricsAddr = "SCENE_METRICS_ADDR"
	EnvShowHUD     = "SCENE_SHOW_HUD"
)

// LoadDotEnv reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already set in the process environment are left alone.
// The file may be missing; that is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		// Remove surrounding quotes if present
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

// PathFromEnv returns SCENE_CONFIG when set, otherwise fallback.
func PathFromEnv(fallback string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return fallback
}

// ApplyEnv overrides cfg fields from SCENE_* variables. Priority is env -> file -> default.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvVariant); v != "" {
		cfg.Variant = v
	}
	if v := os.Getenv(EnvTargetFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTargetFPS, err)
		}
		cfg.Window.TargetFPS = fps
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv(EnvShowHUD); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowHUD, err)
		}
		cfg.Window.ShowHUD = show
	}
	return nil
}

// Resolve loads the scene config the way the commands do: dotenv file first, then the YAML file named by
// SCENE_CONFIG (or path), then SCENE_* overrides. The result is not validated.
func Resolve(dotenv, path string) (Config, error) {
	if dotenv != "" {
		if err := LoadDotEnv(dotenv); err != nil {
			return Default(), fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	cfg, err := Load(PathFromEnv(path))
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
