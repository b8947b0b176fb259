package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
)

// Config holds REPL settings.
type Config struct {
	IDs     string // "uuid" or "sequence"
	Spec    string // YAML file with the initial spec tree
	Trace   TraceConfig
	Metrics MetricsConfig
}

// TraceConfig holds tracing settings.
type TraceConfig struct {
	Level string // "error", "info" or "debug"
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled bool
}

// traceKeys are the tracers of the packages the REPL drives.
var traceKeys = []string{"treestate.tree", "treestate.store", "treestate.metrics"}

// LoadConfig reads configuration from an optional treestate.yaml (in the
// working directory or at $TREESTATE_CONFIG) and from the environment.
// Env var overrides use prefix TREESTATE_, e.g. TREESTATE_TRACE_LEVEL=debug.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("ids", "sequence")
	v.SetDefault("spec", "")
	v.SetDefault("trace.level", "error")
	v.SetDefault("metrics.enabled", false)

	v.SetConfigType("yaml")
	if cfgPath := os.Getenv("TREESTATE_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("treestate")
	}

	v.SetEnvPrefix("TREESTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func traceLevel(name string) (tracing.TraceLevel, error) {
	switch strings.ToLower(name) {
	case "", "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", name)
}

func (c Config) applyTracing() error {
	level, err := traceLevel(c.Trace.Level)
	if err != nil {
		return err
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
