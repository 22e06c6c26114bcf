package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	ksink "mungebits/sink/kafka"
)

const engineEnvPrefix = "MUNGEBITS__"

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type StreamConfig struct {
	Enabled bool     `koanf:"enabled"`
	Driver  string   `koanf:"driver"` // kafka source driver, default sarama
	Source  string   `koanf:"source"` // kafka source YAML
	Sinks   []string `koanf:"sinks"`  // stdout|kafka

	KafkaSink ksink.Config `koanf:"kafka_sink"`
}

type Engine struct {
	SchemaVersion string `koanf:"schema_version"`

	Pipeline    string `koanf:"pipeline"`   // pipeline YAML
	TrainData   string `koanf:"train_data"` // CSV the pipeline is trained on at startup
	GRPCPort    int    `koanf:"grpc_port"`
	MetricsPort int    `koanf:"metrics_port"`

	Log    LogConfig    `koanf:"log"`
	Stream StreamConfig `koanf:"stream"`
}

// LoadEngineConfig merges the YAML at path (optional) with env-vars
// (prefix `MUNGEBITS__`, delimiter `__`). Relative file paths are resolved
// against the directory of the YAML.
func LoadEngineConfig(path string) (Engine, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Engine{}, err
		}
	}
	if sv := k.String("schema_version"); sv != "" && sv != SupportedSchema {
		return Engine{}, fmt.Errorf("engine schema_version %q not supported (want %q)", sv, SupportedSchema)
	}

	_ = k.Load(env.Provider(engineEnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, engineEnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)

	var cfg Engine
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyEngineDefaults(&cfg)
	if path != "" {
		dir := filepath.Dir(path)
		cfg.Pipeline = resolve(dir, cfg.Pipeline)
		cfg.TrainData = resolve(dir, cfg.TrainData)
		cfg.Stream.Source = resolve(dir, cfg.Stream.Source)
	}
	return cfg, nil
}

func applyEngineDefaults(c *Engine) {
	if c.SchemaVersion == "" {
		c.SchemaVersion = SupportedSchema
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = 7070
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 9100
	}
	if c.Stream.Driver == "" {
		c.Stream.Driver = "sarama"
	}
	if len(c.Stream.Sinks) == 0 {
		c.Stream.Sinks = []string{"stdout"}
	}
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
