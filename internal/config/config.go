// Package config loads the command line configuration from YAML or TOML files
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REQINDEX_"

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Source kinds.
const (
	SourceLocal = "local"
	SourceS3    = "s3"
	SourceMinIO = "minio"
)

// Duration is a time.Duration that decodes from strings such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// SourceConfig describes where the record snapshot lives.
type SourceConfig struct {
	Kind        string `yaml:"kind" toml:"kind" validate:"oneof=local s3 minio"`
	Path        string `yaml:"path" toml:"path" validate:"required_if=Kind local"`
	Bucket      string `yaml:"bucket" toml:"bucket" validate:"required_unless=Kind local"`
	Prefix      string `yaml:"prefix" toml:"prefix"`
	Key         string `yaml:"key" toml:"key" validate:"required"`
	Endpoint    string `yaml:"endpoint" toml:"endpoint" validate:"required_if=Kind minio"`
	Region      string `yaml:"region" toml:"region"`
	AccessKey   string `yaml:"access_key" toml:"access_key"`
	SecretKey   string `yaml:"secret_key" toml:"secret_key"`
	Secure      bool   `yaml:"secure" toml:"secure"`
	Codec       string `yaml:"codec" toml:"codec" validate:"oneof=json go-json"`
	Compression string `yaml:"compression" toml:"compression" validate:"omitempty,oneof=none lz4 zstd"`
}

// Config is the complete command line configuration.
type Config struct {
	Source             SourceConfig `yaml:"source" toml:"source"`
	LogLevel           string       `yaml:"log_level" toml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat          string       `yaml:"log_format" toml:"log_format" validate:"oneof=text json"`
	MaxRelated         int          `yaml:"max_related" toml:"max_related" validate:"gte=1"`
	Workers            int          `yaml:"workers" toml:"workers" validate:"gte=0"`
	MinRebuildInterval Duration     `yaml:"min_rebuild_interval" toml:"min_rebuild_interval" validate:"gte=0"`
	Debounce           Duration     `yaml:"debounce" toml:"debounce" validate:"gte=0"`
	MetricsAddr        string       `yaml:"metrics_addr" toml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Kind:  SourceLocal,
			Path:  "data",
			Key:   "records.json",
			Codec: "go-json",
		},
		LogLevel:   "info",
		LogFormat:  "text",
		MaxRelated: 5,
		Debounce:   Duration(250 * time.Millisecond),
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SOURCE_KIND":        &cfg.Source.Kind,
		"SOURCE_PATH":        &cfg.Source.Path,
		"SOURCE_BUCKET":      &cfg.Source.Bucket,
		"SOURCE_PREFIX":      &cfg.Source.Prefix,
		"SOURCE_KEY":         &cfg.Source.Key,
		"SOURCE_ENDPOINT":    &cfg.Source.Endpoint,
		"SOURCE_REGION":      &cfg.Source.Region,
		"SOURCE_ACCESS_KEY":  &cfg.Source.AccessKey,
		"SOURCE_SECRET_KEY":  &cfg.Source.SecretKey,
		"SOURCE_CODEC":       &cfg.Source.Codec,
		"SOURCE_COMPRESSION": &cfg.Source.Compression,
		"LOG_LEVEL":          &cfg.LogLevel,
		"LOG_FORMAT":         &cfg.LogFormat,
		"METRICS_ADDR":       &cfg.MetricsAddr,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_RELATED": &cfg.MaxRelated,
		"WORKERS":     &cfg.Workers,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	durs := map[string]*Duration{
		"MIN_REBUILD_INTERVAL": &cfg.MinRebuildInterval,
		"DEBOUNCE":             &cfg.Debounce,
	}
	for name, dst := range durs {
		if v, ok := lookup(EnvPrefix + name); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
		}
	}

	if v, ok := lookup(EnvPrefix + "SOURCE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sSOURCE_SECURE: %w", EnvPrefix, err)
		}
		cfg.Source.Secure = b
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid %s", strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
