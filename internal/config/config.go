// Package config loads reelcast's configuration from environment
// variables, with an optional YAML overlay read first.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable this service reads at startup.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Resolver ResolverConfig `yaml:"resolver"`
	Paths    PathsConfig    `yaml:"paths"`
	History  HistoryConfig  `yaml:"history"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"RC_HOST" default:"0.0.0.0"`
	Port int    `yaml:"port" env:"RC_PORT" default:"7666"`
}

type ResolverConfig struct {
	APIURL string `yaml:"api_url" env:"API_URL" default:"http://back:5000"`
	// APIKeys is required; its absence is fatal per spec §6.
	APIKeys string `yaml:"api_keys" env:"KYOO_APIKEYS"`
}

type PathsConfig struct {
	CacheRoot     string `yaml:"cache_root" env:"RC_CACHE_ROOT" default:"/cache"`
	MetadataRoot  string `yaml:"metadata_root" env:"RC_METADATA_ROOT" default:"/metadata"`
	FFmpegPath    string `yaml:"ffmpeg_path" env:"RC_FFMPEG_PATH" default:"ffmpeg"`
	InspectorPath string `yaml:"inspector_path" env:"RC_MEDIAINFO_PATH" default:"mediainfo"`
}

type HistoryConfig struct {
	DatabaseURL            string `yaml:"database_url" env:"DATABASE_URL" default:"reelcast_history.db"`
	EnableOfflineDownloads bool   `yaml:"enable_offline_downloads" env:"RC_ENABLE_OFFLINE_DOWNLOAD" default:"false"`
}

// FirstAPIKey returns the first comma-separated element of APIKeys, the
// value sent as X-API-KEY (spec §6).
func (r ResolverConfig) FirstAPIKey() string {
	for i := 0; i < len(r.APIKeys); i++ {
		if r.APIKeys[i] == ',' {
			return r.APIKeys[:i]
		}
	}
	return r.APIKeys
}

// MissingAPIKeysError is fatal at startup per spec §6.
type MissingAPIKeysError struct{}

func (e *MissingAPIKeysError) Error() string {
	return "config: KYOO_APIKEYS is required and was not set"
}

// Load reads an optional YAML overlay at yamlPath (ignored if it doesn't
// exist), then applies environment variables and `default` struct tags
// over it, following the teacher's reflect-driven env-loading pattern.
func Load(yamlPath string) (*Config, error) {
	cfg := &Config{}

	if yamlPath != "" {
		if data, err := os.ReadFile(yamlPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", yamlPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", yamlPath, err)
		}
	}

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, err
	}

	if cfg.Resolver.APIKeys == "" {
		return nil, &MissingAPIKeysError{}
	}

	return cfg, nil
}

func loadStructFromEnv(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue := os.Getenv(envTag)
		if envValue == "" {
			// A YAML-supplied value already present beats the default tag.
			if !isZero(field) {
				continue
			}
			envValue = fieldType.Tag.Get("default")
		}
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("config: setting %s: %w", fieldType.Name, err)
		}
	}
	return nil
}

func isZero(v reflect.Value) bool {
	return v.IsZero()
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}
	return nil
}
