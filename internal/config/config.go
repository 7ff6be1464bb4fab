package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/flashbar-dev/flashbar/internal/errors"
)

const (
	// DefaultFilename is the configuration file looked up when no
	// explicit path is given on the command line.
	DefaultFilename = "flashbar.json"

	// envPrefix selects the environment variables that override file
	// values. A double underscore descends one level, so
	// FLASHBAR_SERVER__ADDRESS maps to server.address.
	envPrefix = "FLASHBAR_"
)

// Config is the root of the application configuration. Values load in
// three layers: built-in defaults, then the JSON file, then FLASHBAR_*
// environment variables.
type Config struct {
	Debug   bool          `json:"debug"`
	Log     LogConfig     `json:"log"`
	Server  ServerConfig  `json:"server"`
	Session SessionConfig `json:"session"`
	I18n    I18nConfig    `json:"i18n"`
	Assets  AssetsConfig  `json:"assets"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" validate:"omitempty,oneof=text json"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address         string        `json:"address" validate:"required"`
	PageTitle       string        `json:"page_title"`
	ReadBufferSize  int           `json:"read_buffer_size" validate:"min=0"`
	WriteBufferSize int           `json:"write_buffer_size" validate:"min=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"min=0"`
	AllowedOrigins  []string      `json:"allowed_origins"`
}

// SessionConfig holds the per-session WebSocket settings.
type SessionConfig struct {
	ReadTimeout       time.Duration `json:"read_timeout" validate:"min=0"`
	WriteTimeout      time.Duration `json:"write_timeout" validate:"min=0"`
	HeartbeatInterval time.Duration `json:"heartbeat_interval" validate:"min=0"`
	IdleTimeout       time.Duration `json:"idle_timeout" validate:"min=0"`
	MaxMessageSize    int64         `json:"max_message_size" validate:"min=512"`
	MaxEventQueue     int           `json:"max_event_queue" validate:"min=1"`
	EnableCompression bool          `json:"enable_compression"`
}

// I18nConfig points at the localization catalog.
type I18nConfig struct {
	CatalogFile string `json:"catalog_file"`
	Locale      string `json:"locale"`
}

// AssetsConfig holds the destination for published client assets.
type AssetsConfig struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix"`
	Region string `json:"region"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":                  "info",
		"log.format":                 "text",
		"server.address":             ":8080",
		"server.page_title":          "Messages",
		"server.read_buffer_size":    4096,
		"server.write_buffer_size":   4096,
		"server.shutdown_timeout":    "10s",
		"session.read_timeout":       "60s",
		"session.write_timeout":      "10s",
		"session.heartbeat_interval": "30s",
		"session.idle_timeout":       "5m",
		"session.max_message_size":   64 * 1024,
		"session.max_event_queue":    256,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the default configuration file, falling back to defaults
// and environment variables when it does not exist.
func Load() (*Config, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile reads the named JSON configuration file. Environment
// variables with the FLASHBAR_ prefix override file values.
func LoadWithFile(filename string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.New("F080").Wrap(err).WithSubject(filename)
	}

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		// The default file is optional; an explicit one is not.
		if !os.IsNotExist(err) || filename != DefaultFilename {
			return nil, errors.New("F080").Wrap(err).WithSubject(filename)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, errors.New("F080").Wrap(err).WithSubject(filename)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, errors.New("F080").Wrap(err).WithSubject(filename)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.New("F081").Wrap(err)
		}
		fe := verrs[0]
		return errors.New("F081").
			WithSubject(fieldPath(fe)).
			WithDetail(fmt.Sprintf("value %v fails constraint %q", fe.Value(), fe.Tag()))
	}

	if err := checkAddress(c.Server.Address); err != nil {
		return err
	}
	if c.Session.HeartbeatInterval >= c.Session.ReadTimeout && c.Session.ReadTimeout > 0 {
		return errors.New("F081").
			WithSubject("session.heartbeat_interval").
			WithDetail("heartbeat interval must be shorter than the read timeout, or the connection times out between pings")
	}
	return nil
}

func checkAddress(address string) error {
	_, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return errors.New("F081").WithSubject("server.address").Wrap(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("F082").WithSubject(portStr)
	}
	return nil
}

// fieldPath turns a validator namespace like Config.Server.Address
// into the config file spelling server.address.
func fieldPath(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.StructNamespace(), "Config.")
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
