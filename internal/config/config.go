package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	Status   StatusConfig   `mapstructure:"status"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// GeminiConfig configures the structured generation service. APIKey is
// usually supplied through GEMINI_API_KEY or API_KEY rather than a file.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Session store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendS3     = "s3"
)

// StoreConfig selects where the three session slots live.
type StoreConfig struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	Namespace  string `mapstructure:"namespace"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Prefix          string `mapstructure:"prefix"`
}

// JWTConfig enables bearer authentication on the HTTP API when Secret is set.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// TrackerConfig names the IANA zone that decides what "today" is.
type TrackerConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type StatusConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Location resolves the tracker timezone, falling back to UTC.
func (t TrackerConfig) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(t.Timezone)
}

// LoadConfig reads config.yaml from path (when present), then environment
// variables, on top of the defaults below.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// The credential has two accepted names. The first one set wins.
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, err
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}
	config.Store.Backend = strings.ToLower(strings.TrimSpace(config.Store.Backend))
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "120s")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/")
	v.SetDefault("gemini.timeout", "0s")

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.dir", "data")
	v.SetDefault("store.namespace", "default")
	v.SetDefault("store.sqlite_path", "data/vitality.db")

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "vitality")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.prefix", "vitality/")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")

	v.SetDefault("tracker.timezone", "UTC")
	v.SetDefault("status.interval", "2.5s")
}
