package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// App holds site-wide settings consumed by message templates and
	// the admin role check.
	App *AppConfig `json:"app" yaml:"app"`

	// Session configures the visitor session store.
	Session *SessionConfig `json:"session" yaml:"session"`

	// Verification configures the phone verification flow.
	Verification *VerificationConfig `json:"verification" yaml:"verification"`

	// Messaging configures the outbound text-message channel.
	Messaging *MessagingConfig `json:"messaging" yaml:"messaging"`

	// Uploads configures request/profile image storage.
	Uploads *UploadsConfig `json:"uploads" yaml:"uploads"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// AppConfig defines site-wide application settings.
type AppConfig struct {
	// BaseURL is used to build the request links embedded in seller notifications.
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// DefaultCountryCode is prefixed to submitted phone numbers, e.g. "+964".
	DefaultCountryCode string `json:"defaultCountryCode" yaml:"defaultCountryCode"`

	// AdminPhones lists normalized phone numbers granted the admin role on login.
	AdminPhones []string `json:"adminPhones" yaml:"adminPhones"`
}

// SessionConfig defines the session store backend and TTL semantics.
type SessionConfig struct {
	// Provider is "redis" or "memory".
	Provider string `json:"provider" yaml:"provider"`

	// IdleTimeout bounds how long verification and login state survives
	// without activity.
	IdleTimeout time.Duration `json:"idleTimeout" yaml:"idleTimeout"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`
}

// RedisConfig defines the connection settings for the Redis session store.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// VerificationConfig defines one-time-code behavior.
type VerificationConfig struct {
	// MaxAttempts caps wrong-code submissions per session before the
	// verification state is discarded.
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// MessagingConfig defines the outbound message channel.
type MessagingConfig struct {
	// Provider is "whatsapp" for the HTTP gateway or "log" for the
	// development channel that only writes to the logger.
	Provider string `json:"provider" yaml:"provider"`

	APIURL string `json:"apiUrl" yaml:"apiUrl"`
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// SendTimeout bounds a single send against the external channel so a
	// provider outage cannot stall request approval.
	SendTimeout time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
}

// UploadsConfig defines image storage limits and location.
type UploadsConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. "file:///var/lib/souq/uploads".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// MaxSizeBytes rejects larger payloads before any write.
	MaxSizeBytes int64 `json:"maxSizeBytes" yaml:"maxSizeBytes"`
}

const (
	defaultIdleTimeout  = 30 * time.Minute
	defaultSendTimeout  = 10 * time.Second
	defaultMaxAttempts  = 5
	defaultMaxSizeBytes = 5 * 1024 * 1024
	defaultCountryCode  = "+964"
)

// LoadWithEnv loads .yaml files through koanf, with environment variables
// layered on top of the file values.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	cfg.Postgres.Replicas = buildReplicasFromEnv()

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App == nil {
		cfg.App = &AppConfig{}
	}
	if cfg.App.DefaultCountryCode == "" {
		cfg.App.DefaultCountryCode = defaultCountryCode
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.IdleTimeout <= 0 {
		cfg.Session.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Verification == nil {
		cfg.Verification = &VerificationConfig{}
	}
	if cfg.Verification.MaxAttempts <= 0 {
		cfg.Verification.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Messaging == nil {
		cfg.Messaging = &MessagingConfig{}
	}
	if cfg.Messaging.SendTimeout <= 0 {
		cfg.Messaging.SendTimeout = defaultSendTimeout
	}
	if cfg.Uploads == nil {
		cfg.Uploads = &UploadsConfig{}
	}
	if cfg.Uploads.MaxSizeBytes <= 0 {
		cfg.Uploads.MaxSizeBytes = defaultMaxSizeBytes
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
