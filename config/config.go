package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"cooked/internal/errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultPath = "."

	defaultAPIPrefix      = "/api"
	defaultBackendTimeout = 15 * time.Second
	defaultTopicPrefix    = "/topic"
	defaultConnectTimeout = 10 * time.Second
	defaultFeedLimit      = 50
	defaultCompactLimit   = 5
	defaultSessionBucket  = "file:///tmp/cooked-session?create_dir=true"
	defaultSessionPrefix  = "session/"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// HTTP is the local surface the view layer reads the merged state from.
	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Backend *BackendConfig `json:"backend" yaml:"backend"`

	Push *PushConfig `json:"push" yaml:"push"`

	Session *SessionConfig `json:"session" yaml:"session"`

	Feed *FeedConfig `json:"feed" yaml:"feed"`

	Sync *SyncConfig `json:"sync" yaml:"sync"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// BackendConfig points at the authoritative REST backend
type BackendConfig struct {
	BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
	APIPrefix string        `json:"apiPrefix" yaml:"apiPrefix"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// PushConfig defines the STOMP-over-WebSocket push channel
type PushConfig struct {
	// WebSocket endpoint, e.g. ws://localhost:8080/ws-cookapp/websocket
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Prefix of the per-actor notification topics
	TopicPrefix string `json:"topicPrefix" yaml:"topicPrefix"`

	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`

	// STOMP heart-beat intervals; zero disables that direction
	HeartbeatSend time.Duration `json:"heartbeatSend" yaml:"heartbeatSend"`
	HeartbeatRecv time.Duration `json:"heartbeatRecv" yaml:"heartbeatRecv"`
}

// SessionConfig defines where the durable session key-value data lives
type SessionConfig struct {
	// gocloud.dev blob URL (file:///..., mem://)
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// FeedConfig bounds the notification feeds
type FeedConfig struct {
	Limit        int `json:"limit" yaml:"limit"`
	CompactLimit int `json:"compactLimit" yaml:"compactLimit"`
}

// SyncConfig controls periodic pull refreshes of the booking list
type SyncConfig struct {
	// Zero disables periodic refresh; push-triggered refreshes still happen.
	RefreshInterval time.Duration `json:"refreshInterval" yaml:"refreshInterval"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: BACKEND_BASEURL -> backend.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
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

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills every optional section so callers never nil-check.
func (cfg *Config) ApplyDefaults() {
	if cfg.Backend == nil {
		cfg.Backend = &BackendConfig{}
	}
	if cfg.Backend.APIPrefix == "" {
		cfg.Backend.APIPrefix = defaultAPIPrefix
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}

	if cfg.Push == nil {
		cfg.Push = &PushConfig{}
	}
	if cfg.Push.TopicPrefix == "" {
		cfg.Push.TopicPrefix = defaultTopicPrefix
	}
	if cfg.Push.ConnectTimeout <= 0 {
		cfg.Push.ConnectTimeout = defaultConnectTimeout
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.BucketURL == "" {
		cfg.Session.BucketURL = defaultSessionBucket
	}
	if cfg.Session.KeyPrefix == "" {
		cfg.Session.KeyPrefix = defaultSessionPrefix
	}

	if cfg.Feed == nil {
		cfg.Feed = &FeedConfig{}
	}
	if cfg.Feed.Limit <= 0 {
		cfg.Feed.Limit = defaultFeedLimit
	}
	if cfg.Feed.CompactLimit <= 0 {
		cfg.Feed.CompactLimit = defaultCompactLimit
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{}
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
