package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnv permite apuntar a un YAML explícito.
const ConfigPathEnv = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "/etc/getpet/config.yaml"}

type Config struct {
	Env      string         `koanf:"env"`
	HTTP     HTTPConfig     `koanf:"http"`
	Log      LogConfig      `koanf:"log"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	S3       S3Config       `koanf:"s3"`
	Media    MediaConfig    `koanf:"media"`
	Firebase FirebaseConfig `koanf:"firebase"`
	Auth     AuthConfig     `koanf:"auth"`
	Mail     MailConfig     `koanf:"mail"`
	API      APIConfig      `koanf:"api"`
	Cookie   CookieConfig   `koanf:"cookie"`
}

type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json | console
}

type PostgresConfig struct {
	DSN            string `koanf:"dsn"`
	MaxConns       int32  `koanf:"max_conns"`
	MigrateOnStart bool   `koanf:"migrate_on_start"`
}

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type S3Config struct {
	Endpoint   string        `koanf:"endpoint"`
	AccessKey  string        `koanf:"access_key"`
	SecretKey  string        `koanf:"secret_key"`
	Bucket     string        `koanf:"bucket"`
	UseSSL     bool          `koanf:"use_ssl"`
	PresignTTL time.Duration `koanf:"presign_ttl"`
	MaxUpload  int64         `koanf:"max_upload"`
}

// MediaConfig se usa cuando no hay S3: las fotos se sirven desde BaseURL + key.
type MediaConfig struct {
	BaseURL string `koanf:"base_url"`
}

type FirebaseConfig struct {
	ProjectID string        `koanf:"project_id"`
	APIKey    string        `koanf:"api_key"`
	JWKSURL   string        `koanf:"jwks_url"`
	Timeout   time.Duration `koanf:"timeout"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	AccessTTL time.Duration `koanf:"access_ttl"`
	// DevMode habilita X-Debug-User-ID. Nunca en producción.
	DevMode bool `koanf:"dev_mode"`
}

type MailConfig struct {
	SMTPAddr string `koanf:"smtp_addr"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	To       string `koanf:"to"`
}

type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	ChoicesPerMinute  int           `koanf:"choices_per_minute"`
	ChoicesPer10Sec   int           `koanf:"choices_per_10s"`
}

type CookieConfig struct {
	Secure bool `koanf:"secure"`
}

func Default() Config {
	return Config{
		Env: "local",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Postgres: PostgresConfig{
			MaxConns: 10,
		},
		Redis: RedisConfig{
			CacheTTL: 5 * time.Minute,
		},
		S3: S3Config{
			Bucket:     "getpet-media",
			PresignTTL: 15 * time.Minute,
			MaxUpload:  10 << 20,
		},
		Media: MediaConfig{
			BaseURL: "http://localhost:8080/media",
		},
		Firebase: FirebaseConfig{
			JWKSURL: "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com",
			Timeout: 5 * time.Second,
		},
		Auth: AuthConfig{
			AccessTTL: 30 * 24 * time.Hour,
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			ChoicesPerMinute:  120,
			ChoicesPer10Sec:   30,
		},
	}
}

// Load arma la config en capas: defaults -> YAML (opcional) -> env.
// path vacío => CONFIG_PATH o rutas por defecto.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := splitCommaList(k, "api.cors_origins"); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.S3.Endpoint != "" && c.S3.Bucket == "" {
		errs = append(errs, errors.New("s3.bucket is required when s3.endpoint is set"))
	}
	if c.Firebase.ProjectID != "" && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required when firebase is enabled"))
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 bytes"))
	}
	if c.Auth.DevMode && c.Env == "production" {
		errs = append(errs, errors.New("auth.dev_mode is not allowed in production"))
	}
	if c.API.ChoicesPerMinute < 0 || c.API.ChoicesPer10Sec < 0 {
		errs = append(errs, errors.New("api choice limits must be >= 0"))
	}

	return errors.Join(errs...)
}

// envNames mapea variables de entorno a claves koanf.
var envNames = map[string]string{
	"app_env":              "env",
	"http_addr":            "http.addr",
	"http_read_timeout":    "http.read_timeout",
	"http_write_timeout":   "http.write_timeout",
	"http_request_timeout": "http.request_timeout",
	"log_level":            "log.level",
	"log_format":           "log.format",
	"postgres_dsn":         "postgres.dsn",
	"db_dsn":               "postgres.dsn",
	"postgres_max_conns":   "postgres.max_conns",
	"postgres_migrate":     "postgres.migrate_on_start",
	"redis_addr":           "redis.addr",
	"redis_password":       "redis.password",
	"redis_db":             "redis.db",
	"redis_cache_ttl":      "redis.cache_ttl",
	"s3_endpoint":          "s3.endpoint",
	"s3_access_key":        "s3.access_key",
	"s3_secret_key":        "s3.secret_key",
	"s3_bucket":            "s3.bucket",
	"s3_use_ssl":           "s3.use_ssl",
	"s3_presign_ttl":       "s3.presign_ttl",
	"media_base_url":       "media.base_url",
	"firebase_project_id":  "firebase.project_id",
	"firebase_api_key":     "firebase.api_key",
	"firebase_jwks_url":    "firebase.jwks_url",
	"jwt_secret":           "auth.jwt_secret",
	"jwt_access_ttl":       "auth.access_ttl",
	"auth_dev_mode":        "auth.dev_mode",
	"smtp_addr":            "mail.smtp_addr",
	"smtp_username":        "mail.username",
	"smtp_password":        "mail.password",
	"email_from":           "mail.from",
	"email_to":             "mail.to",
	"cors_origins":         "api.cors_origins",
	"rate_limit_requests":  "api.rate_limit_requests",
	"rate_limit_window":    "api.rate_limit_window",
	"choices_per_minute":   "api.choices_per_minute",
	"choices_per_10s":      "api.choices_per_10s",
	"cookie_secure":        "cookie.secure",
}

// envTransformFunc devuelve "" para variables que no son nuestras (koanf las ignora).
func envTransformFunc(key string) string {
	if mapped, ok := envNames[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func splitCommaList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
