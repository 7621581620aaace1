package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pkgstrings "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devSecret = "dev-secret-key-change-in-production"
)

// Config is the resolved runtime configuration. Values are applied in order
// defaults -> YAML file (CONFIG_FILE) -> environment variables.
type Config struct {
	Environment  string             `yaml:"environment"`
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Biometric    BiometricConfig    `yaml:"biometric"`
	Nominee      NomineeConfig      `yaml:"nominee"`
	Session      SessionConfig      `yaml:"session"`
	Storage      StorageConfig      `yaml:"storage"`
	Notification NotificationConfig `yaml:"notification"`
	Admin        AdminConfig        `yaml:"admin"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Principal    PrincipalConfig    `yaml:"principal"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig selects Postgres. An empty URL runs every store in memory.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

// RedisConfig selects the Redis session store. An empty URL keeps sessions in memory.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// KafkaConfig configures the notification and audit topics. Without brokers
// notifications are logged instead of published and the outbox relay is off.
type KafkaConfig struct {
	Brokers        []string      `yaml:"brokers"`
	ClientID       string        `yaml:"client_id"`
	MessageTopic   string        `yaml:"message_topic"`
	VoiceTopic     string        `yaml:"voice_topic"`
	AuditTopic     string        `yaml:"audit_topic"`
	EnsureTopics   bool          `yaml:"ensure_topics"`
	Partitions     int32         `yaml:"partitions"`
	Replication    int16         `yaml:"replication"`
	OutboxInterval time.Duration `yaml:"outbox_interval"`
	OutboxBatch    int           `yaml:"outbox_batch"`
}

type BiometricConfig struct {
	EncryptionSecret string  `yaml:"encryption_secret"`
	KDFSalt          string  `yaml:"kdf_salt"`
	MatchThreshold   float64 `yaml:"match_threshold"`
}

type NomineeConfig struct {
	TokenSecret string        `yaml:"token_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	// RejectedBlocksReregistration keeps a rejected nominee record counting
	// against the one-nominee-per-principal rule.
	RejectedBlocksReregistration bool   `yaml:"rejected_blocks_reregistration"`
	VerificationURL              string `yaml:"verification_url"`
}

type SessionConfig struct {
	SigningKey string        `yaml:"signing_key"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	TTL        time.Duration `yaml:"ttl"`
}

// StorageConfig selects the document backend: "file" or "s3".
type StorageConfig struct {
	Backend        string `yaml:"backend"`
	Dir            string `yaml:"dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	S3Bucket       string `yaml:"s3_bucket"`
	S3Region       string `yaml:"s3_region"`
	S3Endpoint     string `yaml:"s3_endpoint"`
	S3AccessKey    string `yaml:"s3_access_key"`
	S3SecretKey    string `yaml:"s3_secret_key"`
}

type NotificationConfig struct {
	DispatchTimeout  time.Duration `yaml:"dispatch_timeout"`
	BreakerFailures  int           `yaml:"breaker_failures"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
	BreakerSuccesses int           `yaml:"breaker_successes"`
}

// RateLimitConfig caps requests per client IP and minute for each endpoint
// class. Windows live in Redis when it is configured.
type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Window       time.Duration `yaml:"window"`
	Verification int           `yaml:"verification"`
	Biometric    int           `yaml:"biometric"`
	Write        int           `yaml:"write"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

// PrincipalConfig points at an optional YAML list of principals loaded into
// the directory at startup.
type PrincipalConfig struct {
	SeedFile string `yaml:"seed_file"`
}

// Defaults returns the development configuration.
func Defaults() Config {
	return Config{
		Environment: EnvDevelopment,
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			ClientID:       "pension-core",
			MessageTopic:   "pension.notifications.message",
			VoiceTopic:     "pension.notifications.voice",
			AuditTopic:     "pension.audit",
			EnsureTopics:   true,
			Partitions:     3,
			Replication:    1,
			OutboxInterval: 2 * time.Second,
			OutboxBatch:    100,
		},
		Biometric: BiometricConfig{
			EncryptionSecret: devSecret,
			KDFSalt:          "pension-face-template",
			MatchThreshold:   0.6,
		},
		Nominee: NomineeConfig{
			TokenSecret:                  devSecret,
			TokenTTL:                     72 * time.Hour,
			RejectedBlocksReregistration: true,
			VerificationURL:              "http://localhost:8080/nominees/verify",
		},
		Session: SessionConfig{
			SigningKey: devSecret,
			Issuer:     "pension-core",
			Audience:   "pension-portal",
			TTL:        30 * time.Minute,
		},
		Storage: StorageConfig{
			Backend:        "file",
			Dir:            "./data/documents",
			MaxUploadBytes: 10 << 20,
			S3Region:       "us-east-1",
		},
		Notification: NotificationConfig{
			DispatchTimeout:  5 * time.Second,
			BreakerFailures:  5,
			BreakerCooldown:  30 * time.Second,
			BreakerSuccesses: 2,
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			Window:       time.Minute,
			Verification: 10,
			Biometric:    20,
			Write:        30,
		},
	}
}

// Load resolves configuration from defaults, the optional CONFIG_FILE and env.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.overlayEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) overlayEnv() {
	c.Environment = envOrDefault("APP_ENV", c.Environment)
	c.Server.Addr = envOrDefault("SERVER_ADDR", c.Server.Addr)
	c.Server.ShutdownTimeout = envDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Log.Level = envOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("LOG_FORMAT", c.Log.Format)

	c.Database.URL = envOrDefault("DATABASE_URL", c.Database.URL)
	c.Database.MaxOpenConns = envInt("DATABASE_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.AutoMigrate = envBool("DATABASE_AUTO_MIGRATE", c.Database.AutoMigrate)

	c.Redis.URL = envOrDefault("REDIS_URL", c.Redis.URL)
	c.Redis.PoolSize = envInt("REDIS_POOL_SIZE", c.Redis.PoolSize)

	c.Kafka.Brokers = envCSV("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.ClientID = envOrDefault("KAFKA_CLIENT_ID", c.Kafka.ClientID)
	c.Kafka.MessageTopic = envOrDefault("KAFKA_MESSAGE_TOPIC", c.Kafka.MessageTopic)
	c.Kafka.VoiceTopic = envOrDefault("KAFKA_VOICE_TOPIC", c.Kafka.VoiceTopic)
	c.Kafka.AuditTopic = envOrDefault("KAFKA_AUDIT_TOPIC", c.Kafka.AuditTopic)
	c.Kafka.EnsureTopics = envBool("KAFKA_ENSURE_TOPICS", c.Kafka.EnsureTopics)

	c.Biometric.EncryptionSecret = envOrDefault("BIOMETRIC_ENCRYPTION_SECRET", c.Biometric.EncryptionSecret)
	c.Biometric.KDFSalt = envOrDefault("BIOMETRIC_KDF_SALT", c.Biometric.KDFSalt)
	c.Biometric.MatchThreshold = envFloat("BIOMETRIC_MATCH_THRESHOLD", c.Biometric.MatchThreshold)

	c.Nominee.TokenSecret = envOrDefault("NOMINEE_TOKEN_SECRET", c.Nominee.TokenSecret)
	c.Nominee.TokenTTL = envDuration("NOMINEE_TOKEN_TTL", c.Nominee.TokenTTL)
	c.Nominee.RejectedBlocksReregistration = envBool("NOMINEE_REJECTED_BLOCKS_REREGISTRATION", c.Nominee.RejectedBlocksReregistration)
	c.Nominee.VerificationURL = envOrDefault("NOMINEE_VERIFICATION_URL", c.Nominee.VerificationURL)

	c.Session.SigningKey = envOrDefault("JWT_SIGNING_KEY", c.Session.SigningKey)
	c.Session.TTL = envDuration("SESSION_TTL", c.Session.TTL)

	c.Storage.Backend = strings.ToLower(envOrDefault("STORAGE_BACKEND", c.Storage.Backend))
	c.Storage.Dir = envOrDefault("STORAGE_DIR", c.Storage.Dir)
	c.Storage.MaxUploadBytes = int64(envInt("STORAGE_MAX_UPLOAD_BYTES", int(c.Storage.MaxUploadBytes)))
	c.Storage.S3Bucket = envOrDefault("S3_BUCKET", c.Storage.S3Bucket)
	c.Storage.S3Region = envOrDefault("S3_REGION", c.Storage.S3Region)
	c.Storage.S3Endpoint = envOrDefault("S3_ENDPOINT", c.Storage.S3Endpoint)
	c.Storage.S3AccessKey = envOrDefault("S3_ACCESS_KEY", c.Storage.S3AccessKey)
	c.Storage.S3SecretKey = envOrDefault("S3_SECRET_KEY", c.Storage.S3SecretKey)

	c.Notification.DispatchTimeout = envDuration("NOTIFICATION_DISPATCH_TIMEOUT", c.Notification.DispatchTimeout)

	c.Admin.Token = envOrDefault("ADMIN_API_TOKEN", c.Admin.Token)
	c.RateLimit.Enabled = envBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.Verification = envInt("RATE_LIMIT_VERIFICATION", c.RateLimit.Verification)
	c.RateLimit.Biometric = envInt("RATE_LIMIT_BIOMETRIC", c.RateLimit.Biometric)
	c.RateLimit.Write = envInt("RATE_LIMIT_WRITE", c.RateLimit.Write)
	c.Principal.SeedFile = envOrDefault("PRINCIPAL_SEED_FILE", c.Principal.SeedFile)
}

// Validate rejects configurations that cannot run. Outside development every
// secret must be set explicitly.
func (c Config) Validate() error {
	var errs []error
	if c.Biometric.MatchThreshold <= 0 {
		errs = append(errs, errors.New("biometric match threshold must be positive"))
	}
	if c.Nominee.TokenTTL <= 0 {
		errs = append(errs, errors.New("nominee token ttl must be positive"))
	}
	switch c.Storage.Backend {
	case "file":
	case "s3":
		if c.Storage.S3Bucket == "" {
			errs = append(errs, errors.New("s3 storage requires S3_BUCKET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Environment != EnvDevelopment {
		for name, v := range map[string]string{
			"BIOMETRIC_ENCRYPTION_SECRET": c.Biometric.EncryptionSecret,
			"NOMINEE_TOKEN_SECRET":        c.Nominee.TokenSecret,
			"JWT_SIGNING_KEY":             c.Session.SigningKey,
		} {
			if v == "" || v == devSecret {
				errs = append(errs, fmt.Errorf("%s must be set outside development", name))
			}
		}
		if c.Admin.Token == "" {
			errs = append(errs, errors.New("ADMIN_API_TOKEN must be set outside development"))
		}
	}
	return errors.Join(errs...)
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(name string, fallback float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	return pkgstrings.DedupeAndTrim(strings.Split(raw, ","))
}
