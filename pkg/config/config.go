package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Minio         MinioConfig
	Upload        UploadConfig
	Cron          CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EDSU_APP_ENV" default:"dev"`
	Host         string `envconfig:"HOST" default:"0.0.0.0"`
	Port         string `envconfig:"PORT" default:"5006"`
	LogLevel     string `envconfig:"EDSU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EDSU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DATABASE_URL"`
	Driver string `envconfig:"EDSU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EDSU_DB_HOST"`
	LegacyPort     int    `envconfig:"EDSU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EDSU_DB_USER"`
	LegacyPassword string `envconfig:"EDSU_DB_PASSWORD"`
	LegacyName     string `envconfig:"EDSU_DB_NAME"`
	LegacySSLMode  string `envconfig:"EDSU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EDSU_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"EDSU_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"EDSU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EDSU_DB_CONN_MAX_IDLE_TIME" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"EDSU_REDIS_ADDR"`
	Password     string        `envconfig:"EDSU_REDIS_PASSWORD"`
	DB           int           `envconfig:"EDSU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EDSU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EDSU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EDSU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EDSU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EDSU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"EDSU_JWT_ISSUER" default:"edsu-backend"`
	ExpirationHours int    `envconfig:"EDSU_JWT_EXPIRATION_HOURS" default:"24"`
}

// TokenTTL returns the configured access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"EDSU_BCRYPT_COST" default:"10"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"EDSU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"EDSU_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"EDSU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"EDSU_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"EDSU_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"EDSU_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EDSU_AUTO_MIGRATE" default:"false"`
}

type MinioConfig struct {
	Endpoint     string        `envconfig:"MINIO_ENDPOINT" default:"localhost"`
	Port         int           `envconfig:"MINIO_PORT" default:"9000"`
	UseSSL       bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	AccessKey    string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey    string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	Bucket       string        `envconfig:"MINIO_BUCKET" default:"edsu-media"`
	PublicURL    string        `envconfig:"MINIO_PUBLIC_URL"`
	ImgproxyURL  string        `envconfig:"IMGPROXY_URL"`
	ProbeTimeout time.Duration `envconfig:"EDSU_MINIO_PROBE_TIMEOUT" default:"3s"`
	PresignTTL   time.Duration `envconfig:"EDSU_MINIO_PRESIGN_TTL" default:"300s"`
}

// Address joins the endpoint host with the configured port.
func (m MinioConfig) Address() string {
	if m.Port <= 0 {
		return m.Endpoint
	}
	return fmt.Sprintf("%s:%d", m.Endpoint, m.Port)
}

type UploadConfig struct {
	MaxUploadMB   int           `envconfig:"EDSU_MAX_UPLOAD_MB" default:"100"`
	MaxUIMediaMB  int           `envconfig:"EDSU_MAX_UI_MEDIA_MB" default:"10"`
	PresignWindow time.Duration `envconfig:"EDSU_PRESIGN_REQUEST_TIMEOUT" default:"8s"`
}

type CronConfig struct {
	Interval             time.Duration `envconfig:"EDSU_CRON_INTERVAL" default:"24h"`
	OrphanRetentionHours int           `envconfig:"EDSU_CRON_ORPHAN_RETENTION_HOURS" default:"168"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"EDSU_DB_HOST": db.LegacyHost,
		"EDSU_DB_USER": db.LegacyUser,
		"EDSU_DB_NAME": db.LegacyName,
	}
	for _, env := range []string{"EDSU_DB_HOST", "EDSU_DB_USER", "EDSU_DB_NAME"} {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either DATABASE_URL or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
