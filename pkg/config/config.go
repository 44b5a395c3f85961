package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "INVX"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv                 = "INVX_APP_ENV"
	EnvPort                   = "INVX_APP_PORT"
	EnvDBDSN                  = "INVX_DB_DSN"
	EnvDBHost                 = "INVX_DB_HOST"
	EnvDBUser                 = "INVX_DB_USER"
	EnvDBName                 = "INVX_DB_NAME"
	EnvRedisURL               = "INVX_REDIS_URL"
	EnvJWTSecret              = "INVX_JWT_SECRET"
	EnvJWTIssuer              = "INVX_JWT_ISSUER"
	EnvJWTExpMins             = "INVX_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "INVX_REFRESH_TOKEN_TTL_MINUTES"
	EnvUploadDir              = "INVX_UPLOAD_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Uploads       UploadsConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVX_APP_ENV" required:"true"`
	Port         string `envconfig:"INVX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INVX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INVX_DB_DSN"`
	Driver string `envconfig:"INVX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INVX_DB_HOST"`
	LegacyPort     int    `envconfig:"INVX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INVX_DB_USER"`
	LegacyPassword string `envconfig:"INVX_DB_PASSWORD"`
	LegacyName     string `envconfig:"INVX_DB_NAME"`
	LegacySSLMode  string `envconfig:"INVX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INVX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INVX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"INVX_REDIS_ADDR"`
	Password     string        `envconfig:"INVX_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"INVX_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"INVX_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"INVX_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"INVX_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INVX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INVX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INVX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INVX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INVX_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"INVX_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"INVX_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"INVX_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"INVX_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"INVX_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"INVX_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"INVX_UPLOAD_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"INVX_MAX_UPLOAD_MB" default:"25"`

	MediumMaxWidth  int `envconfig:"INVX_MEDIA_MEDIUM_MAX_WIDTH" default:"800"`
	MediumMaxHeight int `envconfig:"INVX_MEDIA_MEDIUM_MAX_HEIGHT" default:"600"`
	MediumQuality   int `envconfig:"INVX_MEDIA_MEDIUM_QUALITY" default:"85"`
	ThumbMaxWidth   int `envconfig:"INVX_MEDIA_THUMB_MAX_WIDTH" default:"200"`
	ThumbMaxHeight  int `envconfig:"INVX_MEDIA_THUMB_MAX_HEIGHT" default:"200"`
	ThumbQuality    int `envconfig:"INVX_MEDIA_THUMB_QUALITY" default:"80"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INVX_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
