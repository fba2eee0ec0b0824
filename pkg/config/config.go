package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/growly/growly-web/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Session       SessionConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CSRF          CSRFConfig
	Users         UsersConfig
	Admin         AdminConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if _, err := enums.ParseDeletePolicy(cfg.Users.DeletePolicy); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvDeletePolicy, err)
	}
	// Production cookies never travel over plain HTTP.
	if cfg.App.IsProd() {
		cfg.Session.Secure = true
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GROWLY_APP_ENV" default:"dev"`
	Port         string `envconfig:"GROWLY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GROWLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GROWLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"GROWLY_DB_DRIVER" default:"sqlite"`
	// Path is the SQLite database file; ignored for postgres.
	Path string `envconfig:"GROWLY_DB_PATH" default:"growly.db"`
	DSN  string `envconfig:"GROWLY_DB_DSN"`

	MaxOpenConns    int           `envconfig:"GROWLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GROWLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GROWLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GROWLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

func (db DBConfig) validate() error {
	switch strings.ToLower(db.Driver) {
	case DBDriverSQLite:
		if strings.TrimSpace(db.Path) == "" && strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBPath)
		}
	case DBDriverPostgres:
		if strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
	return nil
}

// RedisConfig is optional. An empty URL and Address disables the session
// registry and the auth rate limiter.
type RedisConfig struct {
	URL          string        `envconfig:"GROWLY_REDIS_URL"`
	Address      string        `envconfig:"GROWLY_REDIS_ADDR"`
	Password     string        `envconfig:"GROWLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"GROWLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GROWLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GROWLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GROWLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GROWLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GROWLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	Secret           string        `envconfig:"GROWLY_SESSION_SECRET" required:"true"`
	CookieName       string        `envconfig:"GROWLY_SESSION_COOKIE" default:"growly_session"`
	Issuer           string        `envconfig:"GROWLY_SESSION_ISSUER" default:"growly-web"`
	TTL              time.Duration `envconfig:"GROWLY_SESSION_TTL" default:"168h"`
	Secure           bool          `envconfig:"GROWLY_SESSION_SECURE" default:"false"`
	LockoutThreshold int           `envconfig:"GROWLY_LOGIN_LOCKOUT_THRESHOLD" default:"6"`
	LockoutWindow    time.Duration `envconfig:"GROWLY_LOGIN_LOCKOUT_WINDOW" default:"5m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GROWLY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GROWLY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GROWLY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GROWLY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GROWLY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"GROWLY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"GROWLY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"10"`
	LoginIPLimit     int           `envconfig:"GROWLY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"30"`
	SignupWindow     time.Duration `envconfig:"GROWLY_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"GROWLY_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"GROWLY_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type CSRFConfig struct {
	Enabled bool `envconfig:"GROWLY_CSRF_ENABLED" default:"true"`
}

type UsersConfig struct {
	DeletePolicy string `envconfig:"GROWLY_USER_DELETE_POLICY" default:"retain"`
}

// AdminConfig seeds an admin account at startup when both fields are set.
type AdminConfig struct {
	Email    string `envconfig:"GROWLY_ADMIN_EMAIL"`
	Password string `envconfig:"GROWLY_ADMIN_PASSWORD"`
	Name     string `envconfig:"GROWLY_ADMIN_NAME" default:"Administrator"`
}

func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.Email) != "" && a.Password != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GROWLY_AUTO_MIGRATE" default:"true"`
}
