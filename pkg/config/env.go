package config

// EnvPrefix is empty because every field carries its fully qualified name.
const EnvPrefix = ""

const AppEnvProd = "prod"

const (
	EnvAppEnv       = "GROWLY_APP_ENV"
	EnvPort         = "GROWLY_APP_PORT"
	EnvLogLevel     = "GROWLY_LOG_LEVEL"
	EnvDBDriver     = "GROWLY_DB_DRIVER"
	EnvDBPath       = "GROWLY_DB_PATH"
	EnvDBDSN        = "GROWLY_DB_DSN"
	EnvRedisURL     = "GROWLY_REDIS_URL"
	EnvSessionKey   = "GROWLY_SESSION_SECRET"
	EnvSessionTTL   = "GROWLY_SESSION_TTL"
	EnvLockoutLimit = "GROWLY_LOGIN_LOCKOUT_THRESHOLD"
	EnvLockoutTime  = "GROWLY_LOGIN_LOCKOUT_WINDOW"
	EnvDeletePolicy = "GROWLY_USER_DELETE_POLICY"
	EnvAdminEmail   = "GROWLY_ADMIN_EMAIL"
	EnvAdminPass    = "GROWLY_ADMIN_PASSWORD"
	EnvCSRFEnabled  = "GROWLY_CSRF_ENABLED"
	EnvAutoMigrate  = "GROWLY_AUTO_MIGRATE"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)
