package config

const EnvPrefix = "ASSETTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	ItemIDSchemeTimestamp = "timestamp"
	ItemIDSchemeSequence  = "sequence"
)

// DefaultSQLiteDSN is used when the SQLite flag is on and no DSN is given.
const DefaultSQLiteDSN = "assettrack.sqlite3"

const (
	EnvAppEnv       = "ASSETTRACK_APP_ENV"
	EnvPort         = "ASSETTRACK_APP_PORT"
	EnvBaseURL      = "ASSETTRACK_APP_BASE_URL"
	EnvDBDSN        = "ASSETTRACK_DB_DSN"
	EnvDBHost       = "ASSETTRACK_DB_HOST"
	EnvDBUser       = "ASSETTRACK_DB_USER"
	EnvDBName       = "ASSETTRACK_DB_NAME"
	EnvUseSQLite    = "ASSETTRACK_USE_SQLITE"
	EnvRedisURL     = "ASSETTRACK_REDIS_URL"
	EnvJWTSecret    = "ASSETTRACK_JWT_SECRET"
	EnvItemIDScheme = "ASSETTRACK_ITEM_ID_SCHEME"
	EnvWriteLimit   = "ASSETTRACK_RATE_LIMIT_WRITE_LIMIT"
	EnvCORSOrigins  = "ASSETTRACK_CORS_ORIGINS"
	EnvTrustProxy   = "ASSETTRACK_APP_TRUST_PROXY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
