package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Items        ItemsConfig
	Reminders    RemindersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = DefaultSQLiteDSN
		}
	} else if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Items.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"ASSETTRACK_APP_ENV" required:"true"`
	Port         string   `envconfig:"ASSETTRACK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"ASSETTRACK_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"ASSETTRACK_LOG_FORMAT" default:"json"`
	LogWarnStack bool     `envconfig:"ASSETTRACK_LOG_WARN_STACK" default:"false"`
	BaseURL      string   `envconfig:"ASSETTRACK_APP_BASE_URL"`
	CORSOrigins  []string `envconfig:"ASSETTRACK_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP instead of
	// the socket address. Only enable behind a proxy that overwrites them.
	TrustProxy bool `envconfig:"ASSETTRACK_APP_TRUST_PROXY" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ASSETTRACK_DB_DSN"`

	LegacyHost     string `envconfig:"ASSETTRACK_DB_HOST"`
	LegacyPort     int    `envconfig:"ASSETTRACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ASSETTRACK_DB_USER"`
	LegacyPassword string `envconfig:"ASSETTRACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"ASSETTRACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"ASSETTRACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ASSETTRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ASSETTRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ASSETTRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ASSETTRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; without an address the rate limiter keeps its
// counters in process memory.
type RedisConfig struct {
	URL          string        `envconfig:"ASSETTRACK_REDIS_URL"`
	Address      string        `envconfig:"ASSETTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"ASSETTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ASSETTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ASSETTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ASSETTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ASSETTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ASSETTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ASSETTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// JWTConfig identifies actors from bearer tokens when a secret is set.
type JWTConfig struct {
	Secret            string `envconfig:"ASSETTRACK_JWT_SECRET"`
	Issuer            string `envconfig:"ASSETTRACK_JWT_ISSUER" default:"assettrack"`
	ExpirationMinutes int    `envconfig:"ASSETTRACK_JWT_EXPIRATION_MINUTES" default:"60"`
}

func (j JWTConfig) Enabled() bool {
	return j.Secret != ""
}

type RateLimitConfig struct {
	ReadWindow       time.Duration `envconfig:"ASSETTRACK_RATE_LIMIT_READ_WINDOW" default:"1m"`
	ReadLimit        int           `envconfig:"ASSETTRACK_RATE_LIMIT_READ_LIMIT" default:"100"`
	LogsWindow       time.Duration `envconfig:"ASSETTRACK_RATE_LIMIT_LOGS_WINDOW" default:"1m"`
	LogsLimit        int           `envconfig:"ASSETTRACK_RATE_LIMIT_LOGS_LIMIT" default:"100"`
	WriteWindow      time.Duration `envconfig:"ASSETTRACK_RATE_LIMIT_WRITE_WINDOW" default:"5m"`
	WriteLimit       int           `envconfig:"ASSETTRACK_RATE_LIMIT_WRITE_LIMIT" default:"20"`
	NoteCreateWindow time.Duration `envconfig:"ASSETTRACK_RATE_LIMIT_NOTE_CREATE_WINDOW" default:"5m"`
	NoteCreateLimit  int           `envconfig:"ASSETTRACK_RATE_LIMIT_NOTE_CREATE_LIMIT" default:"5"`
	NoteDeleteWindow time.Duration `envconfig:"ASSETTRACK_RATE_LIMIT_NOTE_DELETE_WINDOW" default:"5m"`
	NoteDeleteLimit  int           `envconfig:"ASSETTRACK_RATE_LIMIT_NOTE_DELETE_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ASSETTRACK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ASSETTRACK_AUTO_MIGRATE" default:"false"`
}

type ItemsConfig struct {
	IDScheme string `envconfig:"ASSETTRACK_ITEM_ID_SCHEME" default:"timestamp"`
	QRSize   int    `envconfig:"ASSETTRACK_QR_SIZE" default:"300"`
}

func (i ItemsConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(i.IDScheme)) {
	case ItemIDSchemeTimestamp, ItemIDSchemeSequence:
		return nil
	}
	return fmt.Errorf("%s must be %q or %q", EnvItemIDScheme, ItemIDSchemeTimestamp, ItemIDSchemeSequence)
}

type RemindersConfig struct {
	ValidateItems  bool          `envconfig:"ASSETTRACK_REMINDERS_VALIDATE_ITEMS" default:"true"`
	UpcomingWindow time.Duration `envconfig:"ASSETTRACK_REMINDERS_UPCOMING_WINDOW" default:"168h"`
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
