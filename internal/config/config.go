package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config aggregates runtime configuration for the tool.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls HTTP server level behavior.
type AppConfig struct {
	Name           string        `envconfig:"APP_NAME" default:"employee-manager"`
	Env            string        `envconfig:"APP_ENV" default:"development"`
	Host           string        `envconfig:"APP_HOST" default:"0.0.0.0"`
	Port           string        `envconfig:"PORT" default:"3001"`
	Version        string        `envconfig:"APP_VERSION" default:"dev"`
	RequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"30s"`
}

// PostgresConfig holds DB connection values. DSN, when set, wins over the
// individual DB_* parts.
type PostgresConfig struct {
	DSN           string `envconfig:"POSTGRES_DSN"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD"`
	Name          string `envconfig:"DB_NAME" default:"empmgr_db"`
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          int    `envconfig:"DB_PORT" default:"5432"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaintenanceDB string `envconfig:"DB_MAINTENANCE_NAME" default:"postgres"`

	MaxConns      int32         `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns      int32         `envconfig:"POSTGRES_MIN_CONNS" default:"1"`
	ConnMaxIdle   time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE" default:"30s"`
	ConnMaxLife   time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFE" default:"5m"`
	RunMigrations bool          `envconfig:"POSTGRES_RUN_MIGRATIONS" default:"true"`

	ConnectAttempts   int           `envconfig:"POSTGRES_CONNECT_ATTEMPTS" default:"5"`
	ConnectRetryDelay time.Duration `envconfig:"POSTGRES_CONNECT_RETRY_DELAY" default:"10s"`
}

// RedisConfig holds Redis connection values. An empty Addr disables event
// publishing to Redis.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Channel  string `envconfig:"REDIS_EVENTS_CHANNEL" default:"empmgr.events"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Encoding string `envconfig:"LOG_ENCODING" default:"console"`
	Output   string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// Load reads configuration from the environment, after merging an optional
// .env file, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Postgres.DSN == "" && cfg.Postgres.Name == "" {
		return nil, fmt.Errorf("load config: DB_NAME or POSTGRES_DSN required")
	}
	return &cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return net.JoinHostPort(a.Host, a.Port)
}

// ConnString returns the connection string for the configured database.
func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	return p.connStringFor(p.Name)
}

func (p PostgresConfig) connStringFor(database string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + database,
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else if p.User != "" {
		u.User = url.User(p.User)
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{p.SSLMode}}.Encode()
	}
	return u.String()
}

// Enabled reports whether Redis publishing is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}
