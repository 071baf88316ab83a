package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Broadcast  BroadcastConfig  `yaml:"broadcast"`
	Events     EventsConfig     `yaml:"events"`
	Redis      RedisConfig      `yaml:"redis"`
	Membership MembershipConfig `yaml:"membership"`
	SMTP       SMTPConfig       `yaml:"smtp"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// WriteRateLimit caps mutating API calls per client address per minute.
	WriteRateLimit int `yaml:"write_rate_limit" env:"SERVER_WRITE_RATE_LIMIT" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every query server side; zero leaves the
	// server default in place.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"0s"`
	ApplicationName  string        `yaml:"application_name"  env:"DATABASE_APPLICATION_NAME"  env-default:"council-backend"`
}

// AuthConfig holds bearer-token validation settings. Tokens are issued by the
// identity service; this process only verifies them.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"council"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// BroadcastConfig holds broadcast engine settings.
type BroadcastConfig struct {
	EmailNotifications      bool `yaml:"email_notifications"        env:"BROADCAST_EMAIL_NOTIFICATIONS"        env-default:"false"`
	FeedLimit               int  `yaml:"feed_limit"                 env:"BROADCAST_FEED_LIMIT"                 env-default:"100"`
	HardDeleteRetentionDays int  `yaml:"hard_delete_retention_days" env:"BROADCAST_HARD_DELETE_RETENTION_DAYS" env-default:"90"`
	HistoryLimit            int  `yaml:"history_limit"              env:"BROADCAST_HISTORY_LIMIT"              env-default:"200"`
}

// EventsConfig sizes the in-process event hub.
type EventsConfig struct {
	QueueSize        int `yaml:"queue_size"        env:"EVENTS_QUEUE_SIZE"        env-default:"1024"`
	Workers          int `yaml:"workers"           env:"EVENTS_WORKERS"           env-default:"4"`
	SubscriberBuffer int `yaml:"subscriber_buffer" env:"EVENTS_SUBSCRIBER_BUFFER" env-default:"16"`
}

// RedisConfig enables the cross-instance event relay. Empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"      env-default:"0"`
	Channel  string `yaml:"channel"  env:"REDIS_CHANNEL" env-default:"council.broadcasts"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// MembershipConfig points at the role/circle membership service.
type MembershipConfig struct {
	BaseURL string        `yaml:"base_url" env:"MEMBERSHIP_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"MEMBERSHIP_TIMEOUT"  env-default:"3s"`
	Token   string        `yaml:"token"    env:"MEMBERSHIP_TOKEN"`
}

// SMTPConfig holds outgoing mail settings used by broadcast notifications.
type SMTPConfig struct {
	Addr      string `yaml:"addr"       env:"SMTP_ADDR"`
	Username  string `yaml:"username"   env:"SMTP_USERNAME"`
	Password  string `yaml:"password"   env:"SMTP_PASSWORD"`
	From      string `yaml:"from"       env:"SMTP_FROM"`
	BatchSize int    `yaml:"batch_size" env:"SMTP_BATCH_SIZE" env-default:"50"`
}
