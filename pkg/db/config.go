package db

import "time"

// Config holds PostgreSQL connection parameters.
// Zero values fall back to the defaults listed on each field.
type Config struct {
	// ConnectionString is a postgres:// URL.
	ConnectionString string `yaml:"url"`

	// MigrationsTable records applied migrations. Default: "schema_migrations".
	MigrationsTable string `yaml:"migrations_table"`

	// HealthCheckPeriod is how often idle pool connections are checked. Default: 1m.
	HealthCheckPeriod time.Duration `yaml:"health_check_period"`

	// MaxConnIdleTime closes connections idle for longer. Default: 10m.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`

	// MaxConnLifetime recycles connections older than this. Default: 30m.
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`

	// RetryAttempts and RetryInterval govern startup retries; the wait
	// grows linearly with the attempt number. Defaults: 3 and 5s.
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`

	// MaxOpenConns bounds the pool; MinConns stay open. Defaults: 10 and 2.
	MaxOpenConns int32 `yaml:"max_open_conns"`
	MinConns     int32 `yaml:"min_conns"`
}

func (c Config) withDefaults() Config {
	if c.MigrationsTable == "" {
		c.MigrationsTable = "schema_migrations"
	}
	if c.HealthCheckPeriod <= 0 {
		c.HealthCheckPeriod = time.Minute
	}
	if c.MaxConnIdleTime <= 0 {
		c.MaxConnIdleTime = 10 * time.Minute
	}
	if c.MaxConnLifetime <= 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 5 * time.Second
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MinConns <= 0 {
		c.MinConns = 2
	}
	return c
}
