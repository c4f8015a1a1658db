package store

import (
	"time"

	"yukbul/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled   bool
	URL       string
	MaxConns  int32
	LogSQL    bool
	SlowQuery time.Duration

	ConnectRetries int           // ping attempts before giving up, default 20
	PingTimeout    time.Duration // per attempt, default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled  bool
	URL      string
	Role     string // reported in client info, e.g. "api"
	MaxConns int
	LZ4      bool
}

// FromConf reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* style keys under c.
// A backend is enabled exactly when its DBURL is set.
func FromConf(c config.Conf, appName string) Config {
	pg := c.Prefix("SERVICE_PGSQL_")
	ch := c.Prefix("SERVICE_CLICKHOUSE_")
	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQuery:      pg.MayDuration("SLOW_QUERY", 200*time.Millisecond),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			URL:      ch.MayString("DBURL", ""),
			Role:     appName,
			MaxConns: ch.MayInt("MAX_CONNS", 0),
			LZ4:      ch.MayBool("LZ4", true),
		},
	}
	cfg.PG.Enabled = cfg.PG.URL != ""
	cfg.CH.Enabled = cfg.CH.URL != ""
	return cfg
}
