package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/iamasit07/four-chain/backend/internal/domain"
	"github.com/iamasit07/four-chain/backend/internal/transport/websocket"
	"github.com/joho/godotenv"
)

// Board store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const devOrigin = "http://localhost:5173"

type Config struct {
	Port           string `yaml:"port" env:"PORT" env-default:"8080"`
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat      string `yaml:"log-format" env:"LOG_FORMAT" env-default:"console"`
	FrontendURL    string `yaml:"frontend-url" env:"FRONTEND_URL" env-default:"http://localhost:8080"`
	AllowedOrigins string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS"`

	Board    Board    `yaml:"board"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	Observer Observer `yaml:"observer"`
}

type Board struct {
	Store            string `yaml:"store" env:"BOARD_STORE" env-default:"memory"`
	Width            int    `yaml:"width" env:"BOARD_WIDTH" env-default:"7"`
	Height           int    `yaml:"height" env:"BOARD_HEIGHT" env-default:"6"`
	StartingPlayer   string `yaml:"starting-player" env:"STARTING_PLAYER" env-default:"yellow"`
	ReannounceWinner bool   `yaml:"reannounce-winner" env:"REANNOUNCE_WINNER" env-default:"false"`
}

type Database struct {
	URL                string `yaml:"url" env:"DATABASE_URL"`
	Driver             string `yaml:"driver" env:"DB_DRIVER" env-default:"pgx"`
	MaxOpenConns       int    `yaml:"max-open-conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns       int    `yaml:"max-idle-conns" env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetimeMin int    `yaml:"conn-max-lifetime-minutes" env:"DB_CONN_MAX_LIFETIME_MINUTES" env-default:"5"`
	SQLitePath         string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"four-chain.db"`
}

type Redis struct {
	Addr     string `yaml:"url" env:"REDIS_URL" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	BoardKey string `yaml:"board-key" env:"REDIS_BOARD_KEY" env-default:"fourchain:board"`
}

type Observer struct {
	SendBuffer    int           `yaml:"send-buffer" env:"OBSERVER_SEND_BUFFER" env-default:"64"`
	StaleAfter    time.Duration `yaml:"stale-after" env:"OBSERVER_STALE_AFTER" env-default:"2m"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"OBSERVER_SWEEP_INTERVAL" env-default:"30s"`
}

// Load reads .env (or ../.env) when present, then the optional YAML file at
// path, then the environment. Environment values win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../.env")
	}

	cfg := &Config{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	cfg.Database.URL = withSimpleProtocol(cfg.Database.URL, cfg.Database.Driver)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Board.Width < domain.ToWin && c.Board.Height < domain.ToWin {
		errs = append(errs, fmt.Errorf("board %dx%d cannot hold a line of %d", c.Board.Width, c.Board.Height, domain.ToWin))
	}
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if p, err := domain.ParseOccupant(c.Board.StartingPlayer); err != nil || !p.IsPlayer() {
		errs = append(errs, fmt.Errorf("unknown starting player %q", c.Board.StartingPlayer))
	}

	switch c.Board.Store {
	case StoreMemory, StoreRedis:
	case StoreSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite store"))
		}
	case StorePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
		if c.Database.Driver != "pgx" && c.Database.Driver != "postgres" {
			errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown board store %q", c.Board.Store))
	}

	if c.Observer.SendBuffer <= 0 {
		errs = append(errs, errors.New("observer send buffer must be positive"))
	}
	if c.Observer.StaleAfter <= 0 || c.Observer.SweepInterval <= 0 {
		errs = append(errs, errors.New("observer stale-after and sweep-interval must be positive"))
	} else if c.Observer.StaleAfter <= websocket.PingPeriod {
		errs = append(errs, fmt.Errorf("observer stale-after %s must be longer than the ping period %s", c.Observer.StaleAfter, websocket.PingPeriod))
	}

	return errors.Join(errs...)
}

// StartingOccupant is the validated starting player.
func (c *Config) StartingOccupant() domain.Occupant {
	p, err := domain.ParseOccupant(c.Board.StartingPlayer)
	if err != nil || !p.IsPlayer() {
		return domain.Players[0]
	}
	return p
}

// Origins is the frontend URL, the local dev server and any extra
// comma-separated ALLOWED_ORIGINS values.
func (c *Config) Origins() []string {
	origins := []string{devOrigin}
	if c.FrontendURL != "" {
		origins = append([]string{c.FrontendURL}, origins...)
	}
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// withSimpleProtocol appends simple_protocol for PgBouncer compatibility
// (pgx driver only; lib/pq rejects unknown parameters).
func withSimpleProtocol(dbURL, driver string) string {
	if dbURL == "" || driver != "pgx" {
		return dbURL
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return dbURL
	}
	q := u.Query()
	if q.Get("default_query_exec_mode") == "" {
		q.Set("default_query_exec_mode", "simple_protocol")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
