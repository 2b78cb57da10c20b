package config

import (
	"errors"
	"flag"
	"github.com/caarlos0/env"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultServerAddress   = ":8080"
	defaultBackendURL      = "http://localhost:4000/api"
	defaultDatabaseDSN     = ""
	defaultLogLevel        = "debug"
	defaultRefreshInterval = 30 * time.Second
	defaultReconnectDelay  = 3 * time.Second
	defaultRequestTimeout  = 10 * time.Second
	defaultPushChannel     = "orders"
)

type Config struct {
	ServerAddr string `env:"RUN_ADDRESS"`
	// BackendURL is base url of backend REST API
	BackendURL string `env:"BACKEND_URL"`
	// PushURL is server push endpoint, defaults to BackendURL + "/events"
	PushURL     string `env:"PUSH_URL"`
	PushChannel string `env:"PUSH_CHANNEL"`
	// BackendToken is admin token sent to backend
	BackendToken    string        `env:"BACKEND_TOKEN"`
	DatabaseDSN     string        `env:"DATABASE_URI"`
	LogLevel        string        `env:"LOG_LEVEL"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
	ReconnectDelay  time.Duration `env:"RECONNECT_DELAY"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
}

var (
	once      sync.Once
	singleton *Config
	initErr   error
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		singleton, initErr = Parse(flag.CommandLine, os.Args[1:])
	})

	return singleton, initErr
}

// Parse parses flags from args, then environment variables override them
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Config{}

	// initialize flags
	fs.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "admin api server address")
	fs.StringVar(&cfg.BackendURL, "b", defaultBackendURL, "backend REST api base url")
	fs.StringVar(&cfg.PushURL, "p", "", "backend push endpoint url")
	fs.StringVar(&cfg.PushChannel, "c", defaultPushChannel, "push channel name")
	fs.StringVar(&cfg.BackendToken, "t", "", "backend admin token")
	fs.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "notification journal database DSN")
	fs.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
	fs.DurationVar(&cfg.RefreshInterval, "i", defaultRefreshInterval, "snapshot refresh interval")
	fs.DurationVar(&cfg.ReconnectDelay, "rd", defaultReconnectDelay, "push reconnect delay")
	fs.DurationVar(&cfg.RequestTimeout, "rt", defaultRequestTimeout, "backend request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// if environment variable is set, then using it
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if cfg.PushURL == "" {
		cfg.PushURL = cfg.BackendURL + "/events"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	for _, raw := range []string{cfg.BackendURL, cfg.PushURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.New("backend url must be http or https: " + raw)
		}
	}
	if cfg.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	if cfg.ReconnectDelay < 0 {
		return errors.New("reconnect delay must not be negative")
	}
	return nil
}
