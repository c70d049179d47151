package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abrezinsky/electiondash/internal/logger"
)

// DotEnvFile is read at startup when present; real environment variables win
const DotEnvFile = ".env"

// Config holds the process settings, fixed at start
type Config struct {
	Port        int
	DataDir     string
	AdminToken  string
	BaseURL     string
	LogLevel    string
	LogFormat   string
	NewsTTL     time.Duration
	NoKeyboard  bool
	ShowVersion bool
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

const usage = `ElectionDash - Election tracking dashboard API

Usage:
  electiondash [options]

Options (environment variable in brackets):
  -port int          HTTP server port [PORT] (default 8081)
  -data string       Data directory [DATA_DIR] (default "data")
  -admin-token str   Admin token [ADMIN_TOKEN] (admin API disabled if empty)
  -base-url string   Public URL used in share links [BASE_URL] (default: request host)
  -loglevel string   Log level: debug, info, warn, error [LOG_LEVEL] (default "info")
  -logformat string  Log format: text, json [LOG_FORMAT] (default "text")
  -news-ttl duration News cache lifetime [NEWS_TTL] (default 10m)
  -nokeyboard        Disable keyboard shortcuts
  -version           Show version and exit
  -help              Show this help message

Examples:
  electiondash                                  # Serve ./data on port 8081
  electiondash -data /srv/elections -port 80    # Production example
  ADMIN_TOKEN=secret electiondash -logformat json
`

// Parse reads the configuration from args, the environment and .env
func Parse(args []string) (*Config, error) {
	dotenv, err := godotenv.Read(DotEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", DotEnvFile, err)
	}
	return Load(args, chain(os.LookupEnv, mapLookup(dotenv)), os.Stderr)
}

// Load parses args over defaults taken from lookup. Flags win over the environment.
func Load(args []string, lookup LookupFunc, output io.Writer) (*Config, error) {
	env := envReader{lookup: lookup}
	defaults := Config{
		Port:       env.getInt("PORT", 8081),
		DataDir:    env.getString("DATA_DIR", "data"),
		AdminToken: env.getString("ADMIN_TOKEN", ""),
		BaseURL:    env.getString("BASE_URL", ""),
		LogLevel:   env.getString("LOG_LEVEL", "info"),
		LogFormat:  env.getString("LOG_FORMAT", logger.FormatText),
		NewsTTL:    env.getDuration("NEWS_TTL", 10*time.Minute),
	}
	if env.err != nil {
		return nil, env.err
	}

	cfg := &Config{}
	fset := flag.NewFlagSet("electiondash", flag.ContinueOnError)
	fset.SetOutput(output)
	fset.Usage = func() { fmt.Fprint(output, usage) }

	fset.IntVar(&cfg.Port, "port", defaults.Port, "HTTP server port")
	fset.StringVar(&cfg.DataDir, "data", defaults.DataDir, "Data directory")
	fset.StringVar(&cfg.AdminToken, "admin-token", defaults.AdminToken, "Admin token")
	fset.StringVar(&cfg.BaseURL, "base-url", defaults.BaseURL, "Public base URL")
	fset.StringVar(&cfg.LogLevel, "loglevel", defaults.LogLevel, "Log level (debug, info, warn, error)")
	fset.StringVar(&cfg.LogFormat, "logformat", defaults.LogFormat, "Log format (text, json)")
	fset.DurationVar(&cfg.NewsTTL, "news-ttl", defaults.NewsTTL, "News cache lifetime")
	fset.BoolVar(&cfg.NoKeyboard, "nokeyboard", false, "Disable keyboard shortcuts")
	fset.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		return errors.New("data directory must not be empty")
	}
	if c.NewsTTL < 0 {
		return fmt.Errorf("invalid news ttl %s", c.NewsTTL)
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	return nil
}

// envReader collects the first conversion error
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) getString(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e *envReader) getInt(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return n
}

func (e *envReader) getDuration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return d
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// chain tries each lookup in order
func chain(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok {
				return v, true
			}
		}
		return "", false
	}
}
