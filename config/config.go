package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultDatabaseName = "events"

// Config is read from flags, falling back to the environment.
type Config struct {
	Port           string `long:"port" env:"PORT" default:"8000" description:"HTTP listen port"`
	DatabaseURL    string `long:"database-url" env:"DATABASE_URL" description:"MongoDB connection string; without it the API runs with no database"`
	DatabaseName   string `long:"database-name" env:"DATABASE_NAME" description:"MongoDB database (defaults to the one in the connection string)"`
	RedisAddr      string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address; enables announcements of created events and tickets"`
	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"Jaeger collector endpoint; spans are not exported without it"`
	LogLevel       string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"logrus level"`
}

func Load(args []string) (Config, error) {
	var cfg Config

	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid port %q", cfg.Port)
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = databaseNameFromURL(cfg.DatabaseURL)
	}

	return cfg, nil
}

// LoadEnvFile loads .env style files without overriding variables that are
// already set. Missing files are not an error.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func databaseNameFromURL(databaseURL string) string {
	if databaseURL == "" {
		return defaultDatabaseName
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return defaultDatabaseName
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return defaultDatabaseName
	}

	return name
}
