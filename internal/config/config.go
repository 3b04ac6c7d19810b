package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"

	DenylistMySQL  = "mysql"
	DenylistMemory = "memory"

	MinSecretLen = 32

	defaultAddr      = ":8082"
	defaultStaticDir = "./static"
	defaultAvatar    = "https://raw.githubusercontent.com/skunktank69/Skunktank69/refs/heads/main/default-avatar.png"
)

var (
	ErrMissingSecret = errors.New("AUTH_SECRET is not set in environment")
	ErrShortSecret   = fmt.Errorf("AUTH_SECRET must be at least %d bytes", MinSecretLen)
)

type Config struct {
	Env           string
	Addr          string
	Secret        []byte
	MySQLDSN      string
	MongoURI      string
	MongoDBName   string
	Denylist      string
	DefaultAvatar string
	StaticDir     string
	LogLevel      string
}

func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// LoadEnvFile loads variables from path into the process environment without
// overriding ones already set. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %q: %w", path, err)
	}
	return nil
}

// Load reads the configuration through getenv and validates it.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Env:           strings.ToLower(strings.TrimSpace(getenv("APP_ENV"))),
		Addr:          withDefault(getenv("ADDR"), defaultAddr),
		MongoURI:      getenv("MONGO_URI"),
		MongoDBName:   getenv("MONGO_DB_NAME"),
		Denylist:      strings.ToLower(withDefault(getenv("DENYLIST"), DenylistMySQL)),
		DefaultAvatar: withDefault(getenv("DEFAULT_AVATAR"), defaultAvatar),
		StaticDir:     withDefault(getenv("STATIC_DIR"), defaultStaticDir),
		LogLevel:      withDefault(getenv("LOG_LEVEL"), "info"),
	}

	secret := getenv("AUTH_SECRET")
	switch {
	case secret == "":
		return nil, ErrMissingSecret
	case len(secret) < MinSecretLen:
		return nil, ErrShortSecret
	}
	cfg.Secret = []byte(secret)

	dsn, err := mysqlDSN(getenv("MYSQL_DSN"))
	if err != nil {
		return nil, err
	}
	cfg.MySQLDSN = dsn

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not set in environment")
	}
	if cfg.MongoDBName == "" {
		return nil, errors.New("MONGO_DB_NAME is not set in environment")
	}
	if cfg.Denylist != DenylistMySQL && cfg.Denylist != DenylistMemory {
		return nil, fmt.Errorf("DENYLIST must be %q or %q, got %q", DenylistMySQL, DenylistMemory, cfg.Denylist)
	}

	return cfg, nil
}

// mysqlDSN validates raw and forces parseTime so DATETIME columns scan into
// time.Time.
func mysqlDSN(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("MYSQL_DSN is not set in environment")
	}
	c, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("MYSQL_DSN: %w", err)
	}
	c.ParseTime = true
	return c.FormatDSN(), nil
}

func withDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
