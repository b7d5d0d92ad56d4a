package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBName     string `mapstructure:"db_name"`

	Port string `mapstructure:"port"`

	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTIssuer string        `mapstructure:"jwt_issuer"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`

	ReportCacheTTL time.Duration `mapstructure:"report_cache_ttl"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var defaults = map[string]interface{}{
	"db_user":           "kanso_user",
	"db_password":       "",
	"db_host":           "localhost",
	"db_port":           "5432",
	"db_name":           "kanso_db",
	"port":              "8080",
	"redis_host":        "localhost",
	"redis_port":        "6379",
	"redis_password":    "",
	"redis_db":          0,
	"jwt_secret":        "",
	"jwt_issuer":        "kanso-goals",
	"jwt_ttl":           "24h",
	"rate_limit":        100,
	"rate_limit_window": "1m",
	"report_cache_ttl":  "10m",
	"log_level":         "info",
	"log_format":        "json",
}

// Load reads the environment, after merging any of the given .env files
// that exist. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := load(envFiles)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is Load without validation, for tools that only talk to
// the database.
func LoadDatabase(envFiles ...string) (*Config, error) {
	return load(envFiles)
}

func load(envFiles []string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %q", c.Port))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.RateLimit <= 0 || c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT and RATE_LIMIT_WINDOW must be positive"))
	}
	if c.ReportCacheTTL <= 0 {
		errs = append(errs, errors.New("REPORT_CACHE_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
