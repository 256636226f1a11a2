package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	LogLevel        string        `mapstructure:"log_level"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN renders the libpq-style connection string understood by the postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type CatalogConfig struct {
	// DefaultLimit caps every finder query; 0 means unlimited.
	DefaultLimit   int      `mapstructure:"default_limit"`
	ExpectedTables []string `mapstructure:"expected_tables"`
}

type CacheConfig struct {
	Driver        string        `mapstructure:"driver"` // memory | redis | none
	Size          int           `mapstructure:"size"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     int           `mapstructure:"redis_port"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

type IngestConfig struct {
	Comma    string `mapstructure:"comma"`
	Encoding string `mapstructure:"encoding"`
}

// DefaultExpectedTables are the tables lifecycle checks look for when none are configured.
var DefaultExpectedTables = []string{
	"tools",
	"geometry_milling_cutters",
	"geometry_drills",
	"geometry_countersinks",
	"geometry_reamers",
	"geometry_turning_cutters",
	"geometry_broaches",
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Catalog.ExpectedTables) == 0 {
		cfg.Catalog.ExpectedTables = append([]string(nil), DefaultExpectedTables...)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "toolcat")
	v.SetDefault("database.dbname", "toolcat")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 10*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("catalog.default_limit", 0)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.redis_port", 6379)

	v.SetDefault("ingest.comma", ",")
	v.SetDefault("ingest.encoding", "utf-8")
}

func bindEnvVariables(v *viper.Viper) {
	// Database
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	// Catalog
	v.BindEnv("catalog.default_limit", "CATALOG_DEFAULT_LIMIT")

	// Cache
	v.BindEnv("cache.driver", "CACHE_DRIVER")
	v.BindEnv("cache.redis_host", "REDIS_HOST")
	v.BindEnv("cache.redis_port", "REDIS_PORT")
	v.BindEnv("cache.redis_password", "REDIS_PASSWORD")

	// Ingest
	v.BindEnv("ingest.comma", "INGEST_COMMA")
	v.BindEnv("ingest.encoding", "INGEST_ENCODING")
}

// GetEnvOrDefault returns the environment value for key, or defaultValue when unset.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
