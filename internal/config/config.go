package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/2beens/hybridpro/pkg"
)

const (
	defaultPort            = 9000
	defaultMetricsPort     = 9001
	defaultHost            = "localhost"
	defaultLogsKey         = "exerciseLogs"
	defaultStorageBackend  = "file"
	defaultStoragePath     = "./data"
	defaultWeightUnit      = "lbs"
	defaultChartWidth      = 350
	defaultChartHeight     = 160
	defaultChartPadding    = 20
	defaultRestTimer       = 90 * time.Second
	defaultLogsWritePerMin = 30
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// program and logs storage
	ProgramPath     string `toml:"program_path"`
	StorageBackend  string `toml:"storage_backend"`
	StoragePath     string `toml:"storage_path"`
	MemoryCacheSize int    `toml:"memory_cache_size"`
	LogsKey         string `toml:"logs_key"`
	// redis: redis storage backend and write rate limiting
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	RedisKeyPrefix string `toml:"redis_key_prefix"`
	// postgres storage backend
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// workout
	WeightUnit      string        `toml:"weight_unit"`
	Timezone        string        `toml:"timezone"`
	ChartWidth      float64       `toml:"chart_width"`
	ChartHeight     float64       `toml:"chart_height"`
	ChartPadding    float64       `toml:"chart_padding"`
	RestTimer       time.Duration `toml:"rest_timer"`
	LogsWritePerMin int           `toml:"logs_write_per_min"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML config file and returns the section for env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, fmt.Errorf("check config file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("config file [%s] not found", path)
	}

	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = defaultMetricsPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.StorageBackend == "" {
		c.StorageBackend = defaultStorageBackend
	}
	if c.StoragePath == "" {
		c.StoragePath = defaultStoragePath
	}
	if c.LogsKey == "" {
		c.LogsKey = defaultLogsKey
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.WeightUnit == "" {
		c.WeightUnit = defaultWeightUnit
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = defaultChartWidth
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = defaultChartHeight
	}
	if c.ChartPadding <= 0 {
		c.ChartPadding = defaultChartPadding
	}
	if c.RestTimer <= 0 {
		c.RestTimer = defaultRestTimer
	}
	if c.LogsWritePerMin <= 0 {
		c.LogsWritePerMin = defaultLogsWritePerMin
	}
}

// Location resolves the configured timezone used for chart date labels.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", c.Timezone, err)
	}
	return loc, nil
}
