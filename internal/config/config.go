package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Redis           Redis           `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	PerformanceSync PerformanceSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Enabled              bool   `mapstructure:"redis_enabled"`
	Addr                 string `mapstructure:"redis_addr"`
	Password             string `mapstructure:"redis_password"`
	DB                   int    `mapstructure:"redis_db"`
	SnapshotCacheTTLSecs int    `mapstructure:"redis_snapshot_cache_ttl_seconds"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type PerformanceSync struct {
	IntervalMinutes   int  `mapstructure:"performance_sync_interval_minutes"`
	WindowMinutes     int  `mapstructure:"performance_sync_window_minutes"`
	MaxConcurrentJobs int  `mapstructure:"performance_sync_max_concurrent_jobs"`
	Enabled           bool `mapstructure:"performance_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaigns")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_SNAPSHOT_CACHE_TTL_SECONDS", 60)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("PERFORMANCE_SYNC_INTERVAL_MINUTES", 15) // one tick per quarter hour
	viper.SetDefault("PERFORMANCE_SYNC_WINDOW_MINUTES", 30)   // aggregation lookback
	viper.SetDefault("PERFORMANCE_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("PERFORMANCE_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables loaded by godotenv (viper could not read .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile loads .env via godotenv, trying the usual local locations.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from:", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on process environment")
}
