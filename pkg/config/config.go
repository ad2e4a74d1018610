package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database configuration struct.
type DatabaseConfiguration struct {
	DSN            string
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host      string
	Port      string
	Password  string
	DB        int
	DetailTTL time.Duration
}

// Bucket used to ship the run logs.
type BucketConfiguration struct {
	Endpoint     string
	Region       string
	LogBucket    string
	AccessKey    string
	AccessSecret string
}

// Window of the Riot API rate limit.
type LimitWindow struct {
	Count         int
	ResetInterval time.Duration
}

// Rate limits for the api key.
type LimitsConfiguration struct {
	Lower  LimitWindow
	Higher LimitWindow
}

type ServerConfiguration struct {
	HttpAddr string
	GrpcAddr string
}

// Match list synchronization job settings.
type SyncConfiguration struct {
	Interval   time.Duration
	StaleAfter time.Duration
	BatchSize  int
	Workers    int
}

// Concurrency of the detail and rank fan-outs.
type FetchConfiguration struct {
	Workers int
	Timeout time.Duration
}

type Config struct {
	Environment string
	ApiKey      string
	Database    DatabaseConfiguration
	Redis       RedisConfiguration
	Bucket      BucketConfiguration
	Limits      LimitsConfiguration
	Server      ServerConfiguration
	Sync        SyncConfiguration
	Fetch       FetchConfiguration
}

// Load reads the .env file (when not on docker) and the environment into a Config.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// The file is optional, the variables may come from the environment.
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Environment: v.GetString("environment"),
		ApiKey:      v.GetString("api_key"),
		Database: DatabaseConfiguration{
			DSN:            v.GetString("database.dsn"),
			MigrationsPath: v.GetString("database.migrations_path"),
		},
		Redis: RedisConfiguration{
			Host:      v.GetString("redis.host"),
			Port:      v.GetString("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			DetailTTL: v.GetDuration("redis.detail_ttl"),
		},
		Bucket: BucketConfiguration{
			Endpoint:     v.GetString("bucket.endpoint"),
			Region:       v.GetString("bucket.region"),
			LogBucket:    v.GetString("bucket.log_bucket"),
			AccessKey:    v.GetString("bucket.access_key"),
			AccessSecret: v.GetString("bucket.access_secret"),
		},
		Limits: LimitsConfiguration{
			Lower: LimitWindow{
				Count:         v.GetInt("limits.lower.count"),
				ResetInterval: v.GetDuration("limits.lower.reset_interval"),
			},
			Higher: LimitWindow{
				Count:         v.GetInt("limits.higher.count"),
				ResetInterval: v.GetDuration("limits.higher.reset_interval"),
			},
		},
		Server: ServerConfiguration{
			HttpAddr: v.GetString("server.http_addr"),
			GrpcAddr: v.GetString("server.grpc_addr"),
		},
		Sync: SyncConfiguration{
			Interval:   v.GetDuration("sync.interval"),
			StaleAfter: v.GetDuration("sync.stale_after"),
			BatchSize:  v.GetInt("sync.batch_size"),
			Workers:    v.GetInt("sync.workers"),
		},
		Fetch: FetchConfiguration{
			Workers: v.GetInt("fetch.workers"),
			Timeout: v.GetDuration("fetch.timeout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("database.dsn", "host=localhost port=5432 user=postgres password=postgres dbname=leaguestats sslmode=disable TimeZone=UTC")
	v.SetDefault("database.migrations_path", "pkg/database/migrations")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.detail_ttl", 24*time.Hour)
	v.SetDefault("bucket.region", "auto")
	v.SetDefault("limits.lower.count", 20)
	v.SetDefault("limits.lower.reset_interval", time.Second)
	v.SetDefault("limits.higher.count", 100)
	v.SetDefault("limits.higher.reset_interval", 2*time.Minute)
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.grpc_addr", ":50051")
	v.SetDefault("sync.interval", 30*time.Minute)
	v.SetDefault("sync.stale_after", 6*time.Hour)
	v.SetDefault("sync.batch_size", 100)
	v.SetDefault("sync.workers", 4)
	v.SetDefault("fetch.workers", 10)
	v.SetDefault("fetch.timeout", 10*time.Second)
}

// Verify the values that would make the limiter or the pools unusable.
func (c *Config) validate() error {
	if c.Limits.Lower.Count <= 0 || c.Limits.Higher.Count <= 0 {
		return fmt.Errorf("rate limit counts must be positive")
	}
	if c.Limits.Lower.ResetInterval <= 0 || c.Limits.Higher.ResetInterval <= 0 {
		return fmt.Errorf("rate limit intervals must be positive")
	}
	if c.Sync.Workers <= 0 || c.Fetch.Workers <= 0 {
		return fmt.Errorf("worker counts must be positive")
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync interval must be positive")
	}
	return nil
}

// Redis address in the host:port format.
func (r RedisConfiguration) Addr() string {
	return r.Host + ":" + r.Port
}

// Verify if the log bucket was configured.
func (b BucketConfiguration) Enabled() bool {
	return b.Endpoint != "" && b.LogBucket != ""
}
