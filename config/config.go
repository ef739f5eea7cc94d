package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port   string `env:"SERVER_PORT" envDefault:"5250"`
		DBPath string `env:"DATABASE_PATH" envDefault:"database/marketpulse.db"`
	}

	// Forecast engine defaults
	Forecast struct {
		// Default lookback window for forecasts (in months)
		LookbackMonths int `env:"FORECAST_LOOKBACK_MONTHS" envDefault:"24"`

		// Default forecast horizon (in months)
		HorizonMonths int `env:"FORECAST_HORIZON_MONTHS" envDefault:"12"`
	}

	// Result cache configuration
	Cache struct {
		// Redis address; empty disables result caching
		RedisAddr     string `env:"REDIS_ADDR"`
		RedisPassword string `env:"REDIS_PASSWORD"`
		RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

		// Time-to-live for cached forecast results (in hours)
		TTLHours int `env:"CACHE_TTL_HOURS" envDefault:"6"`
	}

	// Scheduler configuration for forecast cache warming
	Scheduler struct {
		// Enables the periodic warm-up job
		Enabled bool `env:"SCHEDULER_ENABLED" envDefault:"false"`

		// Interval between warm-up runs (in minutes)
		IntervalMinutes int `env:"SCHEDULER_INTERVAL_MINUTES" envDefault:"360"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of sale records to accumulate before processing
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Maximum time to wait before processing a non-full batch (in seconds)
		MaxBatchWaitTime int `env:"BATCH_WAIT_TIME" envDefault:"30"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
