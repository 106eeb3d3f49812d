package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		Env             string        `yaml:"env"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Stream struct {
		FrameDelay    time.Duration `yaml:"frame_delay"`
		SourceLatency time.Duration `yaml:"source_latency"`
	} `yaml:"stream"`
	Geocoding struct {
		APIKey    string        `yaml:"api_key"`
		BaseURL   string        `yaml:"base_url"`
		Country   string        `yaml:"country"`
		Timeout   time.Duration `yaml:"timeout"`
		CacheSize int           `yaml:"cache_size"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"geocoding"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GeocodingEnabled reports whether an external geocoding credential is configured.
func (c *Config) GeocodingEnabled() bool {
	return c.Geocoding.APIKey != ""
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, and validates the result. A missing file is not an error.
// Defaults are applied first, so keys that are present keep their value
// even when it is zero: a frame delay of 0s streams without pacing and a
// requests_per_minute of 0 disables rate limiting.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.Server.Port = portNum
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if err := envDuration("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := envDuration("STREAM_FRAME_DELAY", &cfg.Stream.FrameDelay); err != nil {
		return err
	}
	if err := envDuration("STREAM_SOURCE_LATENCY", &cfg.Stream.SourceLatency); err != nil {
		return err
	}

	if key := os.Getenv("POSITIONSTACK_API_KEY"); key != "" {
		cfg.Geocoding.APIKey = key
	}
	if baseURL := os.Getenv("POSITIONSTACK_BASE_URL"); baseURL != "" {
		cfg.Geocoding.BaseURL = baseURL
	}
	if err := envDuration("GEOCODING_TIMEOUT", &cfg.Geocoding.Timeout); err != nil {
		return err
	}
	if size := os.Getenv("GEOCODING_CACHE_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid GEOCODING_CACHE_SIZE value: %w", err)
		}
		cfg.Geocoding.CacheSize = n
	}

	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		cfg.Redis.Enabled = enabled == "true"
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %w", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}

	if rpm := os.Getenv("RATE_LIMIT_RPM"); rpm != "" {
		n, err := strconv.Atoi(rpm)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPM value: %w", err)
		}
		cfg.RateLimit.RequestsPerMinute = n
	}
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", name, err)
	}
	*dst = d
	return nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Log.Level = "info"
	cfg.Stream.FrameDelay = time.Second
	cfg.Stream.SourceLatency = time.Second
	cfg.Geocoding.BaseURL = "http://api.positionstack.com"
	cfg.Geocoding.Country = "IN"
	cfg.Geocoding.Timeout = 5 * time.Second
	cfg.Geocoding.CacheSize = 1000
	cfg.Geocoding.CacheTTL = 30 * 24 * time.Hour
	cfg.Redis.Host = "localhost"
	cfg.Redis.Port = 6379
	cfg.RateLimit.RequestsPerMinute = 100
	cfg.RateLimit.Burst = 10
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if cfg.Stream.FrameDelay < 0 || cfg.Stream.SourceLatency < 0 {
		return fmt.Errorf("stream delays must be non-negative")
	}
	if cfg.Geocoding.Timeout < 0 {
		return fmt.Errorf("GEOCODING_TIMEOUT must be positive")
	}
	if cfg.Geocoding.CacheSize < 0 {
		return fmt.Errorf("GEOCODING_CACHE_SIZE must be positive")
	}
	if cfg.RateLimit.RequestsPerMinute < 0 || cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must be non-negative")
	}
	if cfg.RateLimit.RequestsPerMinute > 0 && cfg.RateLimit.Burst == 0 {
		return fmt.Errorf("rate limit burst must be positive when requests_per_minute is set")
	}
	if cfg.Geocoding.BaseURL == "" {
		return fmt.Errorf("geocoding base_url must not be empty")
	}
	if !cfg.Redis.Enabled {
		return nil
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	return nil
}
