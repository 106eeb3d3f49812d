// Package cache provides Redis caching for resolved geocoding results.
package cache

import (
	"fmt"
	"os"

	"realty-stream/pkg/config"
)

// configuration settings for connecting to a Redis instance.
type RedisConfig struct {
	Host        string
	Port        int
	Password    string
	DB          int
	TLSEnabled  bool
	TLSCertFile string
}

// build a RedisConfig from the application configuration and validate it.
func LoadRedisConfig(cfg *config.Config) (*RedisConfig, error) {
	rc := &RedisConfig{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		TLSEnabled:  cfg.Redis.TLSEnabled,
		TLSCertFile: cfg.Redis.TLSCertFile,
	}

	if rc.Host == "" {
		return nil, fmt.Errorf("REDIS_HOST is required")
	}
	if rc.Port <= 0 || rc.Port > 65535 {
		return nil, fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if rc.DB < 0 {
		return nil, fmt.Errorf("REDIS_DB must be non-negative")
	}
	if rc.TLSEnabled && rc.TLSCertFile != "" {
		if _, err := os.Stat(rc.TLSCertFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("TLS certificate file does not exist: %s", rc.TLSCertFile)
		}
	}

	return rc, nil
}

// Addr returns the host:port dial address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
