package cache

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"realty-stream/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient dials Redis with cfg and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg *RedisConfig) (*redis.Client, error) {
	tlsConfig, err := buildTLSConfig(cfg)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to load TLS certificate: %v", err)
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		TLSConfig:    tlsConfig,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := NewStore(client).Ping(pingCtx); err != nil {
		_ = client.Close()
		logger.GlobalLogger.Errorf("failed to connect to Redis at %s: %v", cfg.Addr(), err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GlobalLogger.Printf("Redis connected successfully at %s", cfg.Addr())
	return client, nil
}

func buildTLSConfig(cfg *RedisConfig) (*tls.Config, error) {
	if !cfg.TLSEnabled {
		return nil, nil
	}
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.TLSCertFile == "" {
		return tlsConfig, nil
	}

	pem, err := os.ReadFile(cfg.TLSCertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read TLS certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", cfg.TLSCertFile)
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

// close the Redis client connection.
func CloseRedis(client CacheClient) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.GlobalLogger.Errorf("error closing Redis: %v", err)
	} else {
		logger.GlobalLogger.Println("Redis connection closed")
	}
}
