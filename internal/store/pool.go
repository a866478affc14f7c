package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/petition/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig parses the database URL and applies pool sizing and the TLS
// policy for the app environment. It does not connect.
func PoolConfig(db config.DatabaseConfig, app config.AppConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	applyTLSPolicy(&poolConfig.ConnConfig.Config, app.IsDevelopment())
	return poolConfig, nil
}

// applyTLSPolicy turns TLS off in development. Everywhere else TLS is
// required but the server certificate is not verified, which is what hosted
// databases with self-signed certificates need.
func applyTLSPolicy(cc *pgconn.Config, development bool) {
	if development {
		cc.TLSConfig = nil
		for _, fb := range cc.Fallbacks {
			fb.TLSConfig = nil
		}
		return
	}

	cc.TLSConfig = laxTLS(cc.Host)
	for _, fb := range cc.Fallbacks {
		fb.TLSConfig = laxTLS(fb.Host)
	}
}

func laxTLS(host string) *tls.Config {
	return &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: true, //nolint:gosec // certificate verification is disabled outside development
	}
}

// Open connects a pool and verifies it with a ping.
func Open(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// DatabaseName returns the database named in a connection URL, for logging
// without exposing credentials.
func DatabaseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
