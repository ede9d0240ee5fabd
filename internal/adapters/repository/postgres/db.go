package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KeliLabs/cryptoview/internal/config"
)

func NewDbConnInstance(cfg *config.Repository) (*sql.DB, error) {
	if cfg == nil {
		return nil, errors.New("Postgres configuration is nil")
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUsername,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database: %w", err)
	}

	maxConn := cfg.MaxConn
	if maxConn <= 0 {
		maxConn = 25
	}
	maxIdle := cfg.MaxIdleConn
	if maxIdle <= 0 {
		maxIdle = maxConn
	}
	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("Failed to ping database: %w", err)
	}

	return db, nil
}

// Bootstrap ensures the tables exist and the asset catalog is seeded.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if err := createTables(ctx, db); err != nil {
		return err
	}

	if err := Seed(ctx, NewAssetRepo(db)); err != nil {
		return err
	}

	slog.Info("Database schema ready")
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id VARCHAR(36) PRIMARY KEY,
			symbol VARCHAR(16) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			blockchain VARCHAR(64) NOT NULL,
			blockchair_id VARCHAR(64),
			coingecko_id VARCHAR(64),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id VARCHAR(36) PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL REFERENCES assets(id),
			price NUMERIC(30,8),
			market_cap BIGINT,
			volume_24h BIGINT,
			block_count BIGINT,
			transaction_count BIGINT,
			hash_rate NUMERIC(30,0),
			timestamp TIMESTAMPTZ NOT NULL,
			data_source VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (asset_id, timestamp, data_source)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_asset_timestamp
			ON snapshots (asset_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			id VARCHAR(36) PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL REFERENCES assets(id),
			prediction_type VARCHAR(64) NOT NULL,
			predicted_value NUMERIC(30,8),
			confidence_score DOUBLE PRECISION,
			reasoning TEXT,
			valid_until TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS news_sentiment (
			id VARCHAR(36) PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL REFERENCES assets(id),
			headline TEXT NOT NULL,
			url TEXT,
			sentiment_score DOUBLE PRECISION,
			source VARCHAR(64),
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}
