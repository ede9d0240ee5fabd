package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) port.SnapshotRepository {
	return &SnapshotRepo{db: db}
}

const snapshotColumns = `id, asset_id, price, market_cap, volume_24h, block_count, transaction_count, hash_rate, timestamp, data_source, created_at`

func (r *SnapshotRepo) Latest(ctx context.Context, assetID string) (*domain.Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots
		 WHERE asset_id = $1 ORDER BY timestamp DESC LIMIT 1`, assetID)

	snapshot, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		// No history yet is not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot for %s: %w", assetID, err)
	}

	return snapshot, nil
}

func (r *SnapshotRepo) Range(ctx context.Context, assetID string, from, to time.Time) ([]domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots
		 WHERE asset_id = $1 AND timestamp >= $2 AND timestamp <= $3
		 ORDER BY timestamp ASC`, assetID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot range for %s: %w", assetID, err)
	}
	defer rows.Close()

	snapshots := []domain.Snapshot{}
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query snapshot range for %s: %w", assetID, err)
	}

	return snapshots, nil
}

func (r *SnapshotRepo) Insert(ctx context.Context, snapshot *domain.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
		snapshot.ID,
		snapshot.AssetID,
		nullDecimal(snapshot.Price),
		nullInt64(snapshot.MarketCap),
		nullInt64(snapshot.Volume24h),
		nullInt64(snapshot.BlockCount),
		nullInt64(snapshot.TransactionCount),
		nullBigInt(snapshot.HashRate),
		snapshot.Timestamp,
		snapshot.DataSource,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot for %s: %w", snapshot.AssetID, err)
	}

	return nil
}

// BulkInsert inserts many snapshots inside one transaction, skipping rows
// that collide with an existing (asset, timestamp, source) entry.
func (r *SnapshotRepo) BulkInsert(ctx context.Context, snapshots []domain.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (asset_id, timestamp, data_source) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot bulk insert: %w", err)
	}
	defer stmt.Close()

	for i := range snapshots {
		s := &snapshots[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx,
			s.ID, s.AssetID,
			nullDecimal(s.Price),
			nullInt64(s.MarketCap),
			nullInt64(s.Volume24h),
			nullInt64(s.BlockCount),
			nullInt64(s.TransactionCount),
			nullBigInt(s.HashRate),
			s.Timestamp, s.DataSource,
		); err != nil {
			slog.Error("Failed to insert snapshot in bulk", "asset_id", s.AssetID, "error", err)
			return fmt.Errorf("failed to bulk insert snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot bulk insert: %w", err)
	}

	return nil
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var (
		snapshot         domain.Snapshot
		price            decimal.NullDecimal
		marketCap        sql.NullInt64
		volume24h        sql.NullInt64
		blockCount       sql.NullInt64
		transactionCount sql.NullInt64
		hashRate         sql.NullString
	)

	err := row.Scan(
		&snapshot.ID,
		&snapshot.AssetID,
		&price,
		&marketCap,
		&volume24h,
		&blockCount,
		&transactionCount,
		&hashRate,
		&snapshot.Timestamp,
		&snapshot.DataSource,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		snapshot.Price = &price.Decimal
	}
	snapshot.MarketCap = int64Ptr(marketCap)
	snapshot.Volume24h = int64Ptr(volume24h)
	snapshot.BlockCount = int64Ptr(blockCount)
	snapshot.TransactionCount = int64Ptr(transactionCount)

	if hashRate.Valid {
		parsed, err := domain.BigIntFromString(hashRate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hash rate: %w", err)
		}
		snapshot.HashRate = parsed
	}

	return &snapshot, nil
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func nullBigInt(v *domain.BigInt) any {
	if v == nil {
		return nil
	}
	return v.String()
}
