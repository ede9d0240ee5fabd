package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"

	"github.com/google/uuid"
)

type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) port.AssetRepository {
	return &AssetRepo{db: db}
}

const assetColumns = `id, symbol, name, blockchain, blockchair_id, coingecko_id, is_active, created_at`

func (r *AssetRepo) ListActive(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE is_active ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return assets, nil
}

func (r *AssetRepo) FindBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE UPPER(symbol) = UPPER($1) LIMIT 1`, symbol)

	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find asset by symbol %s: %w", symbol, err)
	}

	return asset, nil
}

func (r *AssetRepo) FindByBlockchain(ctx context.Context, blockchain string) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE blockchair_id = $1 LIMIT 1`, blockchain)

	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find asset by blockchain %s: %w", blockchain, err)
	}

	return asset, nil
}

func (r *AssetRepo) Upsert(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	id := asset.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO assets (id, symbol, name, blockchain, blockchair_id, coingecko_id, is_active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			blockchain = EXCLUDED.blockchain,
			blockchair_id = EXCLUDED.blockchair_id,
			coingecko_id = EXCLUDED.coingecko_id,
			is_active = EXCLUDED.is_active
		RETURNING `+assetColumns,
		id,
		strings.ToUpper(asset.Symbol),
		asset.Name,
		asset.Blockchain,
		asset.BlockchairID,
		asset.CoingeckoID,
		asset.IsActive,
	)

	stored, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert asset %s: %w", asset.Symbol, err)
	}

	return stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		asset        domain.Asset
		blockchairID sql.NullString
		coingeckoID  sql.NullString
	)

	err := row.Scan(
		&asset.ID,
		&asset.Symbol,
		&asset.Name,
		&asset.Blockchain,
		&blockchairID,
		&coingeckoID,
		&asset.IsActive,
		&asset.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.BlockchairID = blockchairID.String
	asset.CoingeckoID = coingeckoID.String

	return &asset, nil
}
