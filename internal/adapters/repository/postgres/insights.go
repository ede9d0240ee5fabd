package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"

	"github.com/shopspring/decimal"
)

// InsightsRepo reads the auxiliary predictions and news_sentiment tables.
// Both are written by offline jobs; this service only serves them out.
type InsightsRepo struct {
	db *sql.DB
}

func NewInsightsRepo(db *sql.DB) port.InsightsRepository {
	return &InsightsRepo{db: db}
}

func (r *InsightsRepo) LatestPredictions(ctx context.Context, assetID string, limit int) ([]domain.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, asset_id, prediction_type, predicted_value, confidence_score, reasoning, valid_until, created_at
		FROM predictions
		WHERE asset_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, assetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions for %s: %w", assetID, err)
	}
	defer rows.Close()

	predictions := []domain.Prediction{}
	for rows.Next() {
		var (
			p          domain.Prediction
			value      decimal.NullDecimal
			confidence sql.NullFloat64
			reasoning  sql.NullString
			validUntil sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.AssetID, &p.PredictionType, &value, &confidence, &reasoning, &validUntil, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if value.Valid {
			p.PredictedValue = &value.Decimal
		}
		p.ConfidenceScore = float64Ptr(confidence)
		p.Reasoning = reasoning.String
		p.ValidUntil = timePtr(validUntil)
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query predictions for %s: %w", assetID, err)
	}

	return predictions, nil
}

func (r *InsightsRepo) LatestSentiment(ctx context.Context, assetID string, limit int) ([]domain.NewsSentiment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, asset_id, headline, url, sentiment_score, source, published_at, created_at
		FROM news_sentiment
		WHERE asset_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, assetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment for %s: %w", assetID, err)
	}
	defer rows.Close()

	items := []domain.NewsSentiment{}
	for rows.Next() {
		var (
			s           domain.NewsSentiment
			url         sql.NullString
			score       sql.NullFloat64
			source      sql.NullString
			publishedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.AssetID, &s.Headline, &url, &score, &source, &publishedAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment: %w", err)
		}
		s.URL = url.String
		s.SentimentScore = float64Ptr(score)
		s.Source = source.String
		s.PublishedAt = timePtr(publishedAt)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query sentiment for %s: %w", assetID, err)
	}

	return items, nil
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
