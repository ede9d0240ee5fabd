package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/KeliLabs/cryptoview/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssets struct {
	asset *domain.Asset
}

func (s *stubAssets) ListActive(_ context.Context) ([]domain.Asset, error) { return nil, nil }

func (s *stubAssets) FindBySymbol(_ context.Context, symbol string) (*domain.Asset, error) {
	if s.asset == nil || !strings.EqualFold(s.asset.Symbol, symbol) {
		return nil, domain.ErrNotFound
	}
	return s.asset, nil
}

func (s *stubAssets) FindByBlockchain(_ context.Context, _ string) (*domain.Asset, error) {
	return nil, domain.ErrNotFound
}

func (s *stubAssets) Upsert(_ context.Context, asset *domain.Asset) (*domain.Asset, error) {
	return asset, nil
}

type stubInsights struct {
	predictions []domain.Prediction
	sentiment   []domain.NewsSentiment

	gotAssetID string
	gotLimit   int
}

func (s *stubInsights) LatestPredictions(_ context.Context, assetID string, limit int) ([]domain.Prediction, error) {
	s.gotAssetID = assetID
	s.gotLimit = limit
	return s.predictions, nil
}

func (s *stubInsights) LatestSentiment(_ context.Context, assetID string, limit int) ([]domain.NewsSentiment, error) {
	s.gotAssetID = assetID
	s.gotLimit = limit
	return s.sentiment, nil
}

func TestPredictions(t *testing.T) {
	repo := &stubInsights{predictions: []domain.Prediction{{ID: "pred-1", PredictionType: "price_target"}}}
	svc := NewService(&stubAssets{asset: &domain.Asset{ID: "asset-btc", Symbol: "BTC"}}, repo)

	got, err := svc.Predictions(context.Background(), "btc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pred-1", got[0].ID)
	assert.Equal(t, "asset-btc", repo.gotAssetID)
	assert.Equal(t, predictionLimit, repo.gotLimit)
}

func TestPredictions_UnknownSymbol(t *testing.T) {
	svc := NewService(&stubAssets{}, &stubInsights{})

	_, err := svc.Predictions(context.Background(), "DOGE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSentiment(t *testing.T) {
	repo := &stubInsights{sentiment: []domain.NewsSentiment{{ID: "news-1", Headline: "ETF inflows pick up"}}}
	svc := NewService(&stubAssets{asset: &domain.Asset{ID: "asset-btc", Symbol: "BTC"}}, repo)

	got, err := svc.Sentiment(context.Background(), "BTC")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "news-1", got[0].ID)
	assert.Equal(t, sentimentLimit, repo.gotLimit)
}
