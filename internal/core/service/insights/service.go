package insights

import (
	"context"

	"github.com/KeliLabs/cryptoview/internal/core/domain"
	"github.com/KeliLabs/cryptoview/internal/core/port"
)

const (
	predictionLimit = 5
	sentimentLimit  = 10
)

// Service serves the auxiliary prediction and sentiment tables. Read-only;
// the rows are produced by offline jobs outside this service.
type Service struct {
	assets   port.AssetRepository
	insights port.InsightsRepository
}

func NewService(assets port.AssetRepository, insights port.InsightsRepository) *Service {
	return &Service{
		assets:   assets,
		insights: insights,
	}
}

func (s *Service) Predictions(ctx context.Context, symbol string) ([]domain.Prediction, error) {
	asset, err := s.assets.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.insights.LatestPredictions(ctx, asset.ID, predictionLimit)
}

func (s *Service) Sentiment(ctx context.Context, symbol string) ([]domain.NewsSentiment, error) {
	asset, err := s.assets.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.insights.LatestSentiment(ctx, asset.ID, sentimentLimit)
}
