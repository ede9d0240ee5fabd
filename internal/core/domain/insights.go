package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prediction is a stored model forecast for an asset. Written by an offline
// job, read-only from this service.
type Prediction struct {
	ID              string           `json:"id"`
	AssetID         string           `json:"assetId"`
	PredictionType  string           `json:"predictionType"`
	PredictedValue  *decimal.Decimal `json:"predictedValue,omitempty"`
	ConfidenceScore *float64         `json:"confidenceScore,omitempty"`
	Reasoning       string           `json:"reasoning,omitempty"`
	ValidUntil      *time.Time       `json:"validUntil,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// NewsSentiment is a scored headline attached to an asset.
type NewsSentiment struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"assetId"`
	Headline       string     `json:"headline"`
	URL            string     `json:"url,omitempty"`
	SentimentScore *float64   `json:"sentimentScore,omitempty"`
	Source         string     `json:"source,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
