// Package potability provides a client for the external potability scoring
// service, a model server that predicts whether water is safe to drink from
// nine physicochemical measurements.
package potability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// Features are the measurements the scoring model expects. Field names match
// the model's training columns, hence the wire casing.
type Features struct {
	PH              float64 `json:"ph"`
	Hardness        float64 `json:"Hardness"`
	Solids          float64 `json:"Solids"`
	Chloramines     float64 `json:"Chloramines"`
	Sulfate         float64 `json:"Sulfate"`
	Conductivity    float64 `json:"Conductivity"`
	OrganicCarbon   float64 `json:"Organic_carbon"`
	Trihalomethanes float64 `json:"Trihalomethanes"`
	Turbidity       float64 `json:"Turbidity"`
}

// Prediction is the scorer's verdict.
type Prediction string

const (
	PredictionSafe   Prediction = "Safe"
	PredictionUnsafe Prediction = "Unsafe"
)

// Scorer predicts drinkability from measured features.
type Scorer interface {
	Predict(ctx context.Context, features Features) (Prediction, error)
}

// Client calls the scoring service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a scorer client. baseURL is the service root, without a
// trailing slash.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type predictResponse struct {
	Prediction string `json:"prediction"`
	Error      string `json:"error"`
}

// Predict posts the features to the scoring service and returns its verdict.
func (c *Client) Predict(ctx context.Context, features Features) (Prediction, error) {
	const op = "potability.predict"

	body, err := json.Marshal(features)
	if err != nil {
		return "", domain.Internal(err, op, "failed to encode features")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return "", domain.Internal(err, op, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.Unavailable(err, op, "potability service is unreachable")
	}
	defer resp.Body.Close()

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.Unavailable(err, op, "potability service returned an unreadable response")
	}

	if resp.StatusCode != http.StatusOK {
		msg := decoded.Error
		if msg == "" {
			msg = fmt.Sprintf("potability service returned status %d", resp.StatusCode)
		}
		return "", domain.Unavailable(nil, op, msg)
	}

	prediction := Prediction(decoded.Prediction)
	switch prediction {
	case PredictionSafe, PredictionUnsafe:
	default:
		return "", domain.Unavailable(nil, op,
			fmt.Sprintf("potability service returned unknown prediction %q", decoded.Prediction))
	}

	c.logger.Debug("potability prediction",
		"prediction", prediction,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return prediction, nil
}
