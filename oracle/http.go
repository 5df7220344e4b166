package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"taxifit/models"
	"taxifit/vision"
)

// HTTPOracle talks to the model inference service over HTTP.
type HTTPOracle struct {
	serviceURL string
	httpClient *http.Client
}

// NewHTTP builds an oracle client for the service at serviceURL.
func NewHTTP(serviceURL string, timeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictRequest struct {
	Shape  [3]int    `json:"shape"`
	Tensor []float32 `json:"tensor"`
}

type predictResponse struct {
	Class         models.DamageClass `json:"class"`
	Confidence    float64            `json:"confidence"`
	Probabilities [3]float64         `json:"probabilities"`
}

// Predict posts the tensor to the inference service and validates the
// returned prediction against the oracle contract. Contract violations are
// surfaced as-is; there is no fallback result.
func (o *HTTPOracle) Predict(ctx context.Context, t *vision.Tensor) (models.DamagePrediction, error) {
	body, err := json.Marshal(predictRequest{
		Shape:  [3]int{3, vision.TensorSize, vision.TensorSize},
		Tensor: t.Data,
	})
	if err != nil {
		return models.DamagePrediction{}, fmt.Errorf("oracle: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", o.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.DamagePrediction{}, fmt.Errorf("oracle: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return models.DamagePrediction{}, fmt.Errorf("oracle: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DamagePrediction{}, fmt.Errorf("oracle: service returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.DamagePrediction{}, fmt.Errorf("oracle: failed to decode response: %w", err)
	}

	prediction := models.DamagePrediction{
		Class:         out.Class,
		Confidence:    out.Confidence,
		Probabilities: out.Probabilities,
	}
	if err := prediction.Validate(); err != nil {
		return models.DamagePrediction{}, err
	}
	return prediction, nil
}

// Health checks inference service connectivity.
func (o *HTTPOracle) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", o.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("oracle: failed to create health request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("oracle: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oracle: health check returned status %d", resp.StatusCode)
	}
	return nil
}
