// Package oracle wraps the external damage classifier. The engine only
// depends on the probability-vector contract, so any implementation of
// Oracle is interchangeable.
package oracle

import (
	"context"

	"taxifit/models"
	"taxifit/vision"
)

// Oracle scores a preprocessed image tensor as a 3-way damage distribution.
type Oracle interface {
	Predict(ctx context.Context, t *vision.Tensor) (models.DamagePrediction, error)
}
