package models

import "fmt"

// ImageDecodeError reports an unreadable or corrupt input image.
type ImageDecodeError struct {
	Source string
	Err    error
}

func (e *ImageDecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("decode image %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// InvalidPredictionError reports an oracle response that violates the
// probability-vector contract.
type InvalidPredictionError struct {
	Reason string
}

func (e *InvalidPredictionError) Error() string {
	return "invalid prediction: " + e.Reason
}

// InvalidMetricError reports a computed image metric that is NaN or negative
// where the heuristic requires a finite non-negative value.
type InvalidMetricError struct {
	Metric string
	Value  float64
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid metric %s: %v", e.Metric, e.Value)
}
