package oracle

import (
	"context"
	"math"

	"taxifit/models"
	"taxifit/vision"
)

// MockOracle is an in-process stand-in used when no inference service is
// configured. It derives pseudo-logits from tensor statistics, so repeated
// analyses of the same image always agree.
type MockOracle struct{}

func NewMock() *MockOracle {
	return &MockOracle{}
}

func (o *MockOracle) Predict(_ context.Context, t *vision.Tensor) (models.DamagePrediction, error) {
	m, s := tensorStats(t)

	// Smooth, well-exposed images read as undamaged; heavy texture and
	// extreme exposure push probability mass toward the damage classes.
	logits := [3]float64{
		2.2 - 1.5*s,
		0.5 + 0.8*s - 0.4*math.Abs(m),
		-1.0 + 1.2*s + 0.9*math.Abs(m),
	}
	probs := softmax(logits)

	best := 0
	for i := 1; i < 3; i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	prediction := models.DamagePrediction{
		Class:         models.ClassNames[best],
		Confidence:    probs[best],
		Probabilities: probs,
	}
	if err := prediction.Validate(); err != nil {
		return models.DamagePrediction{}, err
	}
	return prediction, nil
}

func tensorStats(t *vision.Tensor) (mean, std float64) {
	if len(t.Data) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range t.Data {
		sum += float64(v)
	}
	mean = sum / float64(len(t.Data))

	variance := 0.0
	for _, v := range t.Data {
		d := float64(v) - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(t.Data)))
}

func softmax(logits [3]float64) [3]float64 {
	maxL := logits[0]
	for _, l := range logits[1:] {
		if l > maxL {
			maxL = l
		}
	}
	var exp [3]float64
	sum := 0.0
	for i, l := range logits {
		exp[i] = math.Exp(l - maxL)
		sum += exp[i]
	}
	for i := range exp {
		exp[i] /= sum
	}
	return exp
}
