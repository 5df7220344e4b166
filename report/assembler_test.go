package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifit/decision"
	"taxifit/models"
)

func samplePrediction() models.DamagePrediction {
	return models.DamagePrediction{
		Class:         models.MajorDamage,
		Confidence:    0.85,
		Probabilities: [3]float64{0.05, 0.15, 0.80},
	}
}

func sampleDirt() models.DirtAssessment {
	return models.DirtAssessment{
		Metrics: models.ImageMetrics{
			ColorDiversity: 95,
			Contrast:       33,
			Saturation:     80,
			BrownRatio:     0.12,
			EdgeIntensity:  18,
			Brightness:     95,
		},
		Score: 5.5,
		Label: models.Dirty,
	}
}

func TestAssembleSelectsOneNarrativePerVerdict(t *testing.T) {
	pairs := []struct {
		status models.FitnessStatus
		tag    models.EconomicTag
	}{
		{models.TaxiReady, models.PremiumReady},
		{models.TaxiReady, models.MinorMaintenance},
		{models.ConditionalTaxi, models.ImageImprovement},
		{models.ConditionalTaxi, models.RestrictedOperation},
		{models.ConditionalTaxi, models.CosmeticRepair},
		{models.RepairRequired, models.MandatoryRepair},
		{models.TaxiBanned, models.SafetyViolation},
	}

	seen := map[string]bool{}
	for _, p := range pairs {
		verdict := models.FitnessVerdict{Status: p.status, EconomicTag: p.tag, Rationale: []string{"r"}}
		rep, err := Assemble(samplePrediction(), sampleDirt(), verdict)
		require.NoError(t, err, "%s/%s", p.status, p.tag)
		require.NotEmpty(t, rep.Assessment.Fitness)

		key := rep.Assessment.Fitness[0]
		assert.False(t, seen[key], "narrative %q reused for %s/%s", key, p.status, p.tag)
		seen[key] = true
	}
}

func TestAssembleSelectsOneNarrativePerDirtLabel(t *testing.T) {
	labels := []models.DirtLabel{
		models.VeryDirty, models.Dirty, models.SlightlyDirty, models.FairlyClean, models.VeryClean,
	}
	verdict := models.FitnessVerdict{Status: models.TaxiReady, EconomicTag: models.PremiumReady}

	seen := map[string]bool{}
	for _, label := range labels {
		d := sampleDirt()
		d.Label = label
		rep, err := Assemble(samplePrediction(), d, verdict)
		require.NoError(t, err, "%s", label)
		require.NotEmpty(t, rep.Assessment.Cleanliness)

		key := rep.Assessment.Cleanliness[0]
		assert.False(t, seen[key], "narrative %q reused for %s", key, label)
		seen[key] = true
	}
}

func TestAssembleRejectsUnknownVerdict(t *testing.T) {
	verdict := models.FitnessVerdict{Status: models.TaxiBanned, EconomicTag: models.PremiumReady}
	_, err := Assemble(samplePrediction(), sampleDirt(), verdict)
	require.Error(t, err)

	verdict = models.FitnessVerdict{Status: models.TaxiReady, EconomicTag: models.PremiumReady}
	d := sampleDirt()
	d.Label = "filthy"
	_, err = Assemble(samplePrediction(), d, verdict)
	require.Error(t, err)
}

func TestAssembleProbabilitiesInPercent(t *testing.T) {
	verdict := models.FitnessVerdict{Status: models.TaxiBanned, EconomicTag: models.SafetyViolation}
	rep, err := Assemble(samplePrediction(), sampleDirt(), verdict)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, rep.Probabilities["no_damage"], 1e-9)
	assert.InDelta(t, 15.0, rep.Probabilities["minor_damage"], 1e-9)
	assert.InDelta(t, 80.0, rep.Probabilities["major_damage"], 1e-9)
}

func TestConfidenceBands(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "high"},
		{0.81, "high"},
		{0.8, "medium"},
		{0.7, "medium"},
		{0.6, "low"},
		{0.3, "low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, confidenceBand(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestLowConfidenceAdvisory(t *testing.T) {
	verdict := models.FitnessVerdict{Status: models.TaxiReady, EconomicTag: models.PremiumReady}

	pred := samplePrediction()
	pred.Confidence = 0.5
	rep, err := Assemble(pred, sampleDirt(), verdict)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Assessment.Advisories)

	pred.Confidence = 0.9
	rep, err = Assemble(pred, sampleDirt(), verdict)
	require.NoError(t, err)
	assert.Empty(t, rep.Assessment.Advisories)
}

// Serializing a report and re-deriving the verdict from its own numbers must
// reproduce the stored status and dirt label.
func TestReportRoundTrip(t *testing.T) {
	pred := samplePrediction()
	d := sampleDirt()

	verdict, err := decision.Decide(pred, d)
	require.NoError(t, err)
	rep, err := Assemble(pred, d, verdict)
	require.NoError(t, err)

	raw, err := json.Marshal(rep)
	require.NoError(t, err)
	var decoded models.Report
	require.NoError(t, json.Unmarshal(raw, &decoded))

	rebuilt := models.DamagePrediction{
		Class:      decoded.Class,
		Confidence: decoded.Confidence,
		Probabilities: [3]float64{
			decoded.Probabilities["no_damage"] / 100,
			decoded.Probabilities["minor_damage"] / 100,
			decoded.Probabilities["major_damage"] / 100,
		},
	}
	again, err := decision.Decide(rebuilt, models.DirtAssessment{Score: decoded.DirtScore, Label: decoded.DirtLabel})
	require.NoError(t, err)

	assert.Equal(t, decoded.Status, again.Status)
	assert.Equal(t, decoded.EconomicTag, again.EconomicTag)
	assert.Equal(t, d.Label, decoded.DirtLabel)
}
