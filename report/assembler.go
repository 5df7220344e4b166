// Package report renders a verdict and its raw inputs into the structured
// expert report returned to API consumers. Every (status, economic tag) pair
// and every dirt label maps to exactly one narrative template, so selection
// is a plain lookup.
package report

import (
	"fmt"

	"taxifit/models"
)

// fitnessNarratives covers the seven reachable (status, economic tag) pairs.
var fitnessNarratives = map[models.FitnessStatus]map[models.EconomicTag][]string{
	models.TaxiReady: {
		models.PremiumReady: {
			"Recommended for the premium segment",
			"Excellent condition, suitable for VIP and business clients",
			"Eligible for elevated tariffs and guaranteed high ratings",
		},
		models.MinorMaintenance: {
			"Admitted to taxi service",
			"Minor maintenance recommended: one to three days of downtime",
			"Standard and comfort service classes",
		},
	},
	models.ConditionalTaxi: {
		models.ImageImprovement: {
			"Admitted with a repair recommendation",
			"Cosmetic defects are noticeable and may affect client reviews",
			"Schedule cosmetic repair to restore premium eligibility",
		},
		models.RestrictedOperation: {
			"Admitted with operating restrictions",
			"City trips only, weekly inspections until repaired",
			"Higher insurance tariffs apply while restrictions are in force",
		},
		models.CosmeticRepair: {
			"Admitted; cosmetic repair recommended",
			"Visible defects should be removed to protect fleet image",
			"Low repair cost relative to expected rating impact",
		},
	},
	models.RepairRequired: {
		models.MandatoryRepair: {
			"Withdrawn from service pending mandatory repair",
			"Body repair and full technical inspection required",
			"Recertification needed before the vehicle returns to the fleet",
		},
	},
	models.TaxiBanned: {
		models.SafetyViolation: {
			"Banned from commercial passenger service",
			"Operating the vehicle violates transport safety requirements",
			"Remove from the fleet: sell or scrap",
		},
	},
}

var dirtNarratives = map[models.DirtLabel][]string{
	models.VeryDirty: {
		"Critical soiling: the dirt layer prevents accurate damage diagnostics",
		"Urgent professional wash and detailing required",
		"Repeat the inspection after cleaning",
	},
	models.Dirty: {
		"Significant soiling reduces the accuracy of the visual assessment",
		"Comprehensive wash recommended before a detailed inspection",
		"Minor defects may be hidden under the dirt",
	},
	models.SlightlyDirty: {
		"Moderate soiling: a light dust film does not hinder diagnostics",
		"A regular wash will keep the vehicle presentable",
	},
	models.FairlyClean: {
		"Good state of cleanliness with clear visibility of all body panels",
		"Diagnostic accuracy is not reduced",
	},
	models.VeryClean: {
		"Perfect state of cleanliness",
		"Ideal conditions for a precise damage assessment",
	},
}

// Reference values a clean, well-lit photo is expected to exceed. Reported
// alongside the raw metrics so a reader can see which heuristics fired.
var metricNorms = []struct {
	name  string
	norm  float64
	value func(models.ImageMetrics) float64
}{
	{"color diversity", 120, func(m models.ImageMetrics) float64 { return m.ColorDiversity }},
	{"contrast", 40, func(m models.ImageMetrics) float64 { return m.Contrast }},
	{"saturation", 100, func(m models.ImageMetrics) float64 { return m.Saturation }},
	{"edge intensity", 25, func(m models.ImageMetrics) float64 { return m.EdgeIntensity }},
	{"brightness", 110, func(m models.ImageMetrics) float64 { return m.Brightness }},
}

// Assemble builds the report for one completed analysis. Pure: no I/O, no
// mutation of its inputs.
func Assemble(prediction models.DamagePrediction, dirt models.DirtAssessment, verdict models.FitnessVerdict) (models.Report, error) {
	fitness, ok := fitnessNarratives[verdict.Status][verdict.EconomicTag]
	if !ok {
		return models.Report{}, fmt.Errorf("report: no narrative for verdict %s/%s", verdict.Status, verdict.EconomicTag)
	}
	cleanliness, ok := dirtNarratives[dirt.Label]
	if !ok {
		return models.Report{}, fmt.Errorf("report: no narrative for dirt label %s", dirt.Label)
	}

	return models.Report{
		Status:         verdict.Status,
		EconomicTag:    verdict.EconomicTag,
		Class:          prediction.Class,
		Confidence:     prediction.Confidence,
		ConfidenceBand: confidenceBand(prediction.Confidence),
		Probabilities: map[string]float64{
			string(models.NoDamage):    prediction.Probabilities[0] * 100,
			string(models.MinorDamage): prediction.Probabilities[1] * 100,
			string(models.MajorDamage): prediction.Probabilities[2] * 100,
		},
		DirtLabel: dirt.Label,
		DirtScore: dirt.Score,
		Metrics:   dirt.Metrics,
		Rationale: verdict.Rationale,
		Assessment: models.Assessment{
			Fitness:     fitness,
			Cleanliness: cleanliness,
			Technical:   technicalSection(dirt),
			Advisories:  advisories(prediction),
		},
	}, nil
}

func confidenceBand(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "high"
	case confidence > 0.6:
		return "medium"
	default:
		return "low"
	}
}

func technicalSection(dirt models.DirtAssessment) []string {
	lines := make([]string, 0, len(metricNorms)+1)
	for _, m := range metricNorms {
		lines = append(lines, fmt.Sprintf("%s: %.1f (norm: >%.0f)", m.name, m.value(dirt.Metrics), m.norm))
	}
	lines = append(lines, fmt.Sprintf("brown pixel ratio: %.3f", dirt.Metrics.BrownRatio))
	return lines
}

// advisories adds the re-shoot guidance for low-confidence predictions.
func advisories(prediction models.DamagePrediction) []string {
	if prediction.Confidence >= 0.6 {
		return nil
	}
	return []string{
		fmt.Sprintf("Low diagnosis confidence (%.1f%%): additional checks advised", prediction.Confidence*100),
		"Retake the photo in good lighting with the whole vehicle in frame",
		"Consider multiple angles or an in-person expert inspection",
	}
}
