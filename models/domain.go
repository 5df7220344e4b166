package models

import (
	"fmt"
	"math"
)

type DamageClass string

const (
	NoDamage    DamageClass = "no_damage"
	MinorDamage DamageClass = "minor_damage"
	MajorDamage DamageClass = "major_damage"
)

// ClassNames is the fixed probability vector order the oracle reports in.
var ClassNames = [3]DamageClass{NoDamage, MinorDamage, MajorDamage}

type DirtLabel string

const (
	VeryDirty     DirtLabel = "very_dirty"
	Dirty         DirtLabel = "dirty"
	SlightlyDirty DirtLabel = "slightly_dirty"
	FairlyClean   DirtLabel = "fairly_clean"
	VeryClean     DirtLabel = "very_clean"
)

type FitnessStatus string

const (
	TaxiReady       FitnessStatus = "taxi_ready"
	ConditionalTaxi FitnessStatus = "conditional_taxi"
	RepairRequired  FitnessStatus = "repair_required"
	TaxiBanned      FitnessStatus = "taxi_banned"
)

type EconomicTag string

const (
	PremiumReady        EconomicTag = "premium_ready"
	MinorMaintenance    EconomicTag = "minor_maintenance"
	ImageImprovement    EconomicTag = "image_improvement"
	CosmeticRepair      EconomicTag = "cosmetic_repair"
	RestrictedOperation EconomicTag = "restricted_operation"
	MandatoryRepair     EconomicTag = "mandatory_repair"
	SafetyViolation     EconomicTag = "safety_violation"
)

// ImageMetrics holds the six raw statistics the dirt scorer derives from a
// decoded photo. Values are computed once per image and never mutated.
type ImageMetrics struct {
	ColorDiversity float64 `json:"color_diversity"`
	Contrast       float64 `json:"contrast"`
	Saturation     float64 `json:"saturation"`
	BrownRatio     float64 `json:"brown_ratio"`
	EdgeIntensity  float64 `json:"edge_intensity"`
	Brightness     float64 `json:"brightness"`
}

type DirtAssessment struct {
	Metrics ImageMetrics `json:"metrics"`
	Score   float64      `json:"score"`
	Label   DirtLabel    `json:"label"`
}

// DamagePrediction is the oracle output. Probabilities follow ClassNames
// order and sum to 1 within floating point tolerance.
type DamagePrediction struct {
	Class         DamageClass `json:"class"`
	Confidence    float64     `json:"confidence"`
	Probabilities [3]float64  `json:"probabilities"`
}

// MajorPercent returns the major_damage probability on a 0-100 scale, the
// unit the fitness thresholds are expressed in.
func (p DamagePrediction) MajorPercent() float64 {
	return p.Probabilities[2] * 100
}

const probabilitySumTolerance = 0.01

// Validate checks the oracle contract: known class, confidence in (0,1],
// probabilities non-negative and summing to ~1. A violation is reported as
// InvalidPredictionError; predictions are never coerced into shape.
func (p DamagePrediction) Validate() error {
	switch p.Class {
	case NoDamage, MinorDamage, MajorDamage:
	default:
		return &InvalidPredictionError{Reason: fmt.Sprintf("unknown damage class %q", p.Class)}
	}
	if math.IsNaN(p.Confidence) || p.Confidence <= 0 || p.Confidence > 1 {
		return &InvalidPredictionError{Reason: fmt.Sprintf("confidence %v outside (0,1]", p.Confidence)}
	}
	sum := 0.0
	for i, prob := range p.Probabilities {
		if math.IsNaN(prob) || prob < 0 || prob > 1 {
			return &InvalidPredictionError{Reason: fmt.Sprintf("probability[%d] = %v outside [0,1]", i, prob)}
		}
		sum += prob
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		return &InvalidPredictionError{Reason: fmt.Sprintf("probabilities sum to %.4f, expected 1.0", sum)}
	}
	return nil
}

type FitnessVerdict struct {
	Status      FitnessStatus `json:"status"`
	EconomicTag EconomicTag   `json:"economic_tag"`
	Rationale   []string      `json:"rationale"`
}

// Report is the final artifact returned to API consumers. Assembled once per
// request by the report package; serialization is the caller's concern.
type Report struct {
	Status         FitnessStatus      `json:"status"`
	EconomicTag    EconomicTag        `json:"economic_tag"`
	Class          DamageClass        `json:"predicted_class"`
	Confidence     float64            `json:"confidence"`
	ConfidenceBand string             `json:"confidence_band"`
	Probabilities  map[string]float64 `json:"probabilities"`
	DirtLabel      DirtLabel          `json:"dirt_label"`
	DirtScore      float64            `json:"dirt_score"`
	Metrics        ImageMetrics       `json:"metrics"`
	Rationale      []string           `json:"rationale"`
	Assessment     Assessment         `json:"assessment"`
}

// Assessment groups the narrative sections of the expert report.
type Assessment struct {
	Fitness     []string `json:"fitness"`
	Cleanliness []string `json:"cleanliness"`
	Technical   []string `json:"technical"`
	Advisories  []string `json:"advisories,omitempty"`
}
