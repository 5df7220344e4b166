// Package decision turns a damage prediction and a dirt assessment into an
// operational taxi-fitness verdict. The cascade is an ordered rule table:
// rules are checked top to bottom and the first match wins.
package decision

import (
	"fmt"

	"taxifit/models"
)

// Percent-probability thresholds for the major_damage class. Stricter than
// general roadworthiness limits: passenger safety comes first in commercial
// service.
const (
	TaxiBanThreshold        = 75.0
	RepairRequiredThreshold = 50.0
	ConditionalThreshold    = 25.0
	MinorDamageTaxiLimit    = 40.0
)

// Dirt-index levels that trigger cleanliness advisories. Advisories only
// extend the rationale; they never change the safety verdict.
const (
	criticalDirtScore = 6.0
	elevatedDirtScore = 4.0
)

type majorRule struct {
	matches   func(confidence, pMajor float64) bool
	status    models.FitnessStatus
	tag       models.EconomicTag
	rationale func(pMajor float64) []string
}

var majorDamageRules = []majorRule{
	{
		matches: func(confidence, pMajor float64) bool {
			return confidence > 0.8 && pMajor > TaxiBanThreshold
		},
		status: models.TaxiBanned,
		tag:    models.SafetyViolation,
		rationale: func(pMajor float64) []string {
			return []string{
				"Vehicle is banned from taxi service",
				fmt.Sprintf("Probability of critical damage: %.1f%%", pMajor),
				fmt.Sprintf("Safety ceiling of %.1f%% exceeded", TaxiBanThreshold),
				"Operating the vehicle endangers passengers and driver",
				"Remove from the fleet: sell or scrap",
			}
		},
	},
	{
		matches: func(confidence, pMajor float64) bool {
			return confidence > 0.6 || pMajor > RepairRequiredThreshold
		},
		status: models.RepairRequired,
		tag:    models.MandatoryRepair,
		rationale: func(pMajor float64) []string {
			return []string{
				"Mandatory repair before returning to service",
				fmt.Sprintf("Probability of serious damage: %.1f%%", pMajor),
				fmt.Sprintf("Admission threshold of %.1f%% exceeded or diagnosis confidence above 60%%", RepairRequiredThreshold),
				"Vehicle is temporarily withdrawn from operation",
				"Body repair and technical inspection required before recertification",
			}
		},
	},
	{
		matches: func(confidence, pMajor float64) bool {
			return pMajor > ConditionalThreshold
		},
		status: models.ConditionalTaxi,
		tag:    models.RestrictedOperation,
		rationale: func(pMajor float64) []string {
			return []string{
				"Conditionally admitted with operating restrictions",
				fmt.Sprintf("Probability of serious damage: %.1f%%, inside the borderline zone (%.1f-%.1f%%)",
					pMajor, ConditionalThreshold, RepairRequiredThreshold),
				"City trips only: no intercity routes or premium clients",
				"Weekly technical inspections until repair is completed",
			}
		},
	},
	{
		matches: func(confidence, pMajor float64) bool { return true },
		status:  models.ConditionalTaxi,
		tag:     models.CosmeticRepair,
		rationale: func(pMajor float64) []string {
			return []string{
				"Cosmetic repair recommended",
				fmt.Sprintf("Probability of serious damage: %.1f%%", pMajor),
				"Admissible for taxi service",
				"Removing visible defects will help keep service ratings up",
			}
		},
	},
}

type minorRule struct {
	matches   func(confidence, minorSeverity float64) bool
	status    models.FitnessStatus
	tag       models.EconomicTag
	rationale func(minorSeverity float64) []string
}

var minorDamageRules = []minorRule{
	{
		matches: func(confidence, minorSeverity float64) bool {
			return confidence > 0.6 && minorSeverity > MinorDamageTaxiLimit
		},
		status: models.ConditionalTaxi,
		tag:    models.ImageImprovement,
		rationale: func(minorSeverity float64) []string {
			return []string{
				"Cosmetic repair advised before premium assignments",
				fmt.Sprintf("Estimated cosmetic defect severity: %.1f%%", minorSeverity),
				"No impact on driving safety",
				"Appearance may lower client ratings and reviews",
			}
		},
	},
	{
		matches: func(confidence, minorSeverity float64) bool { return true },
		status:  models.TaxiReady,
		tag:     models.MinorMaintenance,
		rationale: func(minorSeverity float64) []string {
			return []string{
				"Fit for taxi service",
				fmt.Sprintf("Estimated cosmetic defect severity: %.1f%%", minorSeverity),
				"Minimal cosmetic defects only",
				"Fully suitable for commercial passenger transport",
			}
		},
	},
}

// Decide evaluates the fitness cascade for a validated prediction and
// appends cleanliness advisories from the dirt assessment. The prediction is
// validated before any rule runs; a contract violation aborts the decision.
func Decide(prediction models.DamagePrediction, dirt models.DirtAssessment) (models.FitnessVerdict, error) {
	if err := prediction.Validate(); err != nil {
		return models.FitnessVerdict{}, err
	}

	verdict := evaluate(prediction)
	verdict.Rationale = append(verdict.Rationale, dirtAdvisories(dirt)...)
	return verdict, nil
}

func evaluate(prediction models.DamagePrediction) models.FitnessVerdict {
	pMajor := prediction.MajorPercent()

	switch prediction.Class {
	case models.MajorDamage:
		for _, rule := range majorDamageRules {
			if rule.matches(prediction.Confidence, pMajor) {
				return models.FitnessVerdict{
					Status:      rule.status,
					EconomicTag: rule.tag,
					Rationale:   rule.rationale(pMajor),
				}
			}
		}
	case models.MinorDamage:
		// The original model pipeline approximates cosmetic severity as the
		// complement of the major-damage probability rather than using the
		// minor-damage component directly. Kept as-is; the full probability
		// vector is still reported alongside the verdict.
		minorSeverity := 100 - pMajor
		for _, rule := range minorDamageRules {
			if rule.matches(prediction.Confidence, minorSeverity) {
				return models.FitnessVerdict{
					Status:      rule.status,
					EconomicTag: rule.tag,
					Rationale:   rule.rationale(minorSeverity),
				}
			}
		}
	}

	return models.FitnessVerdict{
		Status:      models.TaxiReady,
		EconomicTag: models.PremiumReady,
		Rationale: []string{
			"Ideal condition for premium taxi service",
			fmt.Sprintf("Probability of serious damage: %.1f%%", pMajor),
			"Suitable for VIP and business clients",
			"Benchmark vehicle for the fleet",
		},
	}
}

// dirtAdvisories is the second, independent rule layer: it annotates the
// verdict but never alters status or economic tag, even at maximal dirt
// score. Cleanliness is advisory, not safety-determining.
func dirtAdvisories(dirt models.DirtAssessment) []string {
	switch {
	case dirt.Score > criticalDirtScore:
		return []string{
			fmt.Sprintf("Critical cleanliness: dirt index %.1f/10", dirt.Score),
			"Heavy soiling may conceal damage under the dirt layer",
			"Professional wash required, then a repeat inspection",
		}
	case dirt.Score > elevatedDirtScore:
		return []string{
			fmt.Sprintf("Below-standard cleanliness: dirt index %.1f/10", dirt.Score),
			"Dirt reduces the accuracy of visual damage assessment",
			"Full wash recommended before client-facing service",
		}
	}
	return nil
}
