package models

import (
	"time"
)

// Analysis is the persisted record of one completed fitness check.
type Analysis struct {
	ID               string             `json:"id" gorm:"primaryKey"`
	ImagePath        string             `json:"image_path"`
	OriginalName     string             `json:"original_name"`
	PredictedClass   DamageClass        `json:"predicted_class"`
	Confidence       float64            `json:"confidence"`
	Probabilities    map[string]float64 `json:"probabilities" gorm:"serializer:json"`
	MajorProbability float64            `json:"major_probability"`
	DirtScore        float64            `json:"dirt_score"`
	DirtLabel        DirtLabel          `json:"dirt_label"`
	Metrics          ImageMetrics       `json:"metrics" gorm:"serializer:json"`
	Status           FitnessStatus      `json:"status"`
	EconomicTag      EconomicTag        `json:"economic_tag"`
	Rationale        []string           `json:"rationale" gorm:"serializer:json"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
