// Package dirt derives a 0-10 cleanliness index from six image statistics.
// Dirt flattens a photo: fewer distinct colors, lower contrast and
// saturation, washed-out edges, darker pixels, more mud-colored regions.
// Each symptom contributes a fixed weight to the index.
package dirt

import (
	"math"

	"taxifit/models"
	"taxifit/vision"
)

// thresholdRule adds fullWeight when the metric crosses the full threshold
// and halfWeight when it only crosses the half threshold. Rules with
// dirtyAbove=false treat low values as dirty, dirtyAbove=true treats high
// values as dirty (the brown-pixel mask).
type thresholdRule struct {
	name       string
	value      func(models.ImageMetrics) float64
	dirtyAbove bool
	full       float64
	half       float64
	fullWeight float64
	halfWeight float64
}

var scoreRules = []thresholdRule{
	{
		name:       "color_diversity",
		value:      func(m models.ImageMetrics) float64 { return m.ColorDiversity },
		full:       80, half: 120,
		fullWeight: 2, halfWeight: 1,
	},
	{
		name:       "contrast",
		value:      func(m models.ImageMetrics) float64 { return m.Contrast },
		full:       25, half: 40,
		fullWeight: 2, halfWeight: 1,
	},
	{
		name:       "saturation",
		value:      func(m models.ImageMetrics) float64 { return m.Saturation },
		full:       60, half: 100,
		fullWeight: 1.5, halfWeight: 0.5,
	},
	{
		name:       "brown_ratio",
		value:      func(m models.ImageMetrics) float64 { return m.BrownRatio },
		dirtyAbove: true,
		full:       0.15, half: 0.08,
		fullWeight: 2, halfWeight: 1,
	},
	{
		name:       "edge_intensity",
		value:      func(m models.ImageMetrics) float64 { return m.EdgeIntensity },
		full:       15, half: 25,
		fullWeight: 1.5, halfWeight: 0.5,
	},
	{
		name:       "brightness",
		value:      func(m models.ImageMetrics) float64 { return m.Brightness },
		full:       90, half: 110,
		fullWeight: 1, halfWeight: 0.5,
	},
}

// labelBuckets partition [0,10] by closed lower bound, checked in descending
// order so the first match wins.
var labelBuckets = []struct {
	min   float64
	label models.DirtLabel
}{
	{6, models.VeryDirty},
	{4, models.Dirty},
	{2, models.SlightlyDirty},
	{1, models.FairlyClean},
	{0, models.VeryClean},
}

// Compute measures the frame and returns the full dirt assessment.
func Compute(f *vision.Frame) (models.DirtAssessment, error) {
	metrics := measure(f)
	if err := validateMetrics(metrics); err != nil {
		return models.DirtAssessment{}, err
	}
	score := scoreMetrics(metrics)
	return models.DirtAssessment{
		Metrics: metrics,
		Score:   score,
		Label:   labelFor(score),
	}, nil
}

func scoreMetrics(m models.ImageMetrics) float64 {
	score := 0.0
	for _, rule := range scoreRules {
		v := rule.value(m)
		switch {
		case rule.dirtyAbove && v > rule.full:
			score += rule.fullWeight
		case rule.dirtyAbove && v > rule.half:
			score += rule.halfWeight
		case !rule.dirtyAbove && v < rule.full:
			score += rule.fullWeight
		case !rule.dirtyAbove && v < rule.half:
			score += rule.halfWeight
		}
	}
	return score
}

func labelFor(score float64) models.DirtLabel {
	for _, b := range labelBuckets {
		if score >= b.min {
			return b.label
		}
	}
	return models.VeryClean
}

func validateMetrics(m models.ImageMetrics) error {
	for _, rule := range scoreRules {
		v := rule.value(m)
		if math.IsNaN(v) || v < 0 {
			return &models.InvalidMetricError{Metric: rule.name, Value: v}
		}
	}
	return nil
}

func measure(f *vision.Frame) models.ImageMetrics {
	gray := f.Grayscale()
	return models.ImageMetrics{
		ColorDiversity: colorDiversity(f),
		Contrast:       stddev(gray),
		Saturation:     meanBytes(f.SaturationChannel()),
		BrownRatio:     brownRatio(f),
		EdgeIntensity:  edgeIntensity(gray, f.Width, f.Height),
		Brightness:     meanBytes(f.Pix),
	}
}

// colorDiversity is the mean count of distinct values per RGB channel.
func colorDiversity(f *vision.Frame) float64 {
	var seen [3][256]bool
	for i := 0; i < len(f.Pix); i += 3 {
		seen[0][f.Pix[i]] = true
		seen[1][f.Pix[i+1]] = true
		seen[2][f.Pix[i+2]] = true
	}
	total := 0
	for c := 0; c < 3; c++ {
		for v := 0; v < 256; v++ {
			if seen[c][v] {
				total++
			}
		}
	}
	return float64(total) / 3
}

// brownRatio is the fraction of pixels inside the mud/dust color mask:
// red and green both dominate blue while staying muted.
func brownRatio(f *vision.Frame) float64 {
	count := 0
	for i := 0; i < len(f.Pix); i += 3 {
		r, g, b := f.Pix[i], f.Pix[i+1], f.Pix[i+2]
		if r > b && g > b && r < 150 && g < 120 {
			count++
		}
	}
	return float64(count) / float64(f.Pixels())
}

// edgeIntensity is the mean response of a 3x3 edge kernel (8-center,
// -1 neighbors) over the grayscale image, with edge-replicated borders and
// output clamped to [0,255].
func edgeIntensity(gray []uint8, w, h int) float64 {
	if w == 0 || h == 0 {
		return 0
	}
	clampAt := func(x, y int) int {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return int(gray[y*w+x])
	}
	sum := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 8 * clampAt(x, y)
			v -= clampAt(x-1, y-1) + clampAt(x, y-1) + clampAt(x+1, y-1)
			v -= clampAt(x-1, y) + clampAt(x+1, y)
			v -= clampAt(x-1, y+1) + clampAt(x, y+1) + clampAt(x+1, y+1)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			sum += v
		}
	}
	return float64(sum) / float64(w*h)
}

func meanBytes(vals []uint8) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += int(v)
	}
	return float64(sum) / float64(len(vals))
}

func stddev(vals []uint8) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := meanBytes(vals)
	sum := 0.0
	for _, v := range vals {
		d := float64(v) - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}
