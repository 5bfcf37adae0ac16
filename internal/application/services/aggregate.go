package services

import "math"

// Aggregation rules for combining node rows across organizations:
// counts are summed, ratios are recomputed from summed numerator and
// denominator, and continuous per-entity metrics with no in-row
// denominator are combined as patient-count-weighted means. Averaging
// ratios directly would bias results toward organizations with small
// cohorts.

// weightedSample pairs a metric value with the patient count backing it.
type weightedSample struct {
	value  float64
	weight int
}

// weightedMean combines samples as sum(value*weight)/sum(weight), skipping
// rows with no patients or no metric value. The second return is false when
// nothing contributed.
func weightedMean(samples []weightedSample) (float64, bool) {
	var numerator float64
	var denominator int
	for _, s := range samples {
		if s.weight <= 0 || s.value == 0 {
			continue
		}
		numerator += s.value * float64(s.weight)
		denominator += s.weight
	}
	if denominator == 0 {
		return 0, false
	}
	return numerator / float64(denominator), true
}

// proportion computes part/total rounded to 4 decimal places.
func proportion(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round4(float64(part) / float64(total))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// metricValue unwraps an optional metric, treating absence as zero.
func metricValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
