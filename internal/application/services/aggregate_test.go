package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedMean(t *testing.T) {
	mean, ok := weightedMean([]weightedSample{
		{value: 10, weight: 100},
		{value: 20, weight: 50},
	})
	assert.True(t, ok)
	assert.InDelta(t, 13.3333, mean, 0.001)
}

func TestWeightedMean_SkipsZeroWeightAndZeroValue(t *testing.T) {
	mean, ok := weightedMean([]weightedSample{
		{value: 10, weight: 100},
		{value: 99, weight: 0}, // no patients
		{value: 0, weight: 50}, // missing metric
	})
	assert.True(t, ok)
	assert.Equal(t, 10.0, mean)
}

func TestWeightedMean_NothingContributed(t *testing.T) {
	_, ok := weightedMean([]weightedSample{{value: 0, weight: 10}})
	assert.False(t, ok)

	_, ok = weightedMean(nil)
	assert.False(t, ok)
}

func TestWeightedMean_Boundedness(t *testing.T) {
	samples := []weightedSample{
		{value: 3.5, weight: 12},
		{value: 9.1, weight: 7},
		{value: 6.0, weight: 31},
	}
	mean, ok := weightedMean(samples)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, mean, 3.5)
	assert.LessOrEqual(t, mean, 9.1)
}

func TestProportion(t *testing.T) {
	assert.Equal(t, 0.6667, proportion(100, 150))
	assert.Equal(t, 0.3333, proportion(50, 150))
	assert.Equal(t, 0.0, proportion(10, 0))
}

func TestProportion_SumLaw(t *testing.T) {
	parts := []int{100, 50, 27, 3}
	total := 180

	var sum float64
	for _, p := range parts {
		sum += proportion(p, total)
	}
	assert.InDelta(t, 1.0, sum, 1e-3)
}

func TestMetricValue(t *testing.T) {
	v := 4.2
	assert.Equal(t, 4.2, metricValue(&v))
	assert.Equal(t, 0.0, metricValue(nil))
}
