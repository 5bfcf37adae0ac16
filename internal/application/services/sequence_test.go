package services

import (
	"testing"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDosingText_SingleEntry(t *testing.T) {
	text := "<b>ADA</b><br>On average given 6.0 times with a 2.0 weekly interval (12.0 weeks total treatment length)"

	intervals := ParseDosingText(text)
	require.Len(t, intervals, 1)

	assert.Equal(t, "ADA", intervals[0].Drug)
	assert.Equal(t, 6.0, intervals[0].DoseCount)
	assert.Equal(t, 2.0, intervals[0].WeeklyInterval)
	assert.Equal(t, 12.0, intervals[0].TotalWeeks)
}

func TestParseDosingText_MultipleEntries(t *testing.T) {
	text := "<b>ADA</b><br>On average given 6.0 times with a 2.0 weekly interval (12.0 weeks total treatment length)" +
		"<b>ETA</b><br>On average given 12.0 times with a 1.0 weekly interval (12.0 weeks total treatment length)"

	intervals := ParseDosingText(text)
	require.Len(t, intervals, 2)
	assert.Equal(t, "ETA", intervals[1].Drug)
	assert.Equal(t, 1.0, intervals[1].WeeklyInterval)
}

func TestParseDosingText_MalformedIsSkipped(t *testing.T) {
	assert.Empty(t, ParseDosingText("no dosing information recorded"))
	assert.Empty(t, ParseDosingText(""))
	// Partial template does not match
	assert.Empty(t, ParseDosingText("<b>ADA</b><br>On average given 6.0 times"))
}

func TestParseNumericArray_WithBareNull(t *testing.T) {
	values := ParseNumericArray("[6.2, NULL, 3.0]")
	require.Len(t, values, 3)

	assert.Equal(t, 6.2, *values[0])
	assert.Nil(t, values[1])
	assert.Equal(t, 3.0, *values[2])
}

func TestParseNumericArray_NanAndNone(t *testing.T) {
	values := ParseNumericArray("[nan, None, 1.5]")
	require.Len(t, values, 3)
	assert.Nil(t, values[0])
	assert.Nil(t, values[1])
}

func TestParseNumericArray_Malformed(t *testing.T) {
	assert.Empty(t, ParseNumericArray("not an array"))
	assert.Empty(t, ParseNumericArray(""))
}

func TestParseAdministered(t *testing.T) {
	v, ok := ParseAdministered("[6.2, null]")
	assert.True(t, ok)
	assert.Equal(t, 6.2, v)

	_, ok = ParseAdministered("[null, 2.0]")
	assert.False(t, ok)

	_, ok = ParseAdministered("")
	assert.False(t, ok)
}

func TestDrugPath_FromMaterializedPath(t *testing.T) {
	node := &entities.PathwayNode{
		IDs:   "ROOT - TRUST1 - RHEUM - ADA - ETA",
		Level: 4,
	}
	assert.Equal(t, []string{"ADA", "ETA"}, node.DrugPath())
	assert.Equal(t, 2, node.Depth())
}

func TestDrugPath_BelowDrugLevelIsEmpty(t *testing.T) {
	node := &entities.PathwayNode{IDs: "ROOT - TRUST1 - RHEUM", Level: 2}
	assert.Empty(t, node.DrugPath())
	assert.Equal(t, 0, node.Depth())
}

func TestSplitSequence(t *testing.T) {
	assert.Equal(t, []string{"ADA", "ETA"}, SplitSequence("ADA|ETA"))
	assert.Empty(t, SplitSequence(""))
	assert.Equal(t, []string{"ADA"}, SplitSequence("ADA"))
}
