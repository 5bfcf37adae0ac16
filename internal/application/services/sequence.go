package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
)

// The upstream refresh embeds three mini-formats inside node attributes.
// Each parser tolerates malformed input by returning an empty result; a bad
// row must never abort the query it belongs to.

// dosingPattern matches one drug entry of the average_spacing text, e.g.
// "<b>ADA</b><br>On average given 6.0 times with a 2.0 weekly interval
// (12.0 weeks total treatment length)". A field may repeat for each drug of
// a multi-drug pathway.
var dosingPattern = regexp.MustCompile(`<b>(.+?)</b><br>On average given ([0-9.]+) times with a ([0-9.]+) weekly interval \(([0-9.]+) weeks total treatment length\)`)

// DosingInterval is one decoded drug entry of a dosing description.
type DosingInterval struct {
	Drug           string
	DoseCount      float64
	WeeklyInterval float64
	TotalWeeks     float64
}

// ParseDosingText extracts every well-formed drug entry from a dosing
// description. Unmatched text is silently skipped.
func ParseDosingText(text string) []DosingInterval {
	matches := dosingPattern.FindAllStringSubmatch(text, -1)
	intervals := make([]DosingInterval, 0, len(matches))
	for _, m := range matches {
		doseCount, err1 := strconv.ParseFloat(m[2], 64)
		weeklyInterval, err2 := strconv.ParseFloat(m[3], 64)
		totalWeeks, err3 := strconv.ParseFloat(m[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		intervals = append(intervals, DosingInterval{
			Drug:           m[1],
			DoseCount:      doseCount,
			WeeklyInterval: weeklyInterval,
			TotalWeeks:     totalWeeks,
		})
	}
	return intervals
}

// nullToken matches the bare null spellings the upstream refresh leaves in
// numeric array literals.
var nullToken = regexp.MustCompile(`(?i)\b(null|nan|none)\b`)

// ParseNumericArray decodes a textual numeric array whose null sentinel may
// appear as a bare token. Decoding failures yield an empty result.
func ParseNumericArray(text string) []*float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	normalized := nullToken.ReplaceAllString(text, "null")

	var values []*float64
	if err := json.Unmarshal([]byte(normalized), &values); err != nil {
		return nil
	}
	return values
}

// ParseAdministered returns position 0 of the average_administered array:
// the average administered-dose count for the node's drug.
func ParseAdministered(text string) (float64, bool) {
	values := ParseNumericArray(text)
	if len(values) == 0 || values[0] == nil {
		return 0, false
	}
	return *values[0], true
}

// SplitSequence decodes the pipe-delimited drug_sequence column.
func SplitSequence(sequence string) []string {
	if sequence == "" {
		return nil
	}
	parts := strings.Split(sequence, entities.SequenceSeparator)
	drugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			drugs = append(drugs, p)
		}
	}
	return drugs
}
