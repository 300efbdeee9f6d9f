// Package funnel derives per-lead stage numbers and aggregates funnel KPIs
// from a normalized lead table.
package funnel

import (
	"strconv"
	"strings"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/schema"
)

// StageNumber derives the ordinal funnel stage from the three stage-date
// values. The latest stage with any recorded date wins, even when earlier
// dates are missing or malformed: a stage-3 date is authoritative evidence
// the lead got that far. A value counts as recorded when it is non-blank
// after trimming; parseability is deliberately not required here.
func StageNumber(d1, d2, d3 string) int {
	recorded := func(d string) bool { return strings.TrimSpace(d) != "" }

	switch {
	case recorded(d3):
		return 3
	case recorded(d2):
		return 2
	case recorded(d1):
		return 1
	default:
		return 0
	}
}

// DeriveStages appends the status_numerico column to the table. Missing
// stage-date columns count as unrecorded, so a table with no date columns
// gets all zeros rather than an error.
func DeriveStages(t *model.Table) {
	stages := make([]string, t.Len())
	for i := range t.Rows {
		n := StageNumber(
			t.Get(i, schema.ColStageDate1),
			t.Get(i, schema.ColStageDate2),
			t.Get(i, schema.ColStageDate3),
		)
		stages[i] = strconv.Itoa(n)
	}
	t.AddColumn(schema.ColStageNumber, stages)
}
