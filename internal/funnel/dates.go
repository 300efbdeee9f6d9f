package funnel

import (
	"strings"
	"time"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/schema"
)

// dateLayouts are tried in order. Exports arrive as ISO strings, Excel
// display formats, or Brazilian day-first dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"01-02-06",
	"2006/01/02",
}

// ParseDate parses a cell value as a calendar date. The second return is
// false for blank or unparseable values; unparseable dates are treated as
// missing everywhere, never as errors.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CanonicalizeDates rewrites the stage-date columns in place for export:
// parseable values become YYYY-MM-DD strings, everything else becomes
// empty. Must run after stage derivation, which counts unparseable
// non-blank values as recorded.
func CanonicalizeDates(t *model.Table) {
	for _, col := range schema.StageDateColumns {
		idx := t.Index(col)
		if idx < 0 {
			continue
		}
		for i := range t.Rows {
			if d, ok := ParseDate(t.Rows[i][idx]); ok {
				t.Rows[i][idx] = d.Format("2006-01-02")
			} else {
				t.Rows[i][idx] = ""
			}
		}
	}
}
