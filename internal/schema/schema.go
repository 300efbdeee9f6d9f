// Package schema reconciles arbitrary input column headers onto the
// canonical lead schema and runs the text-normalization pass over the
// table.
package schema

import (
	"strings"

	"go.uber.org/zap"

	"github.com/automind/leadscope/internal/match"
	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/normalize"
)

// Canonical column names. Downstream metrics key off these; any column the
// reconciler cannot map passes through untouched and the dependent metrics
// degrade instead of failing.
const (
	ColOrigin     = "origem"
	ColStatus     = "status"
	ColOwner      = "responsavel"
	ColStageDate1 = "data_status1"
	ColStageDate2 = "data_status2"
	ColStageDate3 = "data_status3"

	// Derived columns added by the normalization pass.
	ColStatusCanonical = "status_normalizado"
	ColStageNumber     = "status_numerico"
)

// StageDateColumns lists the stage-date columns in funnel order.
var StageDateColumns = []string{ColStageDate1, ColStageDate2, ColStageDate3}

// matchKind selects how a HeaderRule compares against a folded header.
type matchKind int

const (
	matchExact matchKind = iota
	matchSubstring
)

// HeaderRule maps one header pattern to a canonical column name. Patterns
// compare against the folded (accent-stripped, lower-cased) header text.
type HeaderRule struct {
	Kind      matchKind
	Pattern   string
	Canonical string
}

// headerRules is evaluated in order; each rule claims at most one column
// and each column is claimed at most once. Order matters: the owner rule
// is a substring scan ("Responsável" arrives with mangled encodings often
// enough that only the stem is reliable) and must not shadow exact rules.
var headerRules = []HeaderRule{
	{matchExact, "origem", ColOrigin},
	{matchExact, "status", ColStatus},
	{matchExact, "data_status1", ColStageDate1},
	{matchExact, "data_status2", ColStageDate2},
	{matchExact, "data_status3", ColStageDate3},
	{matchSubstring, "respons", ColOwner},
}

// Reconcile returns a copy of the table with recognized headers renamed to
// their canonical form. Unrecognized columns keep their original names.
func Reconcile(t *model.Table) *model.Table {
	out := t.Clone()

	claimed := make(map[int]bool, len(headerRules))
	for _, rule := range headerRules {
		for i, col := range out.Columns {
			if claimed[i] {
				continue
			}
			folded := normalize.Fold(col)
			ok := false
			switch rule.Kind {
			case matchExact:
				ok = folded == rule.Pattern
			case matchSubstring:
				ok = strings.Contains(folded, rule.Pattern)
			}
			if !ok {
				continue
			}
			if col != rule.Canonical {
				zap.L().Debug("schema: column reconciled",
					zap.String("from", col),
					zap.String("to", rule.Canonical),
				)
			}
			out.Columns[i] = rule.Canonical
			claimed[i] = true
			break
		}
	}

	return out
}

// Normalize runs the in-place value pass on a reconciled table: every cell
// is folded, the owner column is title-cased for display, and the
// status_normalizado column is added when a status column is present.
// Raw status values that the matcher cannot map confidently are kept
// as-is in status_normalizado.
func Normalize(t *model.Table, m *match.Matcher) {
	for i := range t.Rows {
		for j := range t.Rows[i] {
			t.Rows[i][j] = normalize.Fold(t.Rows[i][j])
		}
	}

	if statuses, ok := t.Column(ColStatus); ok {
		canonical := make([]string, len(statuses))
		matched := 0
		for i, s := range statuses {
			canonical[i] = m.Match(s)
			if canonical[i] != s && s != "" {
				matched++
			}
		}
		t.AddColumn(ColStatusCanonical, canonical)
		zap.L().Debug("schema: status labels matched",
			zap.Int("rows", len(statuses)),
			zap.Int("rewritten", matched),
		)
	}

	if idx := t.Index(ColOwner); idx >= 0 {
		for i := range t.Rows {
			t.Rows[i][idx] = normalize.TitleCase(t.Rows[i][idx])
		}
	}
}
