package pipeline

import (
	"encoding/csv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/automind/leadscope/internal/model"
)

// sampleCSV renders a table as CSV text for the insight prompt.
func sampleCSV(t *model.Table) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(t.Columns); err != nil {
		return "", eris.Wrap(err, "pipeline: write sample header")
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return "", eris.Wrap(err, "pipeline: write sample row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "pipeline: flush sample")
	}

	return b.String(), nil
}
