package funnel

import (
	"sort"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/schema"
)

// Metric names for the tempos block.
const (
	MetricTempo12    = "tempo_1_2"
	MetricTempo23    = "tempo_2_3"
	MetricTempoTotal = "tempo_total"
)

// timePair binds a metric name to its two endpoint columns.
type timePair struct {
	name     string
	from, to string
}

var timePairs = []timePair{
	{MetricTempo12, schema.ColStageDate1, schema.ColStageDate2},
	{MetricTempo23, schema.ColStageDate2, schema.ColStageDate3},
	{MetricTempoTotal, schema.ColStageDate1, schema.ColStageDate3},
}

// TimeMetrics computes mean and median day-deltas between consecutive
// stage dates (and end-to-end 1→3). A record contributes to a metric only
// when both endpoints parse; incomplete records are skipped per metric,
// not dropped wholesale. Negative deltas are kept — an earlier stage dated
// after a later one is a data-quality signal the caller may want to see.
// Metrics whose columns are absent, or with no complete record, are left
// out of the result.
func TimeMetrics(t *model.Table) map[string]model.TimeStats {
	metrics := make(map[string]model.TimeStats)

	for _, pair := range timePairs {
		if !t.HasColumn(pair.from) || !t.HasColumn(pair.to) {
			continue
		}

		var deltas []float64
		for i := range t.Rows {
			from, okFrom := ParseDate(t.Get(i, pair.from))
			to, okTo := ParseDate(t.Get(i, pair.to))
			if !okFrom || !okTo {
				continue
			}
			deltas = append(deltas, to.Sub(from).Hours()/24)
		}
		if len(deltas) == 0 {
			continue
		}

		metrics[pair.name] = model.TimeStats{
			Media:   mean(deltas),
			Mediana: median(deltas),
		}
	}

	return metrics
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
