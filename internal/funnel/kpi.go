package funnel

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/normalize"
	"github.com/automind/leadscope/internal/schema"
)

// ComputeKPIs aggregates the funnel metrics over a normalized table. Each
// sub-metric is gated on the presence of the column it needs and stays nil
// in the result when that column did not survive reconciliation; the table
// itself is never mutated. totals is the external catalog of known lead
// volumes per source and drives only the efficiency block.
func ComputeKPIs(t *model.Table, totals map[string]int) *model.KPIResult {
	kpis := &model.KPIResult{}

	if stages, ok := stageNumbers(t); ok {
		kpis.StatusNumerico = countStages(stages)
		conv12, conv23 := conversionRates(stages)
		kpis.ConversaoStatus12 = &conv12
		kpis.ConversaoStatus23 = &conv23

		if owners, ok := t.Column(schema.ColOwner); ok {
			kpis.ConversaoResponsavel = ownerConversions(owners, stages)
		}
	}

	if statuses, ok := t.Column(schema.ColStatusCanonical); ok {
		kpis.DistribuicaoStatus = distribution(statuses)
	}

	if origins, ok := t.Column(schema.ColOrigin); ok {
		kpis.VolumeOrigemRecorte = countValues(origins)
		if len(totals) > 0 {
			kpis.EficienciaOrigem = sourceEfficiency(origins, totals)
		}
	}

	if tempos := TimeMetrics(t); len(tempos) > 0 {
		kpis.Tempos = tempos
	}

	zap.L().Debug("funnel: kpis computed",
		zap.Int("rows", t.Len()),
		zap.Int("status_categories", len(kpis.DistribuicaoStatus)),
		zap.Int("origins", len(kpis.VolumeOrigemRecorte)),
		zap.Int("owners", len(kpis.ConversaoResponsavel)),
	)

	return kpis
}

// stageNumbers extracts the derived stage column as ints. Cells that fail
// to parse (foreign data in a colliding column name) count as stage 0.
func stageNumbers(t *model.Table) ([]int, bool) {
	raw, ok := t.Column(schema.ColStageNumber)
	if !ok {
		return nil, false
	}
	stages := make([]int, len(raw))
	for i, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 3 {
			n = 0
		}
		stages[i] = n
	}
	return stages, true
}

func countStages(stages []int) map[int]int {
	counts := make(map[int]int)
	for _, n := range stages {
		counts[n]++
	}
	return counts
}

// conversionRates returns the share of leads that reached stage 2 and
// stage 3, against the full slice. An empty slice yields zeros rather than
// a division fault.
func conversionRates(stages []int) (conv12, conv23 float64) {
	if len(stages) == 0 {
		return 0, 0
	}
	reached2, reached3 := 0, 0
	for _, n := range stages {
		if n >= 2 {
			reached2++
		}
		if n >= 3 {
			reached3++
		}
	}
	total := float64(len(stages))
	return round2(float64(reached2) / total * 100), round2(float64(reached3) / total * 100)
}

// ownerConversions computes the same conversion rates per owner, each
// against the owner's own subgroup size.
func ownerConversions(owners []string, stages []int) map[string]model.OwnerConversion {
	type tally struct{ total, reached2, reached3 int }
	tallies := make(map[string]*tally)

	for i, owner := range owners {
		tl := tallies[owner]
		if tl == nil {
			tl = &tally{}
			tallies[owner] = tl
		}
		tl.total++
		if stages[i] >= 2 {
			tl.reached2++
		}
		if stages[i] >= 3 {
			tl.reached3++
		}
	}

	conv := make(map[string]model.OwnerConversion, len(tallies))
	for owner, tl := range tallies {
		size := float64(tl.total)
		conv[owner] = model.OwnerConversion{
			Total:    tl.total,
			Status12: round2(float64(tl.reached2) / size * 100),
			Status23: round2(float64(tl.reached3) / size * 100),
		}
	}
	return conv
}

// distribution returns the percentage share per status category over all
// rows, unmatched raw labels included, so the shares always account for
// the whole slice.
func distribution(statuses []string) map[string]float64 {
	if len(statuses) == 0 {
		return map[string]float64{}
	}
	counts := countValues(statuses)
	total := float64(len(statuses))
	dist := make(map[string]float64, len(counts))
	for status, n := range counts {
		dist[status] = round2(float64(n) / total * 100)
	}
	return dist
}

// sourceEfficiency reports, per configured source, how many slice leads
// came from it and what share of the source's known total that is. The
// result is keyed by the configured source name verbatim; row matching
// compares folded forms. A source with a zero total reports 0%.
func sourceEfficiency(origins []string, totals map[string]int) map[string]model.SourceEfficiency {
	counts := countValues(origins)

	eff := make(map[string]model.SourceEfficiency, len(totals))
	for source, total := range totals {
		found := counts[normalize.Fold(source)]
		pct := 0.0
		if total > 0 {
			pct = round2(float64(found) / float64(total) * 100)
		}
		eff[source] = model.SourceEfficiency{NoRecorte: found, Percentual: pct}
	}
	return eff
}

func countValues(values []string) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
