package model

// KPIResult is the aggregated funnel metrics tree. Each sub-metric is
// optional: a nil map or pointer means the required column did not survive
// schema reconciliation, and the key is omitted from the JSON output
// instead of carrying zeros. Key names follow the reporting contract
// consumed by the frontend and the insight prompt.
type KPIResult struct {
	StatusNumerico       map[int]int                 `json:"status_numerico,omitempty"`
	DistribuicaoStatus   map[string]float64          `json:"distribuicao_status,omitempty"`
	VolumeOrigemRecorte  map[string]int              `json:"volume_origem_recorte,omitempty"`
	EficienciaOrigem     map[string]SourceEfficiency `json:"eficiencia_origem,omitempty"`
	ConversaoStatus12    *float64                    `json:"conversao_status_1_2,omitempty"`
	ConversaoStatus23    *float64                    `json:"conversao_status_2_3,omitempty"`
	ConversaoResponsavel map[string]OwnerConversion  `json:"conversao_responsavel,omitempty"`
	Tempos               map[string]TimeStats        `json:"tempos,omitempty"`
}

// SourceEfficiency compares the number of leads from a source present in
// this dataset slice against the source's known total volume.
type SourceEfficiency struct {
	NoRecorte  int     `json:"no_recorte"`
	Percentual float64 `json:"percentual"`
}

// OwnerConversion holds per-owner funnel conversion rates, computed against
// the owner's own lead count.
type OwnerConversion struct {
	Total    int     `json:"total"`
	Status12 float64 `json:"status_1_2"`
	Status23 float64 `json:"status_2_3"`
}

// TimeStats aggregates a per-record day-delta series.
type TimeStats struct {
	Media   float64 `json:"media"`
	Mediana float64 `json:"mediana"`
}

// AnalysisResult is the full output of one pipeline run: the KPI tree, the
// generated insight text (or a degradation message), and the cleaned
// dataset as records.
type AnalysisResult struct {
	RunID    string              `json:"run_id"`
	KPIs     *KPIResult          `json:"kpis"`
	Insights string              `json:"insights"`
	Data     []map[string]string `json:"data"`
}
