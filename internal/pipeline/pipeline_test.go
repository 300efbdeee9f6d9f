package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automind/leadscope/internal/config"
	"github.com/automind/leadscope/internal/insight"
	"github.com/automind/leadscope/internal/model"
)

// fakeGenerator records its inputs and returns a canned narrative or error.
type fakeGenerator struct {
	text      string
	err       error
	gotKPIs   *model.KPIResult
	gotSample string
}

func (f *fakeGenerator) Generate(_ context.Context, kpis *model.KPIResult, sampleCSV string) (string, error) {
	f.gotKPIs = kpis
	f.gotSample = sampleCSV
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Funnel: config.FunnelConfig{
			FuzzyThreshold: 80,
			StatusVocabulary: []string{
				"agendado",
				"proposta enviada",
				"recusado",
			},
			SourceTotals: map[string]int{"Feira": 4},
		},
	}
}

func leadTable() *model.Table {
	return model.NewTable(
		[]string{"Origem", "Status", "Responsável", "Data_Status1", "Data_Status2", "Data_Status3"},
		[][]string{
			{"Feira", "Agendadoo", "ana", "05/01/2024", "10/01/2024", ""},
			{"Feira", "Proposta Enviada", "ana", "05/01/2024", "15/01/2024", "01/02/2024"},
			{"Indicação", "sumiu", "bruno", "", "", ""},
		},
	)
}

func TestRun_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{text: "análise pronta"}
	p := New(testConfig(), gen)

	result, err := p.Run(context.Background(), leadTable())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "análise pronta", result.Insights)

	kpis := result.KPIs
	require.NotNil(t, kpis)
	assert.Equal(t, map[int]int{0: 1, 2: 1, 3: 1}, kpis.StatusNumerico)

	// Owner "Ana" has both leads at stage >= 2; "Bruno" has one at 0.
	require.Contains(t, kpis.ConversaoResponsavel, "Ana")
	require.Contains(t, kpis.ConversaoResponsavel, "Bruno")
	assert.Equal(t, 100.0, kpis.ConversaoResponsavel["Ana"].Status12)
	assert.Equal(t, 0.0, kpis.ConversaoResponsavel["Bruno"].Status12)

	// Fuzzy-matched and passthrough statuses both appear in the
	// distribution.
	assert.Contains(t, kpis.DistribuicaoStatus, "agendado")
	assert.Contains(t, kpis.DistribuicaoStatus, "sumiu")
}

func TestRun_CleanedDataset(t *testing.T) {
	p := New(testConfig(), &fakeGenerator{text: "ok"})

	result, err := p.Run(context.Background(), leadTable())
	require.NoError(t, err)

	require.Len(t, result.Data, 3)

	first := result.Data[0]
	assert.Equal(t, "feira", first["origem"])
	assert.Equal(t, "agendado", first["status_normalizado"])
	assert.Equal(t, "Ana", first["responsavel"])
	assert.Equal(t, "2024-01-05", first["data_status1"])
	assert.Equal(t, "2", first["status_numerico"])

	third := result.Data[2]
	assert.Equal(t, "sumiu", third["status_normalizado"])
	assert.Equal(t, "", third["data_status1"])
	assert.Equal(t, "0", third["status_numerico"])
}

func TestRun_InputNotMutated(t *testing.T) {
	input := leadTable()
	p := New(testConfig(), &fakeGenerator{text: "ok"})

	_, err := p.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "Origem", input.Columns[0])
	assert.Equal(t, "Feira", input.Rows[0][0])
	assert.False(t, input.HasColumn("status_numerico"))
}

func TestRun_GenerationFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{err: eris.New("api indisponível")}
	p := New(testConfig(), gen)

	result, err := p.Run(context.Background(), leadTable())
	require.NoError(t, err)

	// KPIs survive; the failure becomes part of the insight text.
	assert.NotNil(t, result.KPIs.StatusNumerico)
	assert.Contains(t, result.Insights, "Erro ao gerar insights")
	assert.Contains(t, result.Insights, "api indisponível")
}

func TestRun_UnavailableBackend(t *testing.T) {
	p := New(testConfig(), insight.New(nil, insight.Options{}))

	result, err := p.Run(context.Background(), leadTable())
	require.NoError(t, err)

	assert.Equal(t, insight.UnavailableMessage, result.Insights)
	assert.NotNil(t, result.KPIs.StatusNumerico)
}

func TestRun_SampleIsBounded(t *testing.T) {
	columns := []string{"Status"}
	rows := make([][]string, 80)
	for i := range rows {
		rows[i] = []string{"agendado"}
	}

	gen := &fakeGenerator{text: "ok"}
	p := New(testConfig(), gen)

	_, err := p.Run(context.Background(), model.NewTable(columns, rows))
	require.NoError(t, err)

	// Header + at most SampleRows data lines.
	lines := strings.Split(strings.TrimSpace(gen.gotSample), "\n")
	assert.LessOrEqual(t, len(lines), insight.SampleRows+1)
	require.NotNil(t, gen.gotKPIs)
}

func TestRun_NilInput(t *testing.T) {
	p := New(testConfig(), &fakeGenerator{text: "ok"})

	_, err := p.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRun_EmptyTable(t *testing.T) {
	p := New(testConfig(), &fakeGenerator{text: "ok"})

	result, err := p.Run(context.Background(), model.NewTable([]string{"Status"}, nil))
	require.NoError(t, err)

	require.NotNil(t, result.KPIs.ConversaoStatus12)
	assert.Equal(t, 0.0, *result.KPIs.ConversaoStatus12)
	assert.Empty(t, result.Data)
}
