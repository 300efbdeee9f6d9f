package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automind/leadscope/internal/match"
	"github.com/automind/leadscope/internal/model"
)

func TestReconcile_KnownHeaderVariants(t *testing.T) {
	in := model.NewTable(
		[]string{"Origem", "STATUS", "Data_Status1", "data_status2", "DATA_STATUS3"},
		[][]string{{"indicacao", "agendado", "2024-01-01", "", ""}},
	)

	out := Reconcile(in)

	assert.Equal(t, []string{"origem", "status", "data_status1", "data_status2", "data_status3"}, out.Columns)
}

func TestReconcile_OwnerSubstring(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"plain", "responsavel"},
		{"accented", "Responsável"},
		{"mangled encoding keeps stem", "ResponsÃ¡vel pelo lead"},
		{"prefixed", "nome_responsavel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.NewTable([]string{tt.header}, nil)
			out := Reconcile(in)
			assert.Equal(t, []string{ColOwner}, out.Columns)
		})
	}
}

func TestReconcile_OwnerFirstMatchOnly(t *testing.T) {
	in := model.NewTable(
		[]string{"Responsável", "responsavel_backup"},
		nil,
	)

	out := Reconcile(in)

	assert.Equal(t, ColOwner, out.Columns[0])
	assert.Equal(t, "responsavel_backup", out.Columns[1])
}

func TestReconcile_UnmatchedColumnsPassThrough(t *testing.T) {
	in := model.NewTable(
		[]string{"Empresa", "Telefone", "Origem"},
		nil,
	)

	out := Reconcile(in)

	assert.Equal(t, []string{"Empresa", "Telefone", "origem"}, out.Columns)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	in := model.NewTable([]string{"Origem"}, [][]string{{"Feira"}})

	out := Reconcile(in)
	out.Rows[0][0] = "changed"

	assert.Equal(t, "Origem", in.Columns[0])
	assert.Equal(t, "Feira", in.Rows[0][0])
}

func TestNormalize_FoldsAllCells(t *testing.T) {
	table := model.NewTable(
		[]string{"origem", "observacao"},
		[][]string{{"  Indicação ", "SEM   Retorno"}},
	)

	Normalize(table, match.New(nil, 80))

	assert.Equal(t, "indicacao", table.Get(0, "origem"))
	assert.Equal(t, "sem retorno", table.Get(0, "observacao"))
}

func TestNormalize_AddsCanonicalStatusColumn(t *testing.T) {
	table := model.NewTable(
		[]string{"status"},
		[][]string{
			{"Agendadoo"},
			{"xyz123"},
			{""},
		},
	)
	m := match.New([]string{"agendado", "recusado"}, 80)

	Normalize(table, m)

	assert.True(t, table.HasColumn(ColStatusCanonical))
	assert.Equal(t, "agendado", table.Get(0, ColStatusCanonical))
	// Low-confidence values retain the normalized raw text.
	assert.Equal(t, "xyz123", table.Get(1, ColStatusCanonical))
	assert.Equal(t, "", table.Get(2, ColStatusCanonical))
}

func TestNormalize_NoStatusColumn(t *testing.T) {
	table := model.NewTable([]string{"origem"}, [][]string{{"feira"}})

	Normalize(table, match.New(nil, 80))

	assert.False(t, table.HasColumn(ColStatusCanonical))
}

func TestNormalize_TitleCasesOwner(t *testing.T) {
	table := model.NewTable(
		[]string{ColOwner},
		[][]string{{"  ANA   SOUZA "}},
	)

	Normalize(table, match.New(nil, 80))

	assert.Equal(t, "Ana Souza", table.Get(0, ColOwner))
}
