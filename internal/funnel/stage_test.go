package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automind/leadscope/internal/model"
	"github.com/automind/leadscope/internal/schema"
)

func TestStageNumber(t *testing.T) {
	tests := []struct {
		name       string
		d1, d2, d3 string
		expected   int
	}{
		{"no dates", "", "", "", 0},
		{"only stage 1", "2024-01-05", "", "", 1},
		{"stages 1 and 2", "2024-01-05", "2024-01-10", "", 2},
		{"all stages", "2024-01-05", "2024-01-10", "2024-02-01", 3},
		{"later date wins over missing earlier", "2024-01-05", "", "2024-02-01", 3},
		{"stage 2 without stage 1", "", "2024-01-10", "", 2},
		{"blank-padded values ignored", "   ", "  ", " ", 0},
		{"unparseable but recorded still counts", "", "", "em breve", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StageNumber(tt.d1, tt.d2, tt.d3))
		})
	}
}

func TestDeriveStages(t *testing.T) {
	table := model.NewTable(
		[]string{schema.ColStageDate1, schema.ColStageDate2, schema.ColStageDate3},
		[][]string{
			{"2024-01-05", "", "2024-02-01"},
			{"2024-01-05", "", ""},
			{"", "", ""},
		},
	)

	DeriveStages(table)

	assert.True(t, table.HasColumn(schema.ColStageNumber))
	assert.Equal(t, "3", table.Get(0, schema.ColStageNumber))
	assert.Equal(t, "1", table.Get(1, schema.ColStageNumber))
	assert.Equal(t, "0", table.Get(2, schema.ColStageNumber))
}

func TestDeriveStages_NoDateColumns(t *testing.T) {
	table := model.NewTable(
		[]string{"origem"},
		[][]string{{"feira"}, {"indicacao"}},
	)

	DeriveStages(table)

	assert.Equal(t, "0", table.Get(0, schema.ColStageNumber))
	assert.Equal(t, "0", table.Get(1, schema.ColStageNumber))
}
