package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/domain"
)

var snapshot = domain.MetricsSnapshot{
	TotalSuppliers:         12,
	TotalStores:            800,
	OpenTickets:            7,
	ResolvedTickets:        21,
	CompletedInstallations: 560,
	NonCompletedStores:     240,
}

func sampleDocument() report.Document {
	return report.Document{
		Title:       "Relatório Gerencial - Rede de Franquias",
		GeneratedAt: time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC),
		Report:      report.Build(snapshot),
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRenderer_Metadata(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, report.FormatXLSX, r.Format())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", r.ContentType())
}

func TestRenderer_Sheets(t *testing.T) {
	data, err := NewRenderer().Render(sampleDocument())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{SummarySheet, PerformanceSheet}, f.GetSheetList())

	merged, err := f.GetMergeCells(SummarySheet)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "C1", merged[0].GetEndAxis())

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Relatório Gerencial - Rede de Franquias", props.Title)
	assert.Equal(t, "2024-06-10T14:00:00Z", props.Created)
}

func TestRenderer_SummaryRows(t *testing.T) {
	data, err := NewRenderer().Render(sampleDocument())
	require.NoError(t, err)

	rows, err := open(t, data).GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, headerRow+6)

	assert.Equal(t, []string{"Indicador", "Valor", "Observação"}, rows[headerRow-1])
	assert.Equal(t, []string{"Total de Lojas", "800", "Lojas na rede"}, rows[headerRow+1])
	assert.Equal(t, []string{"Chamados Abertos", "7", "Alto volume"}, rows[headerRow+2])
}

func TestRenderer_PerformanceRows(t *testing.T) {
	data, err := NewRenderer().Render(sampleDocument())
	require.NoError(t, err)

	rows, err := open(t, data).GetRows(PerformanceSheet)
	require.NoError(t, err)

	want := [][]string{
		{"Taxa de Conclusão", "70%", "Bom desempenho"},
		{"Taxa de Resolução", "75%", "Precisa de atenção"},
		{"Volume de Chamados", "7", "Alto volume"},
	}
	if diff := cmp.Diff(want, rows[headerRow:]); diff != "" {
		t.Errorf("performance rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_SameContentTwice(t *testing.T) {
	r := NewRenderer()
	first, err := r.Render(sampleDocument())
	require.NoError(t, err)
	second, err := r.Render(sampleDocument())
	require.NoError(t, err)

	for _, sheet := range []string{SummarySheet, PerformanceSheet} {
		a, err := open(t, first).GetRows(sheet)
		require.NoError(t, err)
		b, err := open(t, second).GetRows(sheet)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("%s differs between renders:\n%s", sheet, diff)
		}
	}
}
