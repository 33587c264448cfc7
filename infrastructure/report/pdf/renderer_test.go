package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/domain"
)

var generatedAt = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

func sampleDocument() report.Document {
	return report.Document{
		Title:       "Relatório Gerencial - Rede de Franquias",
		GeneratedAt: generatedAt,
		Report: report.Build(domain.MetricsSnapshot{
			TotalSuppliers:         12,
			TotalStores:            800,
			OpenTickets:            7,
			ResolvedTickets:        21,
			CompletedInstallations: 560,
			NonCompletedStores:     240,
		}),
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, report.FormatPDF, r.Format())
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestRenderer_Render(t *testing.T) {
	data, err := NewRenderer(WithCompression(false)).Render(sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "Resumo Geral")
	assert.Contains(t, string(data), "(800)")
	assert.Contains(t, string(data), "(70%)")
	assert.Contains(t, string(data), "de 1)", "footer page count")
}

func TestRenderer_AccentsUseCP1252(t *testing.T) {
	data, err := NewRenderer(WithCompression(false)).Render(sampleDocument())
	require.NoError(t, err)

	// "Análise" with á as the single cp1252 byte 0xE1.
	assert.True(t, bytes.Contains(data, []byte("An\xe1lise de Desempenho")))
	assert.False(t, bytes.Contains(data, []byte("Análise")), "utf-8 must not leak into the page stream")
}

func TestRenderer_Deterministic(t *testing.T) {
	for _, compress := range []bool{true, false} {
		r := NewRenderer(WithCompression(compress))

		first, err := r.Render(sampleDocument())
		require.NoError(t, err)
		second, err := r.Render(sampleDocument())
		require.NoError(t, err)

		assert.Equal(t, first, second, "compress=%v", compress)
	}
}

func TestRenderer_CompressionShrinksOutput(t *testing.T) {
	plain, err := NewRenderer(WithCompression(false)).Render(sampleDocument())
	require.NoError(t, err)
	packed, err := NewRenderer().Render(sampleDocument())
	require.NoError(t, err)

	assert.Less(t, len(packed), len(plain))
}

func TestRenderer_EmptySnapshot(t *testing.T) {
	doc := sampleDocument()
	doc.Report = report.Build(domain.MetricsSnapshot{})

	data, err := NewRenderer(WithCompression(false)).Render(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(0%)")
}
