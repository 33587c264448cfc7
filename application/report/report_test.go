package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/franquianet/portal/domain"
)

func TestBuild(t *testing.T) {
	snapshot := domain.MetricsSnapshot{
		TotalSuppliers:         12,
		TotalStores:            800,
		OpenTickets:            7,
		ResolvedTickets:        21,
		CompletedInstallations: 560,
		NonCompletedStores:     240,
	}

	got := Build(snapshot)

	want := Report{
		Summary: []Row{
			{"Total de Fornecedores", "12", "Fornecedores cadastrados"},
			{"Total de Lojas", "800", "Lojas na rede"},
			{"Chamados Abertos", "7", NoteHighVolume},
			{"Chamados Resolvidos", "21", "Chamados finalizados"},
			{"Instalações Concluídas", "560", "Lojas com instalação finalizada"},
			{"Lojas Não Concluídas", "240", "Requer acompanhamento"},
		},
		Performance: []Row{
			{"Taxa de Conclusão", "70%", NoteGood},
			{"Taxa de Resolução", "75%", NoteNeedsAttention},
			{"Volume de Chamados", "7", NoteHighVolume},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Annotations(t *testing.T) {
	tests := []struct {
		name           string
		snapshot       domain.MetricsSnapshot
		wantCompletion string
		wantResolution string
		wantVolume     string
	}{
		{
			name:           "empty network",
			snapshot:       domain.MetricsSnapshot{},
			wantCompletion: NoteNeedsAttention,
			wantResolution: NoteNeedsAttention,
			wantVolume:     NoteNormal,
		},
		{
			name:           "completion just under threshold",
			snapshot:       domain.MetricsSnapshot{TotalStores: 1000, CompletedInstallations: 694},
			wantCompletion: NoteNeedsAttention,
			wantResolution: NoteNeedsAttention,
			wantVolume:     NoteNormal,
		},
		{
			name:           "completion rounds up to threshold",
			snapshot:       domain.MetricsSnapshot{TotalStores: 1000, CompletedInstallations: 695},
			wantCompletion: NoteGood,
			wantResolution: NoteNeedsAttention,
			wantVolume:     NoteNormal,
		},
		{
			name:           "five open tickets is still normal",
			snapshot:       domain.MetricsSnapshot{OpenTickets: 5, ResolvedTickets: 20},
			wantCompletion: NoteNeedsAttention,
			wantResolution: NoteGood,
			wantVolume:     NoteNormal,
		},
		{
			name:           "six open tickets is high volume",
			snapshot:       domain.MetricsSnapshot{OpenTickets: 6, ResolvedTickets: 24},
			wantCompletion: NoteNeedsAttention,
			wantResolution: NoteGood,
			wantVolume:     NoteHighVolume,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(tt.snapshot)
			assert.Equal(t, tt.wantCompletion, r.Performance[0].Annotation)
			assert.Equal(t, tt.wantResolution, r.Performance[1].Annotation)
			assert.Equal(t, tt.wantVolume, r.Performance[2].Annotation)
			assert.Equal(t, tt.wantVolume, r.Summary[2].Annotation)
		})
	}
}

func TestBuild_NoTicketsDoesNotDivideByZero(t *testing.T) {
	r := Build(domain.MetricsSnapshot{TotalStores: 3, NonCompletedStores: 3})

	assert.Equal(t, "0%", r.Performance[1].Value)
	assert.Equal(t, "0%", r.Performance[0].Value)
	assert.Equal(t, "Requer acompanhamento", r.Summary[5].Annotation)

	r = Build(domain.MetricsSnapshot{TotalStores: 3})
	assert.Equal(t, "Nenhuma pendência", r.Summary[5].Annotation)
}

func TestBuild_SummaryMatchesSummaryValues(t *testing.T) {
	s := domain.MetricsSnapshot{
		TotalSuppliers:         1,
		TotalStores:            2,
		OpenTickets:            3,
		ResolvedTickets:        4,
		CompletedInstallations: 5,
		NonCompletedStores:     6,
	}

	r := Build(s)
	values := make([]string, 0, len(r.Summary))
	for _, row := range r.Summary {
		values = append(values, row.Value)
	}

	assert.Equal(t, SummaryValues(s), values)
}

func TestFileName(t *testing.T) {
	at := time.UnixMilli(1718035200123)

	assert.Equal(t, "relatorio_gerencial_1718035200123.pdf", FileName(at, "pdf"))
	assert.Equal(t, "relatorio_gerencial_1718035200123.xlsx", FileName(at, "xlsx"))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat(" PDF ")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	f, ok = ParseFormat("xlsx")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, f)

	_, ok = ParseFormat("csv")
	assert.False(t, ok)
}
