// Package report turns a metrics snapshot into the rows shared by every
// management report renderer.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/franquianet/portal/domain"
)

// Annotation thresholds.
const (
	GoodCompletionRate = 70
	GoodResolutionRate = 80
	HighTicketVolume   = 5
)

const (
	NoteGood           = "Bom desempenho"
	NoteNeedsAttention = "Precisa de atenção"
	NoteHighVolume     = "Alto volume"
	NoteNormal         = "Normal"
)

// Column headers shared by the renderers.
var Columns = [3]string{"Indicador", "Valor", "Observação"}

// Row is one line of a report table. Renderers must stay in sync with its
// fields.
type Row struct {
	Label      string
	Value      string
	Annotation string
}

// Cells returns the row in column order.
func (r Row) Cells() [3]string {
	return [3]string{r.Label, r.Value, r.Annotation}
}

// Report holds the two row-sets derived from a snapshot.
type Report struct {
	Summary     []Row
	Performance []Row
}

// Document is everything a renderer needs to produce an artifact.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Report      Report
}

// Build maps a snapshot to its summary and performance rows. It has no error
// conditions; the snapshot is expected to be validated.
func Build(s domain.MetricsSnapshot) Report {
	return Report{
		Summary: []Row{
			{Label: "Total de Fornecedores", Value: itoa(s.TotalSuppliers), Annotation: "Fornecedores cadastrados"},
			{Label: "Total de Lojas", Value: itoa(s.TotalStores), Annotation: "Lojas na rede"},
			{Label: "Chamados Abertos", Value: itoa(s.OpenTickets), Annotation: ticketVolumeNote(s.OpenTickets)},
			{Label: "Chamados Resolvidos", Value: itoa(s.ResolvedTickets), Annotation: "Chamados finalizados"},
			{Label: "Instalações Concluídas", Value: itoa(s.CompletedInstallations), Annotation: "Lojas com instalação finalizada"},
			{Label: "Lojas Não Concluídas", Value: itoa(s.NonCompletedStores), Annotation: pendingStoresNote(s.NonCompletedStores)},
		},
		Performance: []Row{
			{Label: "Taxa de Conclusão", Value: pct(s.CompletionRate()), Annotation: rateNote(s.CompletionRate(), GoodCompletionRate)},
			{Label: "Taxa de Resolução", Value: pct(s.ResolutionRate()), Annotation: rateNote(s.ResolutionRate(), GoodResolutionRate)},
			{Label: "Volume de Chamados", Value: itoa(s.OpenTickets), Annotation: ticketVolumeNote(s.OpenTickets)},
		},
	}
}

// SummaryValues returns the six snapshot counts as they appear in the
// summary table.
func SummaryValues(s domain.MetricsSnapshot) []string {
	return []string{
		itoa(s.TotalSuppliers),
		itoa(s.TotalStores),
		itoa(s.OpenTickets),
		itoa(s.ResolvedTickets),
		itoa(s.CompletedInstallations),
		itoa(s.NonCompletedStores),
	}
}

func rateNote(rate, good int) string {
	if rate >= good {
		return NoteGood
	}
	return NoteNeedsAttention
}

func ticketVolumeNote(open int) string {
	if open > HighTicketVolume {
		return NoteHighVolume
	}
	return NoteNormal
}

func pendingStoresNote(n int) string {
	if n > 0 {
		return "Requer acompanhamento"
	}
	return "Nenhuma pendência"
}

func itoa(n int) string { return strconv.Itoa(n) }

func pct(n int) string { return strconv.Itoa(n) + "%" }

// Format identifies an artifact type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported artifact type.
var Formats = []Format{FormatPDF, FormatXLSX}

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, true
		}
	}
	return "", false
}
