package outbound

import "github.com/franquianet/portal/application/report"

// ReportRenderer turns a formatted report document into a file artifact.
type ReportRenderer interface {
	Render(doc report.Document) ([]byte, error)
	Format() report.Format
	ContentType() string
}
