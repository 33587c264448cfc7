package inbound

import (
	"context"
	"errors"
	"time"

	"github.com/franquianet/portal/application/report"
)

var (
	ErrMetricsUnavailable = errors.New("fetch failed")
	ErrRenderFailed       = errors.New("render failed")
	ErrUnsupportedFormat  = errors.New("unsupported report format")
)

// Artifact is a rendered management report ready for delivery.
type Artifact struct {
	FileName    string
	ContentType string
	Format      report.Format
	Data        []byte
	GeneratedAt time.Time
}

type ReportUseCase interface {
	Export(ctx context.Context, format report.Format) (*Artifact, error)
}
