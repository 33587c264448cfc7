package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// ReportUseCase builds management reports: fetch metrics, format, render.
type ReportUseCase struct {
	source    outbound.MetricsSource
	renderers map[report.Format]outbound.ReportRenderer
	title     string
	now       func() time.Time
	logger    logger.Logger
}

type ReportOption func(*ReportUseCase)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) ReportOption {
	return func(uc *ReportUseCase) { uc.now = now }
}

func NewReportUseCase(
	source outbound.MetricsSource,
	renderers []outbound.ReportRenderer,
	title string,
	log logger.Logger,
	opts ...ReportOption,
) *ReportUseCase {
	uc := &ReportUseCase{
		source:    source,
		renderers: make(map[report.Format]outbound.ReportRenderer, len(renderers)),
		title:     title,
		now:       time.Now,
		logger:    log,
	}
	for _, r := range renderers {
		uc.renderers[r.Format()] = r
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *ReportUseCase) Export(ctx context.Context, format report.Format) (*inbound.Artifact, error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", inbound.ErrUnsupportedFormat, format)
	}

	start := time.Now()

	snapshot, err := uc.source.Snapshot(ctx)
	if err != nil {
		uc.logger.Error(ctx, "Report metrics fetch failed", err, map[string]interface{}{"format": string(format)})
		return nil, fmt.Errorf("%w: %v", inbound.ErrMetricsUnavailable, err)
	}
	if err := snapshot.Validate(); err != nil {
		uc.logger.Error(ctx, "Report metrics rejected", err, map[string]interface{}{"format": string(format)})
		return nil, err
	}

	generatedAt := uc.now()
	doc := report.Document{
		Title:       uc.title,
		GeneratedAt: generatedAt,
		Report:      report.Build(snapshot),
	}

	data, err := renderer.Render(doc)
	if err != nil {
		uc.logger.Error(ctx, "Report render failed", err, map[string]interface{}{"format": string(format)})
		return nil, fmt.Errorf("%w: %v", inbound.ErrRenderFailed, err)
	}

	artifact := &inbound.Artifact{
		FileName:    report.FileName(generatedAt, string(format)),
		ContentType: renderer.ContentType(),
		Format:      format,
		Data:        data,
		GeneratedAt: generatedAt,
	}

	logger.LogPerformance(ctx, uc.logger, "report_export", time.Since(start), map[string]interface{}{
		"format":    string(format),
		"file_name": artifact.FileName,
		"bytes":     len(data),
	})
	return artifact, nil
}
