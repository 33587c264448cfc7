package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/application/usecase"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/infrastructure/config"
	"github.com/franquianet/portal/infrastructure/metricsclient"
	"github.com/franquianet/portal/infrastructure/report/pdf"
	"github.com/franquianet/portal/infrastructure/report/xlsx"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

const formatAll = "all"

type exportOptions struct {
	apiURL     string
	token      string
	format     string
	outDir     string
	title      string
	timeout    time.Duration
	noCompress bool
	verbose    bool
}

func exportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the management report to a file",
		Long: `Fetch the dashboard metrics once and write the management report.

The file is named relatorio_gerencial_<unix_ms>.<ext>. With --format all both
artifacts are rendered from the same snapshot and share the timestamp.

Examples:
  portal-report export --api https://portal.example.com --token $TOKEN
  portal-report export --format xlsx --out /tmp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := runExport(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", envOr("PORTAL_API_URL", "http://localhost:8080"), "Portal API base URL")
	cmd.Flags().StringVar(&opts.token, "token", os.Getenv("PORTAL_API_TOKEN"), "Bearer token of an authenticated user")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatPDF), "Output format: pdf, xlsx or all")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Directory the report is written to")
	cmd.Flags().StringVar(&opts.title, "title", envOr("REPORT_TITLE", config.DefaultReportTitle), "Report title")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", metricsclient.DefaultTimeout, "Metrics request timeout")
	cmd.Flags().BoolVar(&opts.noCompress, "no-compress", false, "Write uncompressed PDF streams")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	return cmd
}

func parseFormats(raw string) ([]report.Format, error) {
	if strings.EqualFold(strings.TrimSpace(raw), formatAll) {
		return report.Formats, nil
	}
	f, ok := report.ParseFormat(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", inbound.ErrUnsupportedFormat, raw)
	}
	return []report.Format{f}, nil
}

// runExport renders every requested format from a single snapshot and returns
// the written paths in format order.
func runExport(ctx context.Context, opts exportOptions) ([]string, error) {
	formats, err := parseFormats(opts.format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "info"
	}
	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       level,
		Format:      "text",
		ServiceName: "portal-report",
		Output:      os.Stderr,
	})

	client := metricsclient.New(opts.apiURL, opts.token, opts.timeout, log)
	generatedAt := time.Now()
	reports := usecase.NewReportUseCase(
		&onceSource{source: client},
		[]outbound.ReportRenderer{
			pdf.NewRenderer(pdf.WithCompression(!opts.noCompress)),
			xlsx.NewRenderer(),
		},
		opts.title,
		log,
		usecase.WithClock(func() time.Time { return generatedAt }),
	)

	paths := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			artifact, err := reports.Export(gctx, f)
			if err != nil {
				return err
			}
			path := filepath.Join(opts.outDir, artifact.FileName)
			if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// onceSource fetches the snapshot on first use and replays it, so every
// artifact of one export agrees.
type onceSource struct {
	source   outbound.MetricsSource
	once     sync.Once
	snapshot domain.MetricsSnapshot
	err      error
}

func (s *onceSource) Snapshot(ctx context.Context) (domain.MetricsSnapshot, error) {
	s.once.Do(func() {
		s.snapshot, s.err = s.source.Snapshot(ctx)
	})
	return s.snapshot, s.err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
