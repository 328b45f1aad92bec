// Package jobs runs scheduled maintenance against the application service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"invoice-manager/internal/app"
)

const backfillTimeout = 5 * time.Minute

// Renderer is the slice of app.ApplicationService the backfill job needs.
type Renderer interface {
	RenderMissingPDFs(ctx context.Context) (*app.RenderResult, error)
}

// PDFBackfill periodically renders invoices whose document is missing, which
// is how a failed render after invoice generation eventually recovers.
type PDFBackfill struct {
	cron *cron.Cron
	svc  Renderer
	log  zerolog.Logger
}

// NewPDFBackfill schedules the job with a standard five-field cron spec.
func NewPDFBackfill(schedule string, svc Renderer, log zerolog.Logger) (*PDFBackfill, error) {
	j := &PDFBackfill{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		svc:  svc,
		log:  log,
	}
	if _, err := j.cron.AddFunc(schedule, j.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid PDF backfill schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *PDFBackfill) Start() {
	j.cron.Start()
	j.log.Info().Msg("PDF backfill scheduler started")
}

// Stop halts the scheduler and waits for a running backfill to finish.
func (j *PDFBackfill) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce renders every invoice that still lacks a PDF.
func (j *PDFBackfill) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
	defer cancel()

	res, err := j.svc.RenderMissingPDFs(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("PDF backfill failed")
		return
	}
	if len(res.Rendered) == 0 && len(res.Failed) == 0 {
		return
	}
	j.log.Info().
		Int("rendered", len(res.Rendered)).
		Int("failed", len(res.Failed)).
		Msg("PDF backfill completed")
}
