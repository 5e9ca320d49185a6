package consumers

import (
	"github.com/rs/zerolog"

	"finance-core/internal/services"
)

// BatchProcessor drives the batch orchestrator for submissions pulled off
// the worker queue.
type BatchProcessor struct {
	Batch *services.BatchService
	Log   zerolog.Logger
}

func NewBatchProcessor(batch *services.BatchService, log zerolog.Logger) *BatchProcessor {
	return &BatchProcessor{Batch: batch, Log: log}
}

// ProcessBatchImport runs one queued bulk submission to completion. Partial
// failure is an expected outcome and is logged, not returned: requeueing
// the task would resubmit records that already committed.
func (p *BatchProcessor) ProcessBatchImport(payload services.BatchImportPayload) {
	result, err := p.Batch.ProcessBatch(payload.Records)
	if err != nil {
		p.Log.Error().Err(err).Str("submitter", payload.Submitter).Msg("batch import failed")
		return
	}

	logEvent := p.Log.Info
	if len(result.Failed) > 0 {
		logEvent = p.Log.Warn
	}
	logEvent().
		Str("batch_id", result.BatchID).
		Str("submitter", payload.Submitter).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("batch import processed")
}
