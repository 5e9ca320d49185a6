package services

import (
	"time"

	"github.com/rs/zerolog"

	"finance-core/internal/models"
	"finance-core/internal/storage"
	"finance-core/pkg/common"
)

// BatchConfig bounds one orchestration call. Zero values fall back to the
// defaults below.
type BatchConfig struct {
	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration
}

const (
	DefaultBatchSize     = 1000
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
)

func (c BatchConfig) withDefaults() BatchConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}

// FailedRecord pairs a record with the error that kept it out of storage.
type FailedRecord struct {
	Record models.Transaction `json:"record"`
	Reason string             `json:"reason"`
	Err    error              `json:"-"`
}

// BatchResult accounts for every submitted record exactly once.
type BatchResult struct {
	BatchID    string               `json:"batch_id"`
	Successful []models.Transaction `json:"successful"`
	Failed     []FailedRecord       `json:"failed"`
}

// BatchService partitions bulk submissions into bounded chunks, wraps each
// chunk in one database transaction, retries individual saves on transient
// infrastructure failures, and reports per-record outcomes. Chunks are
// independent units of atomicity: a failed chunk never undoes a committed
// one.
type BatchService struct {
	Port   storage.Port
	Store  *TransactionService
	Config BatchConfig
	Log    zerolog.Logger
}

func NewBatchService(port storage.Port, store *TransactionService, cfg BatchConfig, log zerolog.Logger) *BatchService {
	return &BatchService{Port: port, Store: store, Config: cfg.withDefaults(), Log: log}
}

// ProcessBatch persists all submitted records, chunk by chunk. Every record
// of one call shares a single batch identifier regardless of which chunk,
// or whether, it committed. The returned result — not an error — is the
// source of truth for what was durably persisted.
func (s *BatchService) ProcessBatch(records []models.Transaction) (*BatchResult, error) {
	result := &BatchResult{
		BatchID:    common.GenerateBatchID(),
		Successful: make([]models.Transaction, 0, len(records)),
		Failed:     make([]FailedRecord, 0),
	}
	if len(records) == 0 {
		return result, nil
	}

	chunks := (len(records) + s.Config.BatchSize - 1) / s.Config.BatchSize
	s.Log.Info().
		Str("batch_id", result.BatchID).
		Int("records", len(records)).
		Int("chunks", chunks).
		Msg("batch processing started")

	for start := 0; start < len(records); start += s.Config.BatchSize {
		end := start + s.Config.BatchSize
		if end > len(records) {
			end = len(records)
		}
		s.processChunk(records[start:end], result)
	}

	s.Log.Info().
		Str("batch_id", result.BatchID).
		Int("successful", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("batch processing finished")
	return result, nil
}

func (s *BatchService) processChunk(chunk []models.Transaction, result *BatchResult) {
	tx, err := s.Port.Begin()
	if err != nil {
		s.Log.Error().Err(err).Str("batch_id", result.BatchID).Msg("chunk transaction begin failed")
		s.failRecords(chunk, result, err)
		return
	}

	saved := make([]*models.Transaction, 0, len(chunk))
	var abort error
	abortAt := len(chunk)

	for i := range chunk {
		record := &chunk[i]
		record.Status = models.StatusProcessing
		record.BatchID = &result.BatchID

		err := common.WithRetry(func() error {
			return s.Store.SaveWith(tx, record)
		}, s.Config.RetryAttempts, s.Config.RetryDelay, common.IsRetryable)
		if err == nil {
			saved = append(saved, record)
			continue
		}

		if common.IsValidationError(err) {
			// Never reached the port; the rest of the chunk is unaffected.
			record.Status = models.StatusFailed
			result.Failed = append(result.Failed, FailedRecord{Record: *record, Reason: err.Error(), Err: err})
			continue
		}

		abort = err
		abortAt = i
		break
	}

	if abort != nil {
		_ = tx.Rollback()
		s.Log.Warn().
			Err(abort).
			Str("batch_id", result.BatchID).
			Int("chunk_size", len(chunk)).
			Msg("chunk rolled back")
		// The whole chunk fails with the triggering error, including records
		// that had already been written inside the rolled-back transaction.
		for _, record := range saved {
			record.ID = 0
			s.failRecords([]models.Transaction{*record}, result, abort)
		}
		s.failRecords(chunk[abortAt:], result, abort)
		return
	}

	ids := make([]uint, 0, len(saved))
	for _, record := range saved {
		ids = append(ids, record.ID)
	}
	if err := tx.UpdateStatus(ids, models.StatusCompleted); err != nil {
		_ = tx.Rollback()
		s.Log.Warn().Err(err).Str("batch_id", result.BatchID).Msg("chunk finalize failed")
		for _, record := range saved {
			record.ID = 0
			s.failRecords([]models.Transaction{*record}, result, err)
		}
		return
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		s.Log.Warn().Err(err).Str("batch_id", result.BatchID).Msg("chunk commit failed")
		for _, record := range saved {
			record.ID = 0
			s.failRecords([]models.Transaction{*record}, result, err)
		}
		return
	}

	for _, record := range saved {
		record.Status = models.StatusCompleted
		result.Successful = append(result.Successful, *record)
	}
}

func (s *BatchService) failRecords(records []models.Transaction, result *BatchResult, cause error) {
	for i := range records {
		record := records[i]
		record.Status = models.StatusFailed
		record.BatchID = &result.BatchID
		result.Failed = append(result.Failed, FailedRecord{Record: record, Reason: cause.Error(), Err: cause})
	}
}
