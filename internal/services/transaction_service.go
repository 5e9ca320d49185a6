package services

import (
	"time"

	"github.com/rs/zerolog"

	"finance-core/internal/models"
	"finance-core/internal/storage"
)

// Writer is the subset of the persistence port a single save needs. Both
// the port itself and an open transaction bracket satisfy it, so the same
// save semantics apply to ad-hoc writes and batch writes.
type Writer interface {
	Insert(record *models.Transaction) error
	Update(record *models.Transaction) error
}

// TransactionService owns single-record persistence: validate, then one
// insert-or-update statement. It performs no retry of its own; retry is
// layered on top by the batch orchestrator.
type TransactionService struct {
	Port         storage.Port
	BaseCurrency string
	Log          zerolog.Logger
}

func NewTransactionService(port storage.Port, baseCurrency string, log zerolog.Logger) *TransactionService {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	return &TransactionService{Port: port, BaseCurrency: baseCurrency, Log: log}
}

// Save validates and persists one record outside any batch. A new record
// (ID 0) is inserted and gets CreatedAt == UpdatedAt; an existing record
// is updated with a fresh UpdatedAt. Validation failure returns before any
// port call.
func (s *TransactionService) Save(record *models.Transaction) error {
	return s.SaveWith(s.Port, record)
}

// SaveWith persists one record through the given writer, typically an open
// transaction owned by the batch orchestrator.
func (s *TransactionService) SaveWith(w Writer, record *models.Transaction) error {
	s.applyDefaults(record)

	if err := record.Validate(); err != nil {
		s.Log.Error().Err(err).Str("account_id", record.AccountID).Msg("transaction rejected")
		return err
	}

	now := time.Now()
	var err error
	if record.Saved() {
		record.UpdatedAt = now
		err = w.Update(record)
	} else {
		record.CreatedAt = now
		record.UpdatedAt = now
		err = w.Insert(record)
	}
	if err != nil {
		s.Log.Error().Err(err).Str("account_id", record.AccountID).Msg("transaction save failed")
		return err
	}

	s.Log.Info().Uint("id", record.ID).Str("status", record.Status).Msg("transaction saved")
	return nil
}

// GetByID returns the record, or nil when no row exists. Driver failures
// surface as an InfrastructureError.
func (s *TransactionService) GetByID(id uint) (*models.Transaction, error) {
	return s.Port.FindByID(id)
}

// GetByAccount returns the account's transactions newest first. Absent
// filters are omitted from the query; no matching rows yields an empty
// slice, not an error.
func (s *TransactionService) GetByAccount(accountID string, filter storage.QueryFilter) ([]models.Transaction, error) {
	return s.Port.FindByAccount(accountID, filter)
}

// CountByAccount returns the total matching rows for the same filter,
// ignoring limit/offset, for pagination envelopes.
func (s *TransactionService) CountByAccount(accountID string, filter storage.QueryFilter) (int64, error) {
	filter.Limit = 0
	filter.Offset = 0
	return s.Port.CountByAccount(accountID, filter)
}

func (s *TransactionService) applyDefaults(record *models.Transaction) {
	if record.Currency == "" {
		record.Currency = s.BaseCurrency
	}
	if record.TrxType == "" {
		record.TrxType = models.TrxTypeStandard
	}
	if record.Status == "" {
		record.Status = models.StatusPending
	}
}
