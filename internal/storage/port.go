package storage

import (
	"time"

	"finance-core/internal/models"
)

// QueryFilter narrows account-scoped transaction queries. Zero-valued
// fields are omitted from the query entirely rather than matched against
// a sentinel.
type QueryFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Tx is one database transaction bracket. Rollback must be safe to call
// even if no writes occurred.
type Tx interface {
	Insert(record *models.Transaction) error
	Update(record *models.Transaction) error
	UpdateStatus(ids []uint, status string) error
	Commit() error
	Rollback() error
}

// Port is the persistence collaborator the finance core writes through.
// Implementations must wrap driver failures as *common.InfrastructureError
// and report "row not found" as a nil record, not an error.
type Port interface {
	Begin() (Tx, error)
	Insert(record *models.Transaction) error
	Update(record *models.Transaction) error
	FindByID(id uint) (*models.Transaction, error)
	FindByAccount(accountID string, filter QueryFilter) ([]models.Transaction, error)
	CountByAccount(accountID string, filter QueryFilter) (int64, error)
}
