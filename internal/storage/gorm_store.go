package storage

import (
	"errors"

	"gorm.io/gorm"

	"finance-core/internal/models"
	"finance-core/pkg/common"
)

// GormStore implements Port on top of a gorm MySQL connection.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Begin() (Tx, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, common.NewInfrastructureError("begin transaction", tx.Error)
	}
	return &gormTx{db: tx}, nil
}

func (s *GormStore) Insert(record *models.Transaction) error {
	return insertRecord(s.DB, record)
}

func (s *GormStore) Update(record *models.Transaction) error {
	return updateRecord(s.DB, record)
}

func (s *GormStore) FindByID(id uint) (*models.Transaction, error) {
	var record models.Transaction
	if err := s.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, common.NewInfrastructureError("find transaction", err)
	}
	return &record, nil
}

func (s *GormStore) FindByAccount(accountID string, filter QueryFilter) ([]models.Transaction, error) {
	query := accountQuery(s.DB, accountID, filter).Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	records := make([]models.Transaction, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, common.NewInfrastructureError("list account transactions", err)
	}
	return records, nil
}

func (s *GormStore) CountByAccount(accountID string, filter QueryFilter) (int64, error) {
	var total int64
	if err := accountQuery(s.DB, accountID, filter).Count(&total).Error; err != nil {
		return 0, common.NewInfrastructureError("count account transactions", err)
	}
	return total, nil
}

func accountQuery(db *gorm.DB, accountID string, filter QueryFilter) *gorm.DB {
	query := db.Model(&models.Transaction{}).Where("account_id = ?", accountID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	return query
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) Insert(record *models.Transaction) error {
	return insertRecord(t.db, record)
}

func (t *gormTx) Update(record *models.Transaction) error {
	return updateRecord(t.db, record)
}

func (t *gormTx) UpdateStatus(ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}
	err := t.db.Model(&models.Transaction{}).
		Where("id IN ?", ids).
		UpdateColumn("status", status).Error
	if err != nil {
		return common.NewInfrastructureError("update transaction status", err)
	}
	return nil
}

func (t *gormTx) Commit() error {
	if err := t.db.Commit().Error; err != nil {
		return common.NewInfrastructureError("commit transaction", err)
	}
	return nil
}

func (t *gormTx) Rollback() error {
	if err := t.db.Rollback().Error; err != nil && !errors.Is(err, gorm.ErrInvalidTransaction) {
		return common.NewInfrastructureError("rollback transaction", err)
	}
	return nil
}

func insertRecord(db *gorm.DB, record *models.Transaction) error {
	if err := db.Create(record).Error; err != nil {
		return common.NewInfrastructureError("insert transaction", err)
	}
	return nil
}

func updateRecord(db *gorm.DB, record *models.Transaction) error {
	if err := db.Save(record).Error; err != nil {
		return common.NewInfrastructureError("update transaction", err)
	}
	return nil
}
