package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"finance-core/internal/models"
)

// ArchiveService moves terminal-status ledger entries older than the
// retention window into the archive table. Only COMPLETED and FAILED rows
// are eligible; in-flight rows stay in the hot table whatever their age.
type ArchiveService struct {
	DB              *gorm.DB
	RetentionMonths int
	Log             zerolog.Logger
}

func NewArchiveService(db *gorm.DB, retentionMonths int, log zerolog.Logger) *ArchiveService {
	if retentionMonths <= 0 {
		retentionMonths = 4
	}
	return &ArchiveService{DB: db, RetentionMonths: retentionMonths, Log: log}
}

// ArchiveTransactions performs one archive pass. The copy into the archive
// table and the delete from the hot table happen in a single database
// transaction so an entry is never in both tables or neither.
func (s *ArchiveService) ArchiveTransactions() {
	cutoff := time.Now().AddDate(0, -s.RetentionMonths, 0)

	var old []models.Transaction
	err := s.DB.
		Where("created_at < ?", cutoff).
		Where("status IN ?", []string{models.StatusCompleted, models.StatusFailed}).
		Find(&old).Error
	if err != nil {
		s.Log.Error().Err(err).Msg("archive scan failed")
		return
	}
	if len(old) == 0 {
		s.Log.Debug().Time("cutoff", cutoff).Msg("no transactions to archive")
		return
	}

	archived := make([]models.ArchivedTransaction, 0, len(old))
	ids := make([]uint, 0, len(old))
	for _, t := range old {
		archived = append(archived, models.ArchivedTransaction{
			SourceID:    t.ID,
			TrxType:     t.TrxType,
			Amount:      t.Amount,
			Currency:    t.Currency,
			Description: t.Description,
			Reference:   t.Reference,
			Status:      t.Status,
			AccountID:   t.AccountID,
			BatchID:     t.BatchID,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
		ids = append(ids, t.ID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Transaction{}, ids).Error
	})
	if err != nil {
		s.Log.Error().Err(err).Int("count", len(old)).Msg("archive move failed")
		return
	}
	s.Log.Info().Int("count", len(old)).Time("cutoff", cutoff).Msg("transactions archived")
}

// StartScheduler runs the archive pass daily at midnight.
func (s *ArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", s.ArchiveTransactions)
	if err != nil {
		s.Log.Error().Err(err).Msg("failed to schedule archive job")
		return
	}
	c.Start()
	s.Log.Info().Msg("archive scheduler started (daily at 00:00)")
}
