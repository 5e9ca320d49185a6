package services

import (
	"errors"

	"finance-core/internal/models"
	"finance-core/internal/storage"
	"finance-core/pkg/common"
)

var (
	errDeadlock = errors.New("deadlock found when trying to get lock")
	errConnGone = errors.New("connection refused")
)

// fakePort is an in-memory persistence port that counts every call and can
// be scripted to fail inserts per record (keyed by Reference), so tests can
// assert exactly how often the port was touched.
type fakePort struct {
	nextID      uint
	begins      int
	commits     int
	rollbacks   int
	insertTotal int
	updateTotal int
	insertCalls map[string]int
	failInserts map[string]int
	failBegin   bool
	// failCommitAt fails the n-th commit attempt (1-based); 0 never fails.
	failCommitAt   int
	commitAttempts int
	rows           map[uint]models.Transaction
}

func newFakePort() *fakePort {
	return &fakePort{
		insertCalls: make(map[string]int),
		failInserts: make(map[string]int),
		rows:        make(map[uint]models.Transaction),
	}
}

func (p *fakePort) insert(record *models.Transaction) error {
	p.insertTotal++
	p.insertCalls[record.Reference]++
	if p.failInserts[record.Reference] > 0 {
		p.failInserts[record.Reference]--
		return common.NewInfrastructureError("insert transaction", errDeadlock)
	}
	p.nextID++
	record.ID = p.nextID
	return nil
}

func (p *fakePort) Begin() (storage.Tx, error) {
	if p.failBegin {
		return nil, common.NewInfrastructureError("begin transaction", errConnGone)
	}
	p.begins++
	return &fakeTx{port: p, override: make(map[uint]string)}, nil
}

func (p *fakePort) Insert(record *models.Transaction) error {
	if err := p.insert(record); err != nil {
		return err
	}
	p.rows[record.ID] = *record
	return nil
}

func (p *fakePort) Update(record *models.Transaction) error {
	p.updateTotal++
	p.rows[record.ID] = *record
	return nil
}

func (p *fakePort) FindByID(id uint) (*models.Transaction, error) {
	if row, ok := p.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

func (p *fakePort) FindByAccount(accountID string, filter storage.QueryFilter) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, row := range p.rows {
		if row.AccountID != accountID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (p *fakePort) CountByAccount(accountID string, filter storage.QueryFilter) (int64, error) {
	rows, err := p.FindByAccount(accountID, filter)
	return int64(len(rows)), err
}

type fakeTx struct {
	port     *fakePort
	staged   []*models.Transaction
	override map[uint]string
}

func (t *fakeTx) Insert(record *models.Transaction) error {
	if err := t.port.insert(record); err != nil {
		return err
	}
	t.staged = append(t.staged, record)
	return nil
}

func (t *fakeTx) Update(record *models.Transaction) error {
	t.port.updateTotal++
	t.staged = append(t.staged, record)
	return nil
}

func (t *fakeTx) UpdateStatus(ids []uint, status string) error {
	for _, id := range ids {
		t.override[id] = status
	}
	return nil
}

func (t *fakeTx) Commit() error {
	t.port.commitAttempts++
	if t.port.failCommitAt > 0 && t.port.commitAttempts == t.port.failCommitAt {
		return common.NewInfrastructureError("commit transaction", errConnGone)
	}
	t.port.commits++
	for _, record := range t.staged {
		row := *record
		if status, ok := t.override[row.ID]; ok {
			row.Status = status
		}
		t.port.rows[row.ID] = row
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	t.port.rollbacks++
	t.staged = nil
	return nil
}

func float(v float64) *float64 {
	return &v
}
