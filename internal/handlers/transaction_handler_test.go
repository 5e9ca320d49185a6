package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"finance-core/internal/logger"
	"finance-core/internal/models"
	"finance-core/internal/services"
	"finance-core/internal/storage"
)

// stubPort satisfies storage.Port with empty results, enough to route
// requests through the read path.
type stubPort struct{}

func (stubPort) Begin() (storage.Tx, error) { return nil, nil }

func (stubPort) Insert(record *models.Transaction) error { return nil }

func (stubPort) Update(record *models.Transaction) error { return nil }

func (stubPort) FindByID(id uint) (*models.Transaction, error) { return nil, nil }

func (stubPort) FindByAccount(accountID string, filter storage.QueryFilter) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (stubPort) CountByAccount(accountID string, filter storage.QueryFilter) (int64, error) {
	return 0, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	transactions := services.NewTransactionService(stubPort{}, "USD", logger.NewWithWriter(io.Discard))
	handler := NewTransactionHandler(transactions, nil, nil)

	r := gin.New()
	r.GET("/accounts/:accountId/transactions", handler.GetAccountTransactions)
	return r
}

func TestGetAccountTransactionsRejectsMalformedDates(t *testing.T) {
	r := newTestRouter()

	for _, query := range []string{
		"start_date=garbage",
		"end_date=31-12-2025",
		"start_date=2025-01-01&end_date=tomorrow",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accounts/ACC-1/transactions?"+query, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestGetAccountTransactionsAcceptsSupportedDateLayouts(t *testing.T) {
	r := newTestRouter()

	for _, query := range []string{
		"",
		"start_date=2025-01-01",
		"start_date=2025-01-01%2000:00:00&end_date=2025-06-30%2023:59:59",
		"start_date=2025-01-01T00:00:00Z",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/accounts/ACC-1/transactions?"+query, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "query %q", query)
	}
}
