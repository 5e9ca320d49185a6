package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"finance-core/internal/models"
	"finance-core/internal/services"
	"finance-core/internal/storage"
	"finance-core/pkg/common"
)

type TransactionHandler struct {
	Transactions *services.TransactionService
	Batch        *services.BatchService
	Import       *services.ImportService
}

func NewTransactionHandler(transactions *services.TransactionService, batch *services.BatchService, importSvc *services.ImportService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Batch: batch, Import: importSvc}
}

type TransactionRequest struct {
	TrxType     string   `json:"transaction_type"`
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Reference   string   `json:"reference"`
	AccountID   string   `json:"account_id"`
}

func (r TransactionRequest) toModel() models.Transaction {
	return models.Transaction{
		TrxType:     r.TrxType,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
		Reference:   r.Reference,
		AccountID:   r.AccountID,
	}
}

type BatchRequest struct {
	Submitter string               `json:"submitter"`
	Records   []TransactionRequest `json:"records" binding:"required"`
}

func (r BatchRequest) toModels() []models.Transaction {
	records := make([]models.Transaction, 0, len(r.Records))
	for _, req := range r.Records {
		records = append(records, req.toModel())
	}
	return records
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	record := req.toModel()
	if err := h.Transactions.Save(&record); err != nil {
		status := http.StatusInternalServerError
		if common.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, common.NewErrorResponse(err.Error(), nil, status))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(record, "Transaction saved"))
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid transaction id", nil, http.StatusBadRequest))
		return
	}

	record, err := h.Transactions.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch transaction", nil, http.StatusInternalServerError))
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Transaction not found", nil, http.StatusNotFound))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(record, "Transaction fetched"))
}

// ProcessBatch runs a bulk submission synchronously and returns the full
// per-record accounting. Partial failure is a 200: the body, not the HTTP
// status, says which records committed.
func (h *TransactionHandler) ProcessBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	result, err := h.Batch.ProcessBatch(req.toModels())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Batch processed"))
}

func (h *TransactionHandler) EnqueueBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	taskID, err := h.Import.EnqueueBatchImport(services.BatchImportPayload{
		Submitter: req.Submitter,
		Records:   req.toModels(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to enqueue batch", nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusAccepted, common.NewSuccessResponse(gin.H{"task_id": taskID}, "Batch enqueued"))
}

func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	accountID := c.Param("accountId")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		limit = 50
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	filter := storage.QueryFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if value := c.Query("start_date"); value != "" {
		t, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid start_date", nil, http.StatusBadRequest))
			return
		}
		filter.StartDate = &t
	}
	if value := c.Query("end_date"); value != "" {
		t, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid end_date", nil, http.StatusBadRequest))
			return
		}
		filter.EndDate = &t
	}

	records, err := h.Transactions.GetByAccount(accountID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch transactions", nil, http.StatusInternalServerError))
		return
	}
	total, err := h.Transactions.CountByAccount(accountID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to count transactions", nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.PaginateResponse(records, total, page, limit, ""))
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}
