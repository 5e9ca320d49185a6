package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finance-core/internal/models"
	"finance-core/pkg/common"
)

type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Type     string `json:"account_type"`
	Currency string `json:"currency"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	account := models.Account{
		Code:     req.Code,
		Name:     req.Name,
		Type:     req.Type,
		Currency: req.Currency,
		Active:   true,
	}
	if account.Type == "" {
		account.Type = "ASSET"
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}

	if err := h.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to create account", nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(account, "Account created"))
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	var account models.Account
	err := h.DB.Where("code = ?", c.Param("accountId")).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Account not found", nil, http.StatusNotFound))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Failed to fetch account", nil, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(account, "Account fetched"))
}
