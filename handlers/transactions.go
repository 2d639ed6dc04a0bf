package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
	"github.com/Harsh-cyber005/paisafy-server/mongodb"
)

type createTransactionRequest struct {
	Amount          float64    `json:"amount" binding:"required,gt=0"`
	Type            string     `json:"type" binding:"required,oneof=Income Expense"`
	Category        string     `json:"category" binding:"required,min=2"`
	Description     string     `json:"description"`
	TransactionDate *time.Time `json:"transactionDate"`
}

type updateTransactionRequest struct {
	Amount          *float64   `json:"amount" binding:"omitempty,gt=0"`
	Type            *string    `json:"type" binding:"omitempty,oneof=Income Expense"`
	Category        *string    `json:"category" binding:"omitempty,min=2"`
	Description     *string    `json:"description"`
	TransactionDate *time.Time `json:"transactionDate"`
}

type transactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	TotalPages   int                  `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req createTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn := &models.Transaction{
		UserID:      user.ID,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}

	if err := h.store.CreateTransaction(c.Request.Context(), txn); err != nil {
		h.serverError(c, "create transaction", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityTransactions)
	c.JSON(http.StatusCreated, txn)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.syncer.EnsureSynced(c.Request.Context(), user); err != nil {
		logger.Get().Error("recurring sync failed", zap.String("email", user.Email), zap.Error(err))
	}

	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	txnType := c.Query("type")
	month := intQuery(c, "month", 0)
	year := intQuery(c, "year", 0)

	key := cache.TransactionsKey(user.Email, page, limit, txnType, month, year)
	var cached transactionPage
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	filter := mongodb.TransactionFilter{
		Type:  models.TransactionType(txnType),
		Month: month,
		Year:  year,
	}
	transactions, total, err := h.store.ListTransactions(c.Request.Context(), user.ID, filter, page, limit)
	if err != nil {
		h.serverError(c, "list transactions", err)
		return
	}

	response := transactionPage{
		Transactions: transactions,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage:  page,
	}
	h.cache.SetJSON(c.Request.Context(), key, response)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) TransactionSummary(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.syncer.EnsureSynced(c.Request.Context(), user); err != nil {
		logger.Get().Error("recurring sync failed", zap.String("email", user.Email), zap.Error(err))
	}

	now := time.Now()
	month := intQuery(c, "month", int(now.Month()))
	year := intQuery(c, "year", now.Year())

	key := cache.SummaryKey(user.Email, month, year)
	var cached models.TransactionSummary
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	summary, err := h.store.SummarizeTransactions(c.Request.Context(), user.ID, year, month)
	if err != nil {
		h.serverError(c, "summarize transactions", err)
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, summary)
	c.JSON(http.StatusOK, summary)
}

// SpendingTrend returns the current month's per-day expense totals. It is
// recomputed on every request: the trend chart follows new expenses
// immediately.
func (h *Handler) SpendingTrend(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	trend, err := h.store.SpendingTrend(c.Request.Context(), user.ID, time.Now())
	if err != nil {
		h.serverError(c, "spending trend", err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	txnID, ok := objectIDParam(c, "transactionId")
	if !ok {
		return
	}

	txn, err := h.store.GetTransaction(c.Request.Context(), user.ID, txnID)
	if err != nil {
		h.serverError(c, "fetch transaction", err)
		return
	}
	if txn == nil {
		notFound(c, "Transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	txnID, ok := objectIDParam(c, "transactionId")
	if !ok {
		return
	}
	var req updateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Type != nil {
		fields["type"] = models.TransactionType(*req.Type)
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.TransactionDate != nil {
		fields["transactionDate"] = *req.TransactionDate
	}

	txn, err := h.store.UpdateTransaction(c.Request.Context(), user.ID, txnID, fields)
	if err != nil {
		h.serverError(c, "update transaction", err)
		return
	}
	if txn == nil {
		notFound(c, "Transaction")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityTransactions)
	c.JSON(http.StatusOK, txn)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	txnID, ok := objectIDParam(c, "transactionId")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteTransaction(c.Request.Context(), user.ID, txnID)
	if err != nil {
		h.serverError(c, "delete transaction", err)
		return
	}
	if !deleted {
		notFound(c, "Transaction")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityTransactions)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully."})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func objectIDParam(c *gin.Context, name string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id."})
		return bson.ObjectID{}, false
	}
	return id, true
}
