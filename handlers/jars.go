package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

type createJarRequest struct {
	JarName    string  `json:"jarName" binding:"required,min=2"`
	GoalAmount float64 `json:"goalAmount" binding:"required,gt=0"`
}

type updateJarRequest struct {
	JarName    *string  `json:"jarName" binding:"omitempty,min=2"`
	GoalAmount *float64 `json:"goalAmount" binding:"omitempty,gt=0"`
}

type moneyRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handler) CreateJar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req createJarRequest
	if !bindJSON(c, &req) {
		return
	}

	jar := &models.Jar{
		UserID:     user.ID,
		JarName:    req.JarName,
		GoalAmount: req.GoalAmount,
	}
	if err := h.store.CreateJar(c.Request.Context(), jar); err != nil {
		h.serverError(c, "create jar", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityJars)
	c.JSON(http.StatusCreated, jar)
}

func (h *Handler) ListJars(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	key := cache.JarsKey(user.Email)
	var cached []models.Jar
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	jars, err := h.store.ListJars(c.Request.Context(), user.ID)
	if err != nil {
		h.serverError(c, "list jars", err)
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, jars)
	c.JSON(http.StatusOK, jars)
}

func (h *Handler) UpdateJar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	jarID, ok := objectIDParam(c, "jarId")
	if !ok {
		return
	}
	var req updateJarRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{}
	if req.JarName != nil {
		fields["jarName"] = *req.JarName
	}
	if req.GoalAmount != nil {
		fields["goalAmount"] = *req.GoalAmount
	}

	jar, err := h.store.UpdateJar(c.Request.Context(), user.ID, jarID, fields)
	if err != nil {
		h.serverError(c, "update jar", err)
		return
	}
	if jar == nil {
		notFound(c, "Jar")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityJars)
	c.JSON(http.StatusOK, jar)
}

// DepositToJar adds money to the jar and records the movement as an Expense
// transaction linked to the jar.
func (h *Handler) DepositToJar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	jarID, ok := objectIDParam(c, "jarId")
	if !ok {
		return
	}
	var req moneyRequest
	if !bindJSON(c, &req) {
		return
	}

	jar, err := h.store.DepositToJar(c.Request.Context(), user.ID, jarID, req.Amount)
	if err != nil {
		h.serverError(c, "deposit to jar", err)
		return
	}
	if jar == nil {
		notFound(c, "Jar")
		return
	}

	h.recordJarMovement(c, user, jar, req.Amount, models.TransactionTypeExpense, "deposit to")
	c.JSON(http.StatusOK, jar)
}

// WithdrawFromJar removes money from the jar. The balance check happens
// inside the store update; a miss with the jar still present means the
// balance did not cover the amount.
func (h *Handler) WithdrawFromJar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	jarID, ok := objectIDParam(c, "jarId")
	if !ok {
		return
	}
	var req moneyRequest
	if !bindJSON(c, &req) {
		return
	}

	jar, err := h.store.WithdrawFromJar(c.Request.Context(), user.ID, jarID, req.Amount)
	if err != nil {
		h.serverError(c, "withdraw from jar", err)
		return
	}
	if jar == nil {
		existing, err := h.store.GetJar(c.Request.Context(), user.ID, jarID)
		if err != nil {
			h.serverError(c, "fetch jar", err)
			return
		}
		if existing == nil {
			notFound(c, "Jar")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Withdrawal amount cannot be greater than the saved amount."})
		return
	}

	h.recordJarMovement(c, user, jar, req.Amount, models.TransactionTypeIncome, "withdrawal from")
	c.JSON(http.StatusOK, jar)
}

func (h *Handler) DeleteJar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	jarID, ok := objectIDParam(c, "jarId")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteJar(c.Request.Context(), user.ID, jarID)
	if err != nil {
		h.serverError(c, "delete jar", err)
		return
	}
	if !deleted {
		notFound(c, "Jar")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityJars)
	c.JSON(http.StatusOK, gin.H{"message": "Jar deleted successfully."})
}

// recordJarMovement writes the transaction mirroring a jar mutation and
// purges everything the pair of writes made stale. The jar update is the
// authoritative write; a transaction write failure is logged via serverError
// semantics but does not undo the jar update, so invalidation still runs.
func (h *Handler) recordJarMovement(c *gin.Context, user *models.User, jar *models.Jar, amount float64, txnType models.TransactionType, verb string) {
	txn := &models.Transaction{
		UserID:      user.ID,
		Amount:      amount,
		Type:        txnType,
		Category:    "Savings",
		Description: fmt.Sprintf("Jar %s %q", verb, jar.JarName),
		JarID:       &jar.ID,
	}
	if err := h.store.CreateTransaction(c.Request.Context(), txn); err != nil {
		// The jar balance already moved; log the missing transaction record.
		logger.Get().Error("failed to record jar movement",
			zap.String("email", user.Email),
			zap.String("jar", jar.JarName),
			zap.Error(err))
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityJars, cache.EntityTransactions)
}
