package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

type createChargeRequest struct {
	ChargeName string    `json:"chargeName" binding:"required,min=2"`
	Field      string    `json:"field" binding:"required,min=2"`
	DueDate    time.Time `json:"dueDate" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
}

type updateChargeRequest struct {
	ChargeName *string    `json:"chargeName" binding:"omitempty,min=2"`
	Field      *string    `json:"field" binding:"omitempty,min=2"`
	DueDate    *time.Time `json:"dueDate"`
	Amount     *float64   `json:"amount" binding:"omitempty,gt=0"`
}

func (h *Handler) CreateCharge(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req createChargeRequest
	if !bindJSON(c, &req) {
		return
	}

	// A charge created with a past due date starts out Due, the state the
	// next sweep would put it in anyway.
	charge := &models.UpcomingCharge{
		UserID:     user.ID,
		ChargeName: req.ChargeName,
		Field:      req.Field,
		DueDate:    req.DueDate,
		Amount:     req.Amount,
		Status:     models.UnpaidStatus(req.DueDate, time.Now()),
	}
	if err := h.store.CreateCharge(c.Request.Context(), charge); err != nil {
		h.serverError(c, "create charge", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityCharges)
	c.JSON(http.StatusCreated, charge)
}

// ListCharges serves one status bucket (default Upcoming) after sweeping
// overdue charges into Due.
func (h *Handler) ListCharges(c *gin.Context) {
	status := models.ChargeStatus(c.DefaultQuery("status", string(models.ChargeStatusUpcoming)))
	h.listChargesByStatus(c, status)
}

// ListDues is a shorthand for the Due bucket.
func (h *Handler) ListDues(c *gin.Context) {
	h.listChargesByStatus(c, models.ChargeStatusDue)
}

func (h *Handler) listChargesByStatus(c *gin.Context, status models.ChargeStatus) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.store.SweepOverdueCharges(c.Request.Context(), user.ID, time.Now()); err != nil {
		h.serverError(c, "sweep overdue charges", err)
		return
	}

	key := cache.ChargesKey(user.Email, string(status))
	var cached []models.UpcomingCharge
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	charges, err := h.store.ListChargesByStatus(c.Request.Context(), user.ID, status)
	if err != nil {
		h.serverError(c, "list charges", err)
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, charges)
	c.JSON(http.StatusOK, charges)
}

func (h *Handler) UpdateCharge(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	chargeID, ok := objectIDParam(c, "chargeId")
	if !ok {
		return
	}
	var req updateChargeRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{}
	if req.ChargeName != nil {
		fields["chargeName"] = *req.ChargeName
	}
	if req.Field != nil {
		fields["field"] = *req.Field
	}
	if req.DueDate != nil {
		fields["dueDate"] = *req.DueDate
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}

	charge, err := h.store.UpdateCharge(c.Request.Context(), user.ID, chargeID, fields)
	if err != nil {
		h.serverError(c, "update charge", err)
		return
	}
	if charge == nil {
		notFound(c, "Charge")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityCharges)
	c.JSON(http.StatusOK, charge)
}

// MarkChargePaid settles the charge and records the payment as an Expense
// transaction carrying the charge id, so unmarking can find it again.
func (h *Handler) MarkChargePaid(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	chargeID, ok := objectIDParam(c, "chargeId")
	if !ok {
		return
	}

	charge, err := h.store.SetChargePaid(c.Request.Context(), user.ID, chargeID, true, time.Now())
	if err != nil {
		h.serverError(c, "mark charge paid", err)
		return
	}
	if charge == nil {
		notFound(c, "Charge")
		return
	}

	txn := &models.Transaction{
		UserID:      user.ID,
		Amount:      charge.Amount,
		Type:        models.TransactionTypeExpense,
		Category:    charge.Field,
		Description: fmt.Sprintf("Paid charge %q", charge.ChargeName),
		ChargeID:    &charge.ID,
	}
	if err := h.store.CreateTransaction(c.Request.Context(), txn); err != nil {
		logger.Get().Error("failed to record charge payment",
			zap.String("email", user.Email),
			zap.String("charge", charge.ChargeName),
			zap.Error(err))
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityCharges, cache.EntityTransactions)
	c.JSON(http.StatusOK, charge)
}

// MarkChargeNotPaid reopens the charge and removes the linked payment
// transaction.
func (h *Handler) MarkChargeNotPaid(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	chargeID, ok := objectIDParam(c, "chargeId")
	if !ok {
		return
	}

	charge, err := h.store.SetChargePaid(c.Request.Context(), user.ID, chargeID, false, time.Now())
	if err != nil {
		h.serverError(c, "mark charge not paid", err)
		return
	}
	if charge == nil {
		notFound(c, "Charge")
		return
	}

	if err := h.store.DeleteTransactionByCharge(c.Request.Context(), user.ID, charge.ID); err != nil {
		logger.Get().Error("failed to remove charge payment transaction",
			zap.String("email", user.Email),
			zap.String("charge", charge.ChargeName),
			zap.Error(err))
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityCharges, cache.EntityTransactions)
	c.JSON(http.StatusOK, charge)
}

func (h *Handler) DeleteCharge(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	chargeID, ok := objectIDParam(c, "chargeId")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteCharge(c.Request.Context(), user.ID, chargeID)
	if err != nil {
		h.serverError(c, "delete charge", err)
		return
	}
	if !deleted {
		notFound(c, "Charge")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityCharges)
	c.JSON(http.StatusOK, gin.H{"message": "Charge deleted successfully."})
}
