package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

type updateProfileRequest struct {
	FullName         *string  `json:"fullName" binding:"omitempty,min=2"`
	MonthlyIncome    *float64 `json:"monthlyIncome" binding:"omitempty,gte=0"`
	IncomeType       *string  `json:"incomeType" binding:"omitempty,oneof=Monthly Irregular"`
	FinanceTipsOptIn *bool    `json:"financeTipsOptIn"`
}

type incomeSourceRequest struct {
	SourceName string   `json:"sourceName" binding:"required,min=2"`
	Amount     *float64 `json:"amount" binding:"required,gte=0"`
}

type recurringExpenseRequest struct {
	ExpenseName string   `json:"expenseName" binding:"required,min=2"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
}

// GetProfile serves the profile cache-aside. The recurring sync runs first
// so the month's materialization is never hidden behind a cached profile.
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.syncer.EnsureSynced(c.Request.Context(), user); err != nil {
		logger.Get().Error("recurring sync failed", zap.String("email", user.Email), zap.Error(err))
	}

	key := cache.ProfileKey(user.Email)
	var cached models.User
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, user)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, okClaims := h.principalOr401(c)
	if !okClaims {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{}
	if req.FullName != nil {
		fields["fullName"] = *req.FullName
	}
	if req.MonthlyIncome != nil {
		fields["monthlyIncome"] = *req.MonthlyIncome
	}
	if req.IncomeType != nil {
		fields["incomeType"] = models.IncomeType(*req.IncomeType)
	}
	if req.FinanceTipsOptIn != nil {
		fields["financeTipsOptIn"] = *req.FinanceTipsOptIn
	}

	user, err := h.store.UpdateUserProfile(c.Request.Context(), claims.Email, fields)
	if err != nil {
		h.serverError(c, "update profile", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) AddIncomeSource(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}
	var req incomeSourceRequest
	if !bindJSON(c, &req) {
		return
	}

	source := models.IncomeSource{
		ID:         uuid.NewString(),
		SourceName: req.SourceName,
		Amount:     *req.Amount,
	}
	user, err := h.store.AddIncomeSource(c.Request.Context(), claims.Email, source)
	if err != nil {
		h.serverError(c, "add income source", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateIncomeSource(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}
	var req incomeSourceRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{"sourceName": req.SourceName, "amount": *req.Amount}
	user, err := h.store.UpdateIncomeSource(c.Request.Context(), claims.Email, c.Param("sourceId"), fields)
	if err != nil {
		h.serverError(c, "update income source", err)
		return
	}
	if user == nil {
		notFound(c, "Income source")
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteIncomeSource(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}

	user, err := h.store.DeleteIncomeSource(c.Request.Context(), claims.Email, c.Param("sourceId"))
	if err != nil {
		h.serverError(c, "delete income source", err)
		return
	}
	if user == nil {
		notFound(c, "Income source")
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) AddRecurringExpense(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}
	var req recurringExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense := models.RecurringExpense{
		ID:          uuid.NewString(),
		ExpenseName: req.ExpenseName,
		Amount:      *req.Amount,
	}
	user, err := h.store.AddRecurringExpense(c.Request.Context(), claims.Email, expense)
	if err != nil {
		h.serverError(c, "add recurring expense", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateRecurringExpense(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}
	var req recurringExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{"expenseName": req.ExpenseName, "amount": *req.Amount}
	user, err := h.store.UpdateRecurringExpense(c.Request.Context(), claims.Email, c.Param("expenseId"), fields)
	if err != nil {
		h.serverError(c, "update recurring expense", err)
		return
	}
	if user == nil {
		notFound(c, "Expense")
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteRecurringExpense(c *gin.Context) {
	claims, ok := h.principalOr401(c)
	if !ok {
		return
	}

	user, err := h.store.DeleteRecurringExpense(c.Request.Context(), claims.Email, c.Param("expenseId"))
	if err != nil {
		h.serverError(c, "delete recurring expense", err)
		return
	}
	if user == nil {
		notFound(c, "Expense")
		return
	}

	h.cache.Invalidate(c.Request.Context(), claims.Email, cache.EntityProfile)
	c.JSON(http.StatusOK, user)
}
