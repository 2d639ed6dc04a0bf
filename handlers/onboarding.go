package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/logger"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

type onboardingRequest struct {
	Income struct {
		MonthlyIncome     float64 `json:"monthlyIncome" binding:"required,gt=0"`
		IncomeType        string  `json:"incomeType" binding:"required,oneof=monthly irregular"`
		AdditionalSources []struct {
			Name   string  `json:"name" binding:"required,min=1"`
			Amount float64 `json:"amount" binding:"required,gt=0"`
		} `json:"additionalSources" binding:"omitempty,dive"`
	} `json:"income" binding:"required"`
	Expenses struct {
		PredefinedExpenses map[string]float64 `json:"predefinedExpenses" binding:"omitempty,dive,gt=0"`
		CustomExpenses     []struct {
			Name   string  `json:"name" binding:"required,min=1"`
			Amount float64 `json:"amount" binding:"required,gt=0"`
		} `json:"customExpenses" binding:"omitempty,dive"`
	} `json:"expenses" binding:"required"`
	Goals struct {
		PredefinedGoals map[string]struct {
			Amount float64    `json:"amount" binding:"required,gt=0"`
			Date   *time.Time `json:"date"`
		} `json:"predefinedGoals" binding:"omitempty,dive"`
		CustomGoals []struct {
			Name   string     `json:"name" binding:"required,min=1"`
			Amount float64    `json:"amount" binding:"required,gt=0"`
			Date   *time.Time `json:"date"`
		} `json:"customGoals" binding:"omitempty,dive"`
		FinanceTips bool `json:"financeTips"`
	} `json:"goals" binding:"required"`
}

// Display names for the predefined goal ids the app sends.
var predefinedGoalNames = map[string]string{
	"laptop":    "New Laptop",
	"trip":      "Weekend Trip",
	"emergency": "Build Emergency Fund",
	"invest":    "Invest in Stocks",
}

// SubmitOnboarding writes the financial profile, seeds goals and jars, and
// materializes the first month's recurring transactions. The month is
// stamped in the jobs collection so the lazy sync does not repeat it.
func (h *Handler) SubmitOnboarding(c *gin.Context) {
	var req onboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.OnboardingDone {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Onboarding already completed."})
		return
	}
	ctx := c.Request.Context()

	sources := make([]models.IncomeSource, 0, len(req.Income.AdditionalSources))
	for _, src := range req.Income.AdditionalSources {
		sources = append(sources, models.IncomeSource{
			ID:         uuid.NewString(),
			SourceName: src.Name,
			Amount:     src.Amount,
		})
	}

	expenses := []models.RecurringExpense{}
	for name, amount := range req.Expenses.PredefinedExpenses {
		expenses = append(expenses, models.RecurringExpense{
			ID:          uuid.NewString(),
			ExpenseName: name,
			Amount:      amount,
		})
	}
	for _, exp := range req.Expenses.CustomExpenses {
		expenses = append(expenses, models.RecurringExpense{
			ID:          uuid.NewString(),
			ExpenseName: exp.Name,
			Amount:      exp.Amount,
		})
	}

	incomeType := models.IncomeTypeMonthly
	if req.Income.IncomeType == "irregular" {
		incomeType = models.IncomeTypeIrregular
	}

	updated, err := h.store.ReplaceFinancialProfile(ctx, user.Email,
		req.Income.MonthlyIncome, incomeType, sources, expenses, req.Goals.FinanceTips)
	if err != nil {
		h.serverError(c, "save financial profile", err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	goals, jars := h.buildOnboardingGoals(user, req)
	if err := h.store.CreateGoals(ctx, goals); err != nil {
		h.serverError(c, "create onboarding goals", err)
		return
	}
	if err := h.store.CreateJars(ctx, jars); err != nil {
		h.serverError(c, "create onboarding jars", err)
		return
	}

	now := time.Now()
	txns := []*models.Transaction{
		{
			UserID:      user.ID,
			Amount:      req.Income.MonthlyIncome,
			Type:        models.TransactionTypeRecurringIncome,
			Category:    "Income",
			Description: "User onboarding monthly income",
		},
	}
	for _, src := range sources {
		txns = append(txns, &models.Transaction{
			UserID:      user.ID,
			Amount:      src.Amount,
			Type:        models.TransactionTypeRecurringIncome,
			Category:    "Additional Income",
			Description: "User onboarding additional income source: " + src.SourceName,
		})
	}
	for _, exp := range expenses {
		txns = append(txns, &models.Transaction{
			UserID:      user.ID,
			Amount:      exp.Amount,
			Type:        models.TransactionTypeRecurringExpense,
			Category:    "Recurring",
			Description: "User onboarding recurring expense: " + exp.ExpenseName,
		})
	}
	if err := h.store.CreateTransactions(ctx, txns); err != nil {
		h.serverError(c, "create onboarding transactions", err)
		return
	}

	if err := h.store.SeedMonthlySync(ctx, user.ID, int(now.Month()), now.Year()); err != nil {
		logger.Get().Error("failed to stamp monthly sync after onboarding",
			zap.String("email", user.Email), zap.Error(err))
	}

	h.cache.Invalidate(ctx, user.Email,
		cache.EntityProfile, cache.EntityGoals, cache.EntityJars, cache.EntityTransactions)

	logger.Get().Info("onboarding completed", zap.String("email", user.Email))
	c.JSON(http.StatusOK, gin.H{"message": "Onboarding completed successfully!", "user": updated})
}

func (h *Handler) buildOnboardingGoals(user *models.User, req onboardingRequest) ([]*models.Goal, []*models.Jar) {
	defaultDate := time.Now().AddDate(1, 0, 0)

	goals := []*models.Goal{}
	jars := []*models.Jar{}
	add := func(name string, amount float64, date *time.Time) {
		targetDate := defaultDate
		if date != nil {
			targetDate = *date
		}
		goals = append(goals, &models.Goal{
			UserID:       user.ID,
			GoalName:     name,
			TargetAmount: amount,
			TargetDate:   targetDate,
			Status:       models.GoalStatusInProgress,
		})
		jars = append(jars, &models.Jar{
			UserID:     user.ID,
			JarName:    name,
			GoalAmount: amount,
		})
	}

	for id, goal := range req.Goals.PredefinedGoals {
		name, ok := predefinedGoalNames[id]
		if !ok {
			name = "Goal"
		}
		add(name, goal.Amount, goal.Date)
	}
	for _, goal := range req.Goals.CustomGoals {
		add(goal.Name, goal.Amount, goal.Date)
	}
	return goals, jars
}
