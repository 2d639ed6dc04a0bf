package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/llm"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

// GetInsights renders the user's current financial state into facts, asks
// the generative model for insights and caches the result. A model failure
// surfaces as a 500; the next request retries.
func (h *Handler) GetInsights(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	key := cache.InsightsKey(user.Email)
	var cached []llm.Insight
	if h.cache.GetJSON(ctx, key, &cached) {
		c.JSON(http.StatusOK, gin.H{"message": "Insights fetched successfully!", "data": cached})
		return
	}

	facts, err := h.collectFacts(c, user)
	if err != nil {
		h.serverError(c, "collect insight facts", err)
		return
	}

	insights, err := h.llm.GenerateInsights(facts)
	if err != nil {
		h.serverError(c, "generate insights", err)
		return
	}

	h.cache.SetJSON(ctx, key, insights)
	c.JSON(http.StatusOK, gin.H{"message": "Insights fetched successfully!", "data": insights})
}

// collectFacts summarizes the user's month, jars, goals and dues as plain
// sentences for the model.
func (h *Handler) collectFacts(c *gin.Context, user *models.User) ([]string, error) {
	ctx := c.Request.Context()
	now := time.Now()

	facts := []string{
		fmt.Sprintf("Monthly income: %.2f (%s).", user.MonthlyIncome, user.IncomeType),
	}
	if side := user.SideIncome(); side > 0 {
		facts = append(facts, fmt.Sprintf("Additional income sources total %.2f per month.", side))
	}
	if rec := user.RecurringExpenseTotal(); rec > 0 {
		facts = append(facts, fmt.Sprintf("Recurring expenses total %.2f per month.", rec))
	}

	summary, err := h.store.SummarizeTransactions(ctx, user.ID, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	facts = append(facts, fmt.Sprintf("This month so far: income %.2f, expenses %.2f.",
		summary.TotalIncome, summary.TotalExpense))

	jars, err := h.store.ListJars(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, jar := range jars {
		facts = append(facts, fmt.Sprintf("Savings jar %q: %.2f saved of %.2f.",
			jar.JarName, jar.AmountSaved, jar.GoalAmount))
	}

	goals, err := h.store.ListGoals(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, goal := range goals {
		facts = append(facts, fmt.Sprintf("Goal %q (%s): %.2f saved of %.2f, target date %s.",
			goal.GoalName, goal.Status, goal.AmountSaved, goal.TargetAmount,
			goal.TargetDate.Format("2006-01-02")))
	}

	if err := h.store.SweepOverdueCharges(ctx, user.ID, now); err != nil {
		return nil, err
	}
	dues, err := h.store.ListChargesByStatus(ctx, user.ID, models.ChargeStatusDue)
	if err != nil {
		return nil, err
	}
	for _, due := range dues {
		facts = append(facts, fmt.Sprintf("Overdue bill %q: %.2f, was due %s.",
			due.ChargeName, due.Amount, due.DueDate.Format("2006-01-02")))
	}

	return facts, nil
}
