package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onboardingBody(overrides gin.H) gin.H {
	body := gin.H{
		"income":   gin.H{"monthlyIncome": 50000, "incomeType": "monthly"},
		"expenses": gin.H{"predefinedExpenses": gin.H{"rent": 15000}},
		"goals":    gin.H{"financeTips": true},
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func TestSubmitOnboardingRejectsNegativePredefinedExpense(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.SubmitOnboarding, onboardingBody(gin.H{
		"expenses": gin.H{"predefinedExpenses": gin.H{"rent": -15000}},
	}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeErrors(t, w)
	require.Len(t, errs, 1)
	for field, msg := range errs {
		assert.Contains(t, field, "rent")
		assert.Contains(t, msg, "positive")
	}
}

func TestSubmitOnboardingRejectsZeroPredefinedExpense(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.SubmitOnboarding, onboardingBody(gin.H{
		"expenses": gin.H{"predefinedExpenses": gin.H{"subscriptions": 0}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOnboardingRejectsNegativePredefinedGoal(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.SubmitOnboarding, onboardingBody(gin.H{
		"goals": gin.H{"predefinedGoals": gin.H{"laptop": gin.H{"amount": -5000}}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOnboardingRejectsNegativeCustomExpense(t *testing.T) {
	h := &Handler{}

	w := postJSON(h.SubmitOnboarding, onboardingBody(gin.H{
		"expenses": gin.H{"customExpenses": []gin.H{{"name": "gym", "amount": -500}}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOnboardingValidBodyReachesAuth(t *testing.T) {
	h := &Handler{}

	// Well-formed amounts clear binding; without a principal the next stop
	// is the 401, not a validation 400.
	w := postJSON(h.SubmitOnboarding, onboardingBody(nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
