package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Harsh-cyber005/paisafy-server/cache"
	"github.com/Harsh-cyber005/paisafy-server/models"
)

type createGoalRequest struct {
	GoalName     string    `json:"goalName" binding:"required,min=3"`
	TargetAmount float64   `json:"targetAmount" binding:"required,gt=0"`
	TargetDate   time.Time `json:"targetDate" binding:"required"`
}

type updateGoalRequest struct {
	GoalName     *string    `json:"goalName" binding:"omitempty,min=3"`
	TargetAmount *float64   `json:"targetAmount" binding:"omitempty,gt=0"`
	TargetDate   *time.Time `json:"targetDate"`
}

func (h *Handler) CreateGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req createGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal := &models.Goal{
		UserID:       user.ID,
		GoalName:     req.GoalName,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Status:       models.GoalStatusInProgress,
	}
	if err := h.store.CreateGoal(c.Request.Context(), goal); err != nil {
		h.serverError(c, "create goal", err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityGoals)
	c.JSON(http.StatusCreated, goal)
}

func (h *Handler) ListGoals(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	key := cache.GoalsKey(user.Email)
	var cached []models.Goal
	if h.cache.GetJSON(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	goals, err := h.store.ListGoals(c.Request.Context(), user.ID)
	if err != nil {
		h.serverError(c, "list goals", err)
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, goals)
	c.JSON(http.StatusOK, goals)
}

func (h *Handler) GetGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	goalID, ok := objectIDParam(c, "goalId")
	if !ok {
		return
	}

	key := cache.GoalKey(goalID.Hex())
	var cached models.Goal
	if h.cache.GetJSON(c.Request.Context(), key, &cached) && cached.UserID == user.ID {
		c.JSON(http.StatusOK, cached)
		return
	}

	goal, err := h.store.GetGoal(c.Request.Context(), user.ID, goalID)
	if err != nil {
		h.serverError(c, "fetch goal", err)
		return
	}
	if goal == nil {
		notFound(c, "Goal")
		return
	}

	h.cache.SetJSON(c.Request.Context(), key, goal)
	c.JSON(http.StatusOK, goal)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	goalID, ok := objectIDParam(c, "goalId")
	if !ok {
		return
	}
	var req updateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := bson.M{}
	if req.GoalName != nil {
		fields["goalName"] = *req.GoalName
	}
	if req.TargetAmount != nil {
		fields["targetAmount"] = *req.TargetAmount
	}
	if req.TargetDate != nil {
		fields["targetDate"] = *req.TargetDate
	}

	goal, err := h.store.UpdateGoal(c.Request.Context(), user.ID, goalID, fields)
	if err != nil {
		h.serverError(c, "update goal", err)
		return
	}
	if goal == nil {
		notFound(c, "Goal")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityGoals)
	h.cache.InvalidateGoal(c.Request.Context(), goalID.Hex())
	c.JSON(http.StatusOK, goal)
}

// ContributeToGoal adds money to an in-progress goal; completion is decided
// by the same store update that applies the amount.
func (h *Handler) ContributeToGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	goalID, ok := objectIDParam(c, "goalId")
	if !ok {
		return
	}
	var req moneyRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.store.ContributeToGoal(c.Request.Context(), user.ID, goalID, req.Amount)
	if err != nil {
		h.serverError(c, "contribute to goal", err)
		return
	}
	if goal == nil {
		existing, err := h.store.GetGoal(c.Request.Context(), user.ID, goalID)
		if err != nil {
			h.serverError(c, "fetch goal", err)
			return
		}
		if existing == nil {
			notFound(c, "Goal")
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "This goal has already been completed."})
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityGoals)
	h.cache.InvalidateGoal(c.Request.Context(), goalID.Hex())
	c.JSON(http.StatusOK, goal)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	goalID, ok := objectIDParam(c, "goalId")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteGoal(c.Request.Context(), user.ID, goalID)
	if err != nil {
		h.serverError(c, "delete goal", err)
		return
	}
	if !deleted {
		notFound(c, "Goal")
		return
	}

	h.cache.Invalidate(c.Request.Context(), user.Email, cache.EntityGoals)
	h.cache.InvalidateGoal(c.Request.Context(), goalID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully."})
}
