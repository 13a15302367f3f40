package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/http/response"
	"github.com/gitfit/gitfit-backend/internal/pkg/ctxutil"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type AdjustmentHandler struct {
	policy  services.PolicyService
	rewards services.RewardService
}

func NewAdjustmentHandler(policy services.PolicyService, rewards services.RewardService) *AdjustmentHandler {
	return &AdjustmentHandler{policy: policy, rewards: rewards}
}

func (h *AdjustmentHandler) Choose(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req services.ChooseAdjustmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.policy.ChooseAdjustmentOrder(c.Request.Context(), rd.UserID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

type recordOutcomeRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	WeekStart  time.Time `json:"week_start"`
}

func (h *AdjustmentHandler) RecordOutcome(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req recordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.policy.RecordOutcome(c.Request.Context(), rd.UserID, req.ExerciseID, req.WeekStart)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *AdjustmentHandler) ComputeReward(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	exerciseID, err := uuid.Parse(c.Query("exercise_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_exercise_id", err)
		return
	}
	weekStart, err := time.Parse(time.RFC3339, c.Query("week_start"))
	if err != nil {
		// Date-only form is the common caller shape.
		weekStart, err = time.Parse("2006-01-02", c.Query("week_start"))
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_week_start", err)
			return
		}
	}

	breakdown, err := h.rewards.ComputeReward(c.Request.Context(), rd.UserID, exerciseID, weekStart)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, breakdown)
}

func (h *AdjustmentHandler) LogAchievement(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req services.LogAchievementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	achievement, err := h.policy.LogAchievement(c.Request.Context(), rd.UserID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"achievement": achievement})
}

func (h *AdjustmentHandler) GetPolicy(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	policy, err := h.policy.GetPolicy(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"policy": policy})
}
