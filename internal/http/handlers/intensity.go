package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/http/response"
	"github.com/gitfit/gitfit-backend/internal/pkg/ctxutil"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type IntensityHandler struct {
	intensity services.IntensityService
}

func NewIntensityHandler(intensity services.IntensityService) *IntensityHandler {
	return &IntensityHandler{intensity: intensity}
}

func (h *IntensityHandler) ScoreSet(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req services.ScoreSetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	record, err := h.intensity.ScoreSet(c.Request.Context(), rd.UserID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"record": record})
}

func (h *IntensityHandler) GetScoreHistory(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var exerciseID *uuid.UUID
	if raw := c.Query("exercise_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_exercise_id", err)
			return
		}
		exerciseID = &id
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = n
	}

	history, err := h.intensity.GetScoreHistory(c.Request.Context(), rd.UserID, exerciseID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, history)
}
