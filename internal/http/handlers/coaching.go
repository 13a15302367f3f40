package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/http/response"
	"github.com/gitfit/gitfit-backend/internal/pkg/ctxutil"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type CoachingHandler struct {
	coaching services.CoachingService
}

func NewCoachingHandler(coaching services.CoachingService) *CoachingHandler {
	return &CoachingHandler{coaching: coaching}
}

func (h *CoachingHandler) ClassifyStrain(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req services.ClassifyStrainInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.coaching.ClassifyStrain(c.Request.Context(), rd.UserID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *CoachingHandler) GetContext(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	coachingCtx, err := h.coaching.GetContext(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"context": coachingCtx})
}
