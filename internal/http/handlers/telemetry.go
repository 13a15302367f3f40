package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/http/response"
	"github.com/gitfit/gitfit-backend/internal/pkg/ctxutil"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type TelemetryHandler struct {
	telemetry services.TelemetryService
}

func NewTelemetryHandler(telemetry services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry}
}

type performanceIngestRequest struct {
	Records []services.PerformanceInput `json:"records"`
}

func (h *TelemetryHandler) IngestPerformance(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req performanceIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	records, err := h.telemetry.IngestPerformance(c.Request.Context(), rd.UserID, req.Records)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingested": len(records), "records": records})
}

type strainIngestRequest struct {
	Samples []services.StrainSampleInput `json:"samples"`
}

func (h *TelemetryHandler) IngestStrain(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req strainIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	samples, err := h.telemetry.IngestStrain(c.Request.Context(), rd.UserID, req.Samples)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingested": len(samples), "samples": samples})
}
