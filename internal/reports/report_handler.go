package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type ReportHandler struct {
	service *ReportService
}

func NewHandler(service *ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/reports/assets/export", security.Authorize("admin"), h.ExportAssetRegister)
}

func (h *ReportHandler) ExportAssetRegister(c *gin.Context) {
	var req struct {
		SpreadsheetID string `json:"spreadsheet_id" binding:"required"`
		Range         string `json:"range"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	count, err := h.service.ExportAssetRegister(req.SpreadsheetID, req.Range)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
			"kind":  apperrors.KindOf(err),
			"error": apperrors.Message(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exported": count})
}
