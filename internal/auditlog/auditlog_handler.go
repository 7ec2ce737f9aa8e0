package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type logReader interface {
	GetAuditLogs(limit int) ([]models.AuditLog, error)
}

type AuditLogHandler struct {
	repo logReader
}

func NewHandler(repo logReader) *AuditLogHandler {
	return &AuditLogHandler{repo: repo}
}

func (h *AuditLogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/audit-logs", security.Authorize("admin"), h.ListAuditLogs)
}

func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.repo.GetAuditLogs(limit)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
			"kind":  apperrors.KindOf(err),
			"error": apperrors.Message(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(logs), "audit_logs": logs})
}
