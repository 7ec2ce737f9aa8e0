package repairs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type RepairHandler struct {
	requests *RequestService
	repairs  *RepairService
}

func NewHandler(requests *RequestService, repairs *RepairService) *RepairHandler {
	return &RepairHandler{requests: requests, repairs: repairs}
}

func (h *RepairHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/requests", h.ListRequests)
	router.GET("/requests/:id", h.GetRequest)
	router.POST("/requests", security.Authorize("manager"), h.CreateRequest)
	router.PATCH("/requests/:id/status", security.Authorize("admin"), h.UpdateRequestStatus)

	router.GET("/repairs", h.ListRepairs)
	router.GET("/repairs/:id", h.GetRepair)
	router.POST("/assets/:id/repairs", security.Authorize("manager"), h.LogRepair)
	router.PATCH("/repairs/:id/complete", security.Authorize("manager"), h.CompleteRepair)
	router.POST("/repairs/maintenance", security.Authorize("admin"), h.CreateGeneralMaintenance)
}

func (h *RepairHandler) CreateRequest(c *gin.Context) {
	var req models.RepairRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	request, err := h.requests.CreateRequest(security.AdminID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RepairHandler) UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Request id must be an integer"})
		return
	}

	var upd models.RequestStatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	request, err := h.requests.UpdateStatus(security.AdminID(c), id, upd)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RepairHandler) GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Request id must be an integer"})
		return
	}

	request, err := h.requests.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RepairHandler) ListRequests(c *gin.Context) {
	requests, err := h.requests.List(c.Query("status"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(requests), "requests": requests})
}

func (h *RepairHandler) LogRepair(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Asset id must be an integer"})
		return
	}

	var req models.RepairCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	repair, err := h.repairs.LogRepair(security.AdminID(c), assetID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, repair)
}

func (h *RepairHandler) CompleteRepair(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Repair id must be an integer"})
		return
	}

	var req models.RepairComplete
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	repair, err := h.repairs.CompleteRepair(security.AdminID(c), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, repair)
}

func (h *RepairHandler) CreateGeneralMaintenance(c *gin.Context) {
	var req models.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	repairs, err := h.repairs.CreateGeneralMaintenance(security.AdminID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"results": len(repairs), "repairs": repairs})
}

func (h *RepairHandler) GetRepair(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Repair id must be an integer"})
		return
	}

	repair, err := h.repairs.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, repair)
}

func (h *RepairHandler) ListRepairs(c *gin.Context) {
	repairs, err := h.repairs.List(c.Query("status"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(repairs), "repairs": repairs})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
