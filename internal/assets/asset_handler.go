package assets

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type historyReader interface {
	GetAssetEvents(assetID int) ([]models.AssetEvent, error)
}

type AssetHandler struct {
	service *AssetService
	history historyReader
}

func NewAssetHandler(service *AssetService, history historyReader) *AssetHandler {
	return &AssetHandler{service: service, history: history}
}

func (h *AssetHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/assets", h.ListAssets)
	router.GET("/assets/:id", h.GetAsset)
	router.GET("/assets/:id/history", h.GetAssetHistory)
	router.POST("/assets", security.Authorize("admin"), h.CreateAsset)
	router.PATCH("/assets/:id", security.Authorize("admin"), h.UpdateAsset)
	router.DELETE("/assets/:id", security.Authorize("admin"), h.DeleteAsset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	asset, err := h.service.Create(security.AdminID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Asset id must be an integer"})
		return
	}

	asset, err := h.service.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	locationID, _ := strconv.Atoi(c.Query("location_id"))

	assets, err := h.service.List(c.Query("status"), c.Query("type"), locationID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAssetHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Asset id must be an integer"})
		return
	}

	events, err := h.history.GetAssetEvents(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(events), "events": events})
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Asset id must be an integer"})
		return
	}

	var req models.AssetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	asset, err := h.service.Update(security.AdminID(c), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Asset id must be an integer"})
		return
	}

	asset, err := h.service.SoftDelete(security.AdminID(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
