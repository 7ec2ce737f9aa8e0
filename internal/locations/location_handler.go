package locations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type LocationHandler struct {
	Repository *LocationRepository
}

func NewLocationHandler(r *LocationRepository) *LocationHandler {
	return &LocationHandler{Repository: r}
}

func (h *LocationHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/locations", h.GetLocations)
	router.POST("/locations", security.Authorize("admin"), h.CreateLocation)
	router.DELETE("/locations/:id", security.Authorize("admin"), h.RemoveLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.Repository.GetLocations()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	if err := h.Repository.PersistLocation(&location); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) RemoveLocation(c *gin.Context) {
	if err := h.Repository.RemoveLocation(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
