package assignments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type AssignmentHandler struct {
	service *AssignmentService
}

func NewHandler(service *AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func (h *AssignmentHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/assignments", h.ListAssignments)
	router.GET("/assignments/:id", h.GetAssignment)
	router.POST("/assignments", security.Authorize("manager"), h.CreateAssignment)
	router.POST("/assignments/return", security.Authorize("manager"), h.ReturnAsset)
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	assignment, err := h.service.Assign(security.AdminID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) ReturnAsset(c *gin.Context) {
	var req models.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	assignment, err := h.service.Return(security.AdminID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Assignment id must be an integer"})
		return
	}

	assignment, err := h.service.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.service.List()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(assignments), "assignments": assignments})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
