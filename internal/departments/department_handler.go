package departments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type DepartmentHandler struct {
	Repository *DepartmentRepository
}

func NewDepartmentHandler(r *DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{Repository: r}
}

func (h *DepartmentHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/departments", h.GetDepartments)
	router.POST("/departments", security.Authorize("admin"), h.CreateDepartment)
	router.DELETE("/departments/:id", security.Authorize("admin"), h.RemoveDepartment)
}

func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	departments, err := h.Repository.GetDepartments()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, departments)
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var department models.Department
	if err := c.ShouldBindJSON(&department); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}

	if err := h.Repository.PersistDepartment(&department); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) RemoveDepartment(c *gin.Context) {
	if err := h.Repository.RemoveDepartment(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
