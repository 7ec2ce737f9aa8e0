package admins

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

var validRoles = map[string]bool{"viewer": true, "manager": true, "admin": true}

type AdminHandler struct {
	Repository *AdminRepository
}

func NewAdminHandler(r *AdminRepository) *AdminHandler {
	return &AdminHandler{Repository: r}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/admins", security.Authorize("admin"), h.GetAdmins)
	router.POST("/admins", security.Authorize("admin"), h.CreateAdmin)
	router.PATCH("/admins/:id/role", security.Authorize("admin"), h.UpdateRole)
}

func (h *AdminHandler) GetAdmins(c *gin.Context) {
	admins, err := h.Repository.GetAdmins()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		Role      string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Invalid request payload"})
		return
	}
	if !validRoles[req.Role] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Role must be viewer, manager or admin"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		abortWithError(c, apperrors.Infrastructure("failed to hash password", err))
		return
	}

	admin := models.Admin{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := h.Repository.PersistAdmin(&admin); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Admin id must be an integer"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validRoles[req.Role] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"kind": apperrors.KindValidation, "error": "Role must be viewer, manager or admin"})
		return
	}

	if err := h.Repository.UpdateRole(id, req.Role); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"kind":  apperrors.KindOf(err),
		"error": apperrors.Message(err),
	})
}
