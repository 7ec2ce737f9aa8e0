package security

import (
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if err := godotenv.Load(); err == nil {
			secret = os.Getenv("JWT_SECRET")
		}
	}

	if secret == "" {
		log.Println("Warning: JWT_SECRET is not set, using an insecure development secret")
		secret = "insecure-development-secret"
	}

	jwtSecret = []byte(secret)
}

func AuthenticateAdmin(email, password string, repo *repository.Repository) (*models.Admin, error) {
	var admin models.Admin

	query := repo.GoquDBWrapper.
		Select("id", "first_name", "last_name", "email", "password_hash", "role").
		From("admins").
		Where(goqu.Ex{"email": email})

	if _, err := query.Executor().ScanStruct(&admin); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &admin, nil
}

func GenerateJWT(adminID int, role string, email string) (string, error) {
	claims := jwt.MapClaims{
		"adminID": adminID,
		"role":    role,
		"email":   email,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// AdminID returns the authenticated admin id from the request context, or
// zero when the request carries no identity.
func AdminID(c *gin.Context) int {
	value, exists := c.Get("adminID")
	if !exists {
		return 0
	}

	switch id := value.(type) {
	case int:
		return id
	case float64:
		return int(id)
	default:
		return 0
	}
}
