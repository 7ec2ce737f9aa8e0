package admins

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type AdminRepository struct {
	repository *repository.Repository
}

func NewAdminRepository(r *repository.Repository) *AdminRepository {
	return &AdminRepository{repository: r}
}

func (r *AdminRepository) GetAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	err := r.repository.GoquDBWrapper.
		From("admins").
		Select("id", "first_name", "last_name", "email", "role").
		Order(goqu.I("last_name").Asc()).
		Executor().
		ScanStructs(&admins)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select admins", err)
	}

	return admins, nil
}

func (r *AdminRepository) GetAdmin(id int) (*models.Admin, error) {
	var admin models.Admin
	found, err := r.repository.GoquDBWrapper.
		From("admins").
		Select("id", "first_name", "last_name", "email", "role").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&admin)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select admin", err)
	}
	if !found {
		return nil, apperrors.NotFound("admin %d not found", id)
	}

	return &admin, nil
}

func (r *AdminRepository) PersistAdmin(admin *models.Admin) error {
	query := r.repository.GoquDBWrapper.Insert("admins").
		Rows(goqu.Record{
			"first_name":    admin.FirstName,
			"last_name":     admin.LastName,
			"email":         admin.Email,
			"password_hash": admin.PasswordHash,
			"role":          admin.Role,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&admin.ID); err != nil {
		return apperrors.WrapDBError("insert admin", err)
	}

	return nil
}

func (r *AdminRepository) UpdateRole(id int, role string) error {
	result, err := r.repository.GoquDBWrapper.
		Update("admins").
		Set(goqu.Record{"role": role}).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.WrapDBError("update admin role", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("admin %d not found", id)
	}

	return nil
}
