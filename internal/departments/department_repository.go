package departments

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type DepartmentRepository struct {
	repository *repository.Repository
}

func NewDepartmentRepository(r *repository.Repository) *DepartmentRepository {
	return &DepartmentRepository{repository: r}
}

func (r *DepartmentRepository) GetDepartments() ([]models.Department, error) {
	var departments []models.Department
	err := r.repository.GoquDBWrapper.
		From("departments").
		Select("id", "name", "created_at").
		Order(goqu.I("name").Asc()).
		Executor().
		ScanStructs(&departments)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select departments", err)
	}

	return departments, nil
}

func (r *DepartmentRepository) Exists(id int) (bool, error) {
	var one int
	found, err := r.repository.GoquDBWrapper.
		Select(goqu.L("1")).
		From("departments").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&one)
	if err != nil {
		return false, apperrors.Infrastructure("unable to check department", err)
	}

	return found, nil
}

func (r *DepartmentRepository) PersistDepartment(department *models.Department) error {
	query := r.repository.GoquDBWrapper.Insert("departments").
		Rows(goqu.Record{"name": department.Name}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&department.ID); err != nil {
		return apperrors.WrapDBError("insert department", err)
	}

	return nil
}

func (r *DepartmentRepository) RemoveDepartment(id string) error {
	_, err := r.repository.GoquDBWrapper.
		Delete("departments").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.WrapDBError("delete department", err)
	}

	return nil
}
