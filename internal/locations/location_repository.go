package locations

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type LocationRepository struct {
	repository *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{repository: r}
}

func (r *LocationRepository) GetLocations() ([]models.Location, error) {
	var locations []models.Location
	err := r.repository.GoquDBWrapper.
		From("locations").
		Select("id", "name", "address").
		Order(goqu.I("id").Asc()).
		Executor().
		ScanStructs(&locations)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select locations", err)
	}

	return locations, nil
}

func (r *LocationRepository) Exists(id int) (bool, error) {
	var one int
	found, err := r.repository.GoquDBWrapper.
		Select(goqu.L("1")).
		From("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&one)
	if err != nil {
		return false, apperrors.Infrastructure("unable to check location", err)
	}

	return found, nil
}

func (r *LocationRepository) PersistLocation(location *models.Location) error {
	query := r.repository.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":    location.Name,
			"address": location.Address,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		return apperrors.WrapDBError("insert location", err)
	}

	return nil
}

func (r *LocationRepository) RemoveLocation(id string) error {
	_, err := r.repository.GoquDBWrapper.
		Delete("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.WrapDBError("delete location", err)
	}

	return nil
}
