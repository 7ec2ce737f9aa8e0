package history

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type HistoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *HistoryRepository {
	return &HistoryRepository{repository: r}
}

func (r *HistoryRepository) PersistEvent(event models.AssetEvent) error {
	query := r.repository.GoquDBWrapper.Insert("asset_events").
		Rows(goqu.Record{
			"asset_id":    event.AssetID,
			"admin_id":    event.AdminID,
			"event_type":  event.EventType,
			"description": event.Description,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return apperrors.Infrastructure("failed to insert asset event", err)
	}

	return nil
}

func (r *HistoryRepository) GetAssetEvents(assetID int) ([]models.AssetEvent, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("asset_events").As("e")).
		Select(
			goqu.I("e.id").As("id"),
			goqu.I("e.asset_id").As("asset_id"),
			goqu.I("e.admin_id").As("admin_id"),
			goqu.I("e.event_type").As("event_type"),
			goqu.I("e.description").As("description"),
			goqu.I("e.created_at").As("created_at"),
		).
		Where(goqu.Ex{"e.asset_id": assetID}).
		Order(goqu.I("e.created_at").Desc())

	var events []models.AssetEvent
	if err := query.Executor().ScanStructs(&events); err != nil {
		return nil, apperrors.Infrastructure("failed to select asset events", err)
	}

	return events, nil
}
