package repairs

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type RepairRepository struct {
	repository *repository.Repository
}

func NewRepairRepository(r *repository.Repository) *RepairRepository {
	return &RepairRepository{repository: r}
}

func (r *RepairRepository) InsertRepair(tx *goqu.TxDatabase, repair models.RepairLog) (*models.RepairLog, error) {
	if repair.RepairDate.IsZero() {
		repair.RepairDate = time.Now()
	}

	record := goqu.Record{
		"asset_id":      repair.AssetID,
		"admin_id":      repair.AdminID,
		"description":   repair.Description,
		"repaired_by":   repair.RepairedBy,
		"repair_cost":   repair.RepairCost,
		"repair_status": repair.RepairStatus,
		"repair_date":   repair.RepairDate,
	}
	if repair.RequestLogID != nil {
		record["request_log_id"] = *repair.RequestLogID
	}

	var id int
	query := tx.Insert("repair_logs").Rows(record).Returning("id")
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, apperrors.WrapDBError("insert repair log", err)
	}

	repair.ID = id
	return &repair, nil
}

func (r *RepairRepository) GetRepairForUpdate(tx *goqu.TxDatabase, id int) (*models.RepairLog, error) {
	query := tx.Select(
		"id", "asset_id", "request_log_id", "admin_id", "description",
		"repaired_by", "repair_cost", "repair_status", "repair_date",
		"remarks", "created_at", "updated_at",
	).
		From("repair_logs").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	var repair models.RepairLog
	found, err := query.Executor().ScanStruct(&repair)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to lock repair log row", err)
	}
	if !found {
		return nil, apperrors.NotFound("repair %d not found", id)
	}

	return &repair, nil
}

// HasOpenRepair reports whether an unfinished repair exists for the asset.
func (r *RepairRepository) HasOpenRepair(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var one int
	found, err := tx.Select(goqu.L("1")).
		From("repair_logs").
		Where(goqu.Ex{
			"asset_id":      assetID,
			"repair_status": []string{models.RepairStatusPending, models.RepairStatusInProgress},
		}).
		Executor().
		ScanVal(&one)
	if err != nil {
		return false, apperrors.Infrastructure("unable to check open repair", err)
	}

	return found, nil
}

// CloseRepair marks a repair completed. The status predicate is part of the
// UPDATE so two concurrent completions cannot both close the same repair.
func (r *RepairRepository) CloseRepair(tx *goqu.TxDatabase, id int, remarks string) error {
	result, err := tx.Update("repair_logs").
		Set(goqu.Record{
			"repair_status": models.RepairStatusCompleted,
			"remarks":       remarks,
			"updated_at":    time.Now(),
		}).
		Where(
			goqu.Ex{"id": id},
			goqu.I("repair_status").Neq(models.RepairStatusCompleted),
		).
		Executor().
		Exec()
	if err != nil {
		return apperrors.Infrastructure("failed to complete repair", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.Conflict("repair %d has already been completed", id)
	}

	return nil
}

func (r *RepairRepository) GetRepair(id int) (*models.RepairLog, error) {
	query := r.getRepairQuery().Where(goqu.Ex{"id": id})

	var repair models.RepairLog
	found, err := query.Executor().ScanStruct(&repair)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select repair log", err)
	}
	if !found {
		return nil, apperrors.NotFound("repair %d not found", id)
	}

	return &repair, nil
}

func (r *RepairRepository) GetRepairs(status string) ([]models.RepairLog, error) {
	query := r.getRepairQuery()
	if status != "" {
		query = query.Where(goqu.Ex{"repair_status": status})
	}
	query = query.Order(goqu.I("created_at").Desc())

	var repairs []models.RepairLog
	if err := query.Executor().ScanStructs(&repairs); err != nil {
		return nil, apperrors.Infrastructure("unable to select repair logs", err)
	}

	return repairs, nil
}

func (r *RepairRepository) getRepairQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"id", "asset_id", "request_log_id", "admin_id", "description",
		"repaired_by", "repair_cost", "repair_status", "repair_date",
		"remarks", "created_at", "updated_at",
	).From("repair_logs")
}
