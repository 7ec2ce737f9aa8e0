package repairs

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type RequestRepository struct {
	repository *repository.Repository
}

func NewRequestRepository(r *repository.Repository) *RequestRepository {
	return &RequestRepository{repository: r}
}

func (r *RequestRepository) InsertRequest(tx *goqu.TxDatabase, req models.RepairRequestCreate, adminID int, priorStatus metadata.Status) (*models.RequestLog, error) {
	requestDate := time.Now()

	var id int
	query := tx.Insert("request_logs").
		Rows(goqu.Record{
			"asset_id":       req.AssetID,
			"employee_name":  req.EmployeeName,
			"department_id":  req.DepartmentID,
			"admin_id":       adminID,
			"description":    req.Description,
			"request_status": models.RequestStatusPending,
			"prior_status":   string(priorStatus),
			"request_date":   requestDate,
		}).
		Returning("id")
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, apperrors.WrapDBError("insert request log", err)
	}

	return &models.RequestLog{
		ID:            id,
		AssetID:       req.AssetID,
		EmployeeName:  req.EmployeeName,
		DepartmentID:  req.DepartmentID,
		AdminID:       adminID,
		Description:   req.Description,
		RequestStatus: models.RequestStatusPending,
		PriorStatus:   priorStatus,
		RequestDate:   requestDate,
	}, nil
}

func (r *RequestRepository) GetRequestForUpdate(tx *goqu.TxDatabase, id int) (*models.RequestLog, error) {
	query := tx.Select(
		"id", "asset_id", "employee_name", "department_id", "admin_id",
		"description", "request_status", "prior_status", "request_date",
		"created_at", "updated_at",
	).
		From("request_logs").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	var request models.RequestLog
	found, err := query.Executor().ScanStruct(&request)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to lock request log row", err)
	}
	if !found {
		return nil, apperrors.NotFound("request %d not found", id)
	}

	return &request, nil
}

func (r *RequestRepository) HasPendingRequest(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var one int
	found, err := tx.Select(goqu.L("1")).
		From("request_logs").
		Where(goqu.Ex{"asset_id": assetID, "request_status": models.RequestStatusPending}).
		Executor().
		ScanVal(&one)
	if err != nil {
		return false, apperrors.Infrastructure("unable to check pending request", err)
	}

	return found, nil
}

// SetRequestStatus resolves a pending request exactly once: the pending
// predicate is part of the UPDATE so a request can never be processed twice.
func (r *RequestRepository) SetRequestStatus(tx *goqu.TxDatabase, id int, status string) error {
	result, err := tx.Update("request_logs").
		Set(goqu.Record{
			"request_status": status,
			"updated_at":     time.Now(),
		}).
		Where(goqu.Ex{"id": id, "request_status": models.RequestStatusPending}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.Infrastructure("failed to update request status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.Conflict("request %d has already been processed", id)
	}

	return nil
}

func (r *RequestRepository) GetRequest(id int) (*models.RequestLog, error) {
	query := r.getRequestQuery().Where(goqu.Ex{"id": id})

	var request models.RequestLog
	found, err := query.Executor().ScanStruct(&request)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select request log", err)
	}
	if !found {
		return nil, apperrors.NotFound("request %d not found", id)
	}

	return &request, nil
}

func (r *RequestRepository) GetRequests(status string) ([]models.RequestLog, error) {
	query := r.getRequestQuery()
	if status != "" {
		query = query.Where(goqu.Ex{"request_status": status})
	}
	query = query.Order(goqu.I("created_at").Desc())

	var requests []models.RequestLog
	if err := query.Executor().ScanStructs(&requests); err != nil {
		return nil, apperrors.Infrastructure("unable to select request logs", err)
	}

	return requests, nil
}

func (r *RequestRepository) getRequestQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"id", "asset_id", "employee_name", "department_id", "admin_id",
		"description", "request_status", "prior_status", "request_date",
		"created_at", "updated_at",
	).From("request_logs")
}
