package assignments

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type AssignmentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssignmentRepository {
	return &AssignmentRepository{repository: r}
}

func (r *AssignmentRepository) InsertAssignment(tx *goqu.TxDatabase, req models.AssignmentRequest, adminID int) (*models.Assignment, error) {
	assignedDate := time.Now()
	if req.AssignedDate != nil {
		assignedDate = *req.AssignedDate
	}

	record := goqu.Record{
		"asset_id":                req.AssetID,
		"employee_name":           req.EmployeeName,
		"assigned_by_id":          adminID,
		"assigned_date":           assignedDate,
		"condition_at_assignment": req.ConditionAtAssignment,
	}
	if req.DepartmentID != nil {
		record["department_id"] = *req.DepartmentID
	}

	var id int
	query := tx.Insert("asset_assignments").Rows(record).Returning("id")
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return nil, apperrors.WrapDBError("insert assignment", err)
	}

	return &models.Assignment{
		ID:                    id,
		AssetID:               req.AssetID,
		EmployeeName:          req.EmployeeName,
		DepartmentID:          req.DepartmentID,
		AssignedByID:          adminID,
		AssignedDate:          assignedDate,
		ConditionAtAssignment: req.ConditionAtAssignment,
	}, nil
}

func (r *AssignmentRepository) GetAssignmentForUpdate(tx *goqu.TxDatabase, id int) (*models.Assignment, error) {
	query := tx.Select(
		"id", "asset_id", "employee_name", "department_id", "assigned_by_id",
		"assigned_date", "condition_at_assignment", "return_date",
		"condition_at_return", "received_by_id", "created_at", "updated_at",
	).
		From("asset_assignments").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	var assignment models.Assignment
	found, err := query.Executor().ScanStruct(&assignment)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to lock assignment row", err)
	}
	if !found {
		return nil, apperrors.NotFound("assignment %d not found", id)
	}

	return &assignment, nil
}

// CloseAssignment sets the return fields on an open assignment. The open
// check is part of the UPDATE predicate so two concurrent returns cannot
// both close the same assignment.
func (r *AssignmentRepository) CloseAssignment(tx *goqu.TxDatabase, id int, returnDate time.Time, condition string, receivedByID int) error {
	result, err := tx.Update("asset_assignments").
		Set(goqu.Record{
			"return_date":         returnDate,
			"condition_at_return": condition,
			"received_by_id":      receivedByID,
			"updated_at":          time.Now(),
		}).
		Where(goqu.Ex{"id": id, "return_date": nil}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.Infrastructure("failed to close assignment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.Conflict("assignment %d has already been returned", id)
	}

	return nil
}

func (r *AssignmentRepository) GetAssignment(id int) (*models.Assignment, error) {
	query := r.getAssignmentQuery().Where(goqu.Ex{"id": id})

	var assignment models.Assignment
	found, err := query.Executor().ScanStruct(&assignment)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select assignment", err)
	}
	if !found {
		return nil, apperrors.NotFound("assignment %d not found", id)
	}

	return &assignment, nil
}

func (r *AssignmentRepository) GetAssignments() ([]models.Assignment, error) {
	query := r.getAssignmentQuery().Order(goqu.I("created_at").Desc())

	var assignments []models.Assignment
	if err := query.Executor().ScanStructs(&assignments); err != nil {
		return nil, apperrors.Infrastructure("unable to select assignments", err)
	}

	return assignments, nil
}

// HasOpenAssignment reports whether an unreturned assignment exists for the
// asset.
func (r *AssignmentRepository) HasOpenAssignment(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var one int
	found, err := tx.Select(goqu.L("1")).
		From("asset_assignments").
		Where(goqu.Ex{"asset_id": assetID, "return_date": nil}).
		Executor().
		ScanVal(&one)
	if err != nil {
		return false, apperrors.Infrastructure("unable to check open assignment", err)
	}

	return found, nil
}

func (r *AssignmentRepository) getAssignmentQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		"id", "asset_id", "employee_name", "department_id", "assigned_by_id",
		"assigned_date", "condition_at_assignment", "return_date",
		"condition_at_return", "received_by_id", "created_at", "updated_at",
	).From("asset_assignments")
}
