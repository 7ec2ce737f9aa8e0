package assignments

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type assignmentStore interface {
	InsertAssignment(tx *goqu.TxDatabase, req models.AssignmentRequest, adminID int) (*models.Assignment, error)
	GetAssignmentForUpdate(tx *goqu.TxDatabase, id int) (*models.Assignment, error)
	CloseAssignment(tx *goqu.TxDatabase, id int, returnDate time.Time, condition string, receivedByID int) error
	GetAssignment(id int) (*models.Assignment, error)
	GetAssignments() ([]models.Assignment, error)
}

type assetStore interface {
	GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error)
	Transition(tx *goqu.TxDatabase, assetID int, event metadata.Event) error
}

type departmentStore interface {
	Exists(id int) (bool, error)
}

type eventRecorder interface {
	Record(assetID, adminID int, eventType, description string)
}

type AssignmentService struct {
	repo        *repository.Repository
	assignments assignmentStore
	assets      assetStore
	departments departmentStore
	history     eventRecorder
}

func NewAssignmentService(repo *repository.Repository, assignments assignmentStore, assets assetStore, departments departmentStore, history eventRecorder) *AssignmentService {
	return &AssignmentService{
		repo:        repo,
		assignments: assignments,
		assets:      assets,
		departments: departments,
		history:     history,
	}
}

// Assign hands an available asset to an employee. The legality check and
// both writes share one transaction, so of two concurrent assigns on the
// same asset exactly one commits.
func (s *AssignmentService) Assign(adminID int, req models.AssignmentRequest) (*models.Assignment, error) {
	if req.DepartmentID != nil {
		exists, err := s.departments.Exists(*req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NotFound("department %d not found", *req.DepartmentID)
		}
	}

	var assignment *models.Assignment

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.GetAssetForUpdate(tx, req.AssetID)
		if err != nil {
			return err
		}
		if asset.IsDeleted {
			return apperrors.AlreadyDeleted("asset %d has been deleted", asset.ID)
		}
		if !asset.Status.Allows(metadata.EventAssign) {
			return apperrors.Conflict("asset %d is not available for assignment (status %s)", asset.ID, asset.Status)
		}

		assignment, err = s.assignments.InsertAssignment(tx, req, adminID)
		if err != nil {
			return err
		}

		return s.assets.Transition(tx, req.AssetID, metadata.EventAssign)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(req.AssetID, adminID, models.AssetEventAssigned,
		fmt.Sprintf("Asset assigned to %s", req.EmployeeName))

	return assignment, nil
}

// Return closes an open assignment and makes the asset available again.
func (s *AssignmentService) Return(adminID int, req models.ReturnRequest) (*models.Assignment, error) {
	var assignment *models.Assignment

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		assignment, err = s.assignments.GetAssignmentForUpdate(tx, req.AssignmentID)
		if err != nil {
			return err
		}
		if !assignment.Open() {
			return apperrors.Conflict("assignment %d has already been returned", assignment.ID)
		}

		returnDate := time.Now()
		if err := s.assignments.CloseAssignment(tx, assignment.ID, returnDate, req.ConditionAtReturn, adminID); err != nil {
			return err
		}

		assignment.ReturnDate = &returnDate
		assignment.ConditionAtReturn = &req.ConditionAtReturn
		assignment.ReceivedByID = &adminID

		return s.assets.Transition(tx, assignment.AssetID, metadata.EventReturn)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(assignment.AssetID, adminID, models.AssetEventReturned,
		fmt.Sprintf("Asset returned by %s", assignment.EmployeeName))

	return assignment, nil
}

func (s *AssignmentService) Get(id int) (*models.Assignment, error) {
	return s.assignments.GetAssignment(id)
}

func (s *AssignmentService) List() ([]models.Assignment, error) {
	return s.assignments.GetAssignments()
}
