package models

import "time"

type Assignment struct {
	ID                    int        `json:"id" db:"id"`
	AssetID               int        `json:"asset_id" db:"asset_id"`
	EmployeeName          string     `json:"employee_name" db:"employee_name"`
	DepartmentID          *int       `json:"department_id,omitempty" db:"department_id"`
	AssignedByID          int        `json:"assigned_by_id" db:"assigned_by_id"`
	AssignedDate          time.Time  `json:"assigned_date" db:"assigned_date"`
	ConditionAtAssignment string     `json:"condition_at_assignment,omitempty" db:"condition_at_assignment"`
	ReturnDate            *time.Time `json:"return_date,omitempty" db:"return_date"`
	ConditionAtReturn     *string    `json:"condition_at_return,omitempty" db:"condition_at_return"`
	ReceivedByID          *int       `json:"received_by_id,omitempty" db:"received_by_id"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// Open reports whether the assignment has not yet been closed by a return.
func (a *Assignment) Open() bool {
	return a.ReturnDate == nil
}

type AssignmentRequest struct {
	AssetID               int        `json:"asset_id" binding:"required"`
	EmployeeName          string     `json:"employee_name" binding:"required"`
	DepartmentID          *int       `json:"department_id"`
	AssignedDate          *time.Time `json:"assigned_date"`
	ConditionAtAssignment string     `json:"condition_at_assignment"`
}

type ReturnRequest struct {
	AssignmentID      int    `json:"assignment_id" binding:"required"`
	ConditionAtReturn string `json:"condition_at_return"`
}
