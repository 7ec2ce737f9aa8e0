package models

import (
	"time"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
)

const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusDeclined = "Declined"
)

type RequestLog struct {
	ID            int    `json:"id" db:"id"`
	AssetID       int    `json:"asset_id" db:"asset_id"`
	EmployeeName  string `json:"employee_name" db:"employee_name"`
	DepartmentID  int    `json:"department_id" db:"department_id"`
	AdminID       int    `json:"admin_id" db:"admin_id"`
	Description   string `json:"description" db:"description"`
	RequestStatus string `json:"request_status" db:"request_status"`
	// PriorStatus is the asset status at request creation; a declined request
	// restores the asset to exactly this value.
	PriorStatus metadata.Status `json:"prior_status" db:"prior_status"`
	RequestDate time.Time       `json:"request_date" db:"request_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

func (r *RequestLog) Pending() bool {
	return r.RequestStatus == RequestStatusPending
}

type RepairRequestCreate struct {
	AssetID      int    `json:"asset_id" binding:"required"`
	EmployeeName string `json:"employee_name" binding:"required"`
	DepartmentID int    `json:"department_id" binding:"required"`
	Description  string `json:"description" binding:"required"`
}

type RequestStatusUpdate struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks"`
}
