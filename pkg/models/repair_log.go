package models

import "time"

const (
	RepairStatusPending    = "Pending"
	RepairStatusInProgress = "InProgress"
	RepairStatusCompleted  = "Completed"
)

type RepairLog struct {
	ID           int       `json:"id" db:"id"`
	AssetID      int       `json:"asset_id" db:"asset_id"`
	RequestLogID *int      `json:"request_log_id,omitempty" db:"request_log_id"`
	AdminID      int       `json:"admin_id" db:"admin_id"`
	Description  string    `json:"description" db:"description"`
	RepairCost   float64   `json:"repair_cost" db:"repair_cost"`
	RepairedBy   string    `json:"repaired_by" db:"repaired_by"`
	RepairStatus string    `json:"repair_status" db:"repair_status"`
	RepairDate   time.Time `json:"repair_date" db:"repair_date"`
	Remarks      *string   `json:"remarks,omitempty" db:"remarks"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Open reports whether the repair still blocks other repairs on the asset.
func (r *RepairLog) Open() bool {
	return r.RepairStatus != RepairStatusCompleted
}

type RepairCreate struct {
	Description  string  `json:"description" binding:"required"`
	RepairCost   float64 `json:"repair_cost"`
	RepairedBy   string  `json:"repaired_by" binding:"required"`
	RequestLogID *int    `json:"request_log_id"`
}

type RepairComplete struct {
	Remarks string `json:"remarks"`
}

type MaintenanceRequest struct {
	AssetIDs    []int   `json:"asset_ids" binding:"required,min=1"`
	Description string  `json:"description" binding:"required"`
	RepairedBy  string  `json:"repaired_by" binding:"required"`
	RepairCost  float64 `json:"repair_cost"`
}
