package models

import "time"

// AssetEvent is one line of an asset's history feed (created, assigned,
// repaired, retired). Written best-effort by the services, never part of the
// business transaction.
type AssetEvent struct {
	ID          int       `json:"id" db:"id"`
	AssetID     int       `json:"asset_id" db:"asset_id"`
	AdminID     int       `json:"admin_id" db:"admin_id"`
	EventType   string    `json:"event_type" db:"event_type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

const (
	AssetEventCreated   = "Created"
	AssetEventUpdated   = "Updated"
	AssetEventAssigned  = "Assigned"
	AssetEventReturned  = "Returned"
	AssetEventRequested = "RepairRequested"
	AssetEventRepaired  = "Repaired"
	AssetEventRetired   = "Retired"
)
