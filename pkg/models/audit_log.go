package models

import (
	"encoding/json"
	"time"
)

// AuditLog is one append-only record per privileged mutation: who did what,
// with which payload (sensitive fields masked) and what came back.
type AuditLog struct {
	ID          int                    `json:"id" db:"id"`
	AdminID     int                    `json:"admin_id" db:"admin_id"`
	IPAddress   string                 `json:"ip_address" db:"ip_address"`
	Action      map[string]interface{} `json:"action" db:"-"`
	Request     map[string]interface{} `json:"request" db:"-"`
	Response    map[string]interface{} `json:"response" db:"-"`
	ActionRaw   string                 `json:"-" db:"action"`
	RequestRaw  string                 `json:"-" db:"request"`
	ResponseRaw string                 `json:"-" db:"response"`
	TimeElapsed int64                  `json:"time_elapsed" db:"time_elapsed"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
}

func (a *AuditLog) LoadFromDB() {
	if a.ActionRaw != "" {
		_ = json.Unmarshal([]byte(a.ActionRaw), &a.Action)
	}
	if a.RequestRaw != "" {
		_ = json.Unmarshal([]byte(a.RequestRaw), &a.Request)
	}
	if a.ResponseRaw != "" {
		_ = json.Unmarshal([]byte(a.ResponseRaw), &a.Response)
	}
}
