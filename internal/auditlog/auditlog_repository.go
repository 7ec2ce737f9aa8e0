package auditlog

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistLog(entry models.AuditLog) error {
	_, err := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"admin_id":     entry.AdminID,
			"ip_address":   entry.IPAddress,
			"action":       entry.ActionRaw,
			"request":      entry.RequestRaw,
			"response":     entry.ResponseRaw,
			"time_elapsed": entry.TimeElapsed,
		}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.WrapDBError("insert audit log", err)
	}

	return nil
}

func (r *AuditLogRepository) GetAuditLogs(limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := r.repository.GoquDBWrapper.Select(
		"id", "admin_id", "ip_address", "action", "request", "response",
		"time_elapsed", "created_at",
	).
		From("audit_logs").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit))

	var logs []models.AuditLog
	if err := query.Executor().ScanStructs(&logs); err != nil {
		return nil, apperrors.Infrastructure("unable to select audit logs", err)
	}

	for i := range logs {
		logs[i].LoadFromDB()
	}

	return logs, nil
}
