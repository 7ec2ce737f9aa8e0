package container

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/admins"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/assets"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/assignments"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/auditlog"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/departments"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/history"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/locations"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repairs"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/reports"
	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type Container struct {
	Repository        *repository.Repository
	AuditRecorder     *auditlog.Recorder
	LoginHandler      *security.LoginHandler
	AssetHandler      *assets.AssetHandler
	AssignmentHandler *assignments.AssignmentHandler
	RepairHandler     *repairs.RepairHandler
	LocationHandler   *locations.LocationHandler
	DepartmentHandler *departments.DepartmentHandler
	AdminHandler      *admins.AdminHandler
	AuditLogHandler   *auditlog.AuditLogHandler
	ReportHandler     *reports.ReportHandler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	auditRepo := auditlog.NewRepository(repo)
	auditRecorder := auditlog.NewRecorder(auditRepo, log)

	historyRepo := history.NewRepository(repo)
	historyRecorder := history.NewRecorder(historyRepo, log)

	locationRepo := locations.NewLocationRepository(repo)
	departmentRepo := departments.NewDepartmentRepository(repo)
	assetRepo := assets.NewRepository(repo)
	assignmentRepo := assignments.NewRepository(repo)
	requestRepo := repairs.NewRequestRepository(repo)
	repairRepo := repairs.NewRepairRepository(repo)

	assetService := assets.NewAssetService(repo, assetRepo, locationRepo, historyRecorder)
	assignmentService := assignments.NewAssignmentService(repo, assignmentRepo, assetRepo, departmentRepo, historyRecorder)
	requestService := repairs.NewRequestService(repo, requestRepo, repairRepo, assetRepo, departmentRepo, historyRecorder)
	repairService := repairs.NewRepairService(repo, repairRepo, requestRepo, assetRepo, historyRecorder)

	c := &Container{
		Repository:        repo,
		AuditRecorder:     auditRecorder,
		LoginHandler:      security.NewLoginHandler(repo),
		AssetHandler:      assets.NewAssetHandler(assetService, historyRepo),
		AssignmentHandler: assignments.NewHandler(assignmentService),
		RepairHandler:     repairs.NewHandler(requestService, repairService),
		LocationHandler:   locations.NewLocationHandler(locationRepo),
		DepartmentHandler: departments.NewDepartmentHandler(departmentRepo),
		AdminHandler:      admins.NewAdminHandler(admins.NewAdminRepository(repo)),
		AuditLogHandler:   auditlog.NewHandler(auditRepo),
	}

	// The spreadsheet export is optional; without Google credentials the rest
	// of the API still runs.
	if reportService, err := reports.NewReportService(assetRepo); err == nil {
		c.ReportHandler = reports.NewHandler(reportService)
	} else {
		log.Warn("Google Sheets export disabled", zap.Error(err))
	}

	return c
}
