package repository

import (
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportReportToJSON(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error)
	ExportReportToCSV(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error)
	ExportReportToPDF(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error)
}
