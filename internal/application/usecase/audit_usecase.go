package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/domain/repository"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/metrics"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AuditUseCase executa os detectores de recursos ociosos e publica o relatório.
type AuditUseCase struct {
	awsRepo    repository.AWSRepository
	notifier   repository.NotificationRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	cfg        *types.Config
	log        *logger.Logger
	metrics    *metrics.Recorder

	now      func() time.Time
	newRunID func() string
}

// NewAuditUseCase creates a new audit use case.
func NewAuditUseCase(
	awsRepo repository.AWSRepository,
	notifier repository.NotificationRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	cfg *types.Config,
	log *logger.Logger,
) *AuditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{
		awsRepo:    awsRepo,
		notifier:   notifier,
		exportRepo: exportRepo,
		console:    console,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// SetMetrics enables Prometheus instrumentation of every run.
func (uc *AuditUseCase) SetMetrics(rec *metrics.Recorder) {
	uc.metrics = rec
}

// detector fills one category of the report. Each detector writes a distinct
// field, so they may run concurrently.
type detector struct {
	name string
	run  func(ctx context.Context, report *entity.AuditReport) error
}

func (uc *AuditUseCase) detectors(threshold time.Time) []detector {
	return []detector{
		{"snapshots", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.UnusedSnapshots, err = uc.awsRepo.GetStaleSnapshots(ctx)
			return err
		}},
		{"volumes", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.UnusedVolumes, err = uc.awsRepo.GetOldUnusedVolumes(ctx, threshold)
			return err
		}},
		{"load-balancers", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.LoadBalancers, err = uc.awsRepo.GetLoadBalancersWithoutTargets(ctx)
			return err
		}},
		{"nat-gateways", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.UnattachedNATGateways, err = uc.awsRepo.GetIdleNatGateways(ctx)
			return err
		}},
		{"elastic-ips", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.UnattachedElasticIPs, err = uc.awsRepo.GetUnattachedElasticIPs(ctx)
			return err
		}},
		{"stopped-instances", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.StoppedInstances, err = uc.awsRepo.GetLongStoppedInstances(ctx, threshold)
			return err
		}},
		{"buckets", func(ctx context.Context, report *entity.AuditReport) (err error) {
			report.UnusedBuckets, err = uc.awsRepo.GetUnusedBuckets(ctx, threshold, uc.cfg.ThresholdDays)
			return err
		}},
	}
}

// RunAudit executa uma auditoria completa. O threshold é recalculado a cada
// chamada, então execuções repetidas no mesmo processo não reutilizam datas antigas.
// Qualquer erro de detector aborta a execução antes da publicação.
func (uc *AuditUseCase) RunAudit(ctx context.Context) (entity.AuditRun, entity.AuditReport, error) {
	started := uc.now().UTC()
	run := entity.AuditRun{
		RunID:     uc.newRunID(),
		Region:    uc.awsRepo.Region(),
		Threshold: started.AddDate(0, 0, -uc.cfg.ThresholdDays),
		StartedAt: started,
	}
	log := uc.log.WithFields(map[string]interface{}{
		"run_id":    run.RunID,
		"threshold": run.Threshold.Format(time.RFC3339),
	})
	log.Info("audit started")

	if accountID, err := uc.awsRepo.GetAccountID(ctx); err != nil {
		log.WithError(err).Warn("could not resolve account ID")
	} else {
		run.AccountID = accountID
	}

	report, err := uc.collect(ctx, run.Threshold)
	if err != nil {
		uc.observeFailure(started)
		log.ErrorWithErr(err, "audit failed")
		return run, entity.AuditReport{}, err
	}
	uc.printSummaries(report)

	message, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		uc.observeFailure(started)
		return run, entity.AuditReport{}, fmt.Errorf("encoding report: %w", err)
	}

	if uc.cfg.DryRun {
		log.Info("dry run, report not published")
	} else {
		messageID, err := uc.notifier.Publish(ctx, uc.cfg.Subject, string(message))
		if err != nil {
			uc.observeFailure(started)
			log.ErrorWithErr(err, "publishing report failed")
			return run, entity.AuditReport{}, err
		}
		run.MessageID = messageID
		run.Published = true
	}

	run.FinishedAt = uc.now().UTC()
	run.Counts = report.Counts()
	if uc.metrics != nil {
		uc.metrics.ObserveSuccess(run.FinishedAt.Sub(started).Seconds(), float64(run.FinishedAt.Unix()), run.Counts)
	}
	log.WithFields(map[string]interface{}{
		"findings":   report.Total(),
		"account_id": run.AccountID,
		"published":  run.Published,
	}).Info("audit finished")

	return run, report, nil
}

// collect runs every detector, sequentially unless Parallel is set.
func (uc *AuditUseCase) collect(ctx context.Context, threshold time.Time) (entity.AuditReport, error) {
	report := entity.NewAuditReport()
	detectors := uc.detectors(threshold)

	if !uc.cfg.Parallel {
		for _, d := range detectors {
			if err := uc.runDetector(ctx, d, &report); err != nil {
				return entity.AuditReport{}, err
			}
		}
		return report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.MaxConcurrency)
	for _, d := range detectors {
		d := d
		g.Go(func() error {
			return uc.runDetector(gctx, d, &report)
		})
	}
	if err := g.Wait(); err != nil {
		return entity.AuditReport{}, err
	}
	return report, nil
}

func (uc *AuditUseCase) runDetector(ctx context.Context, d detector, report *entity.AuditReport) error {
	if uc.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.CallTimeout)
		defer cancel()
	}

	start := uc.now()
	if err := d.run(ctx, report); err != nil {
		return &types.DetectorError{Detector: d.name, Err: err}
	}
	uc.log.WithFields(map[string]interface{}{
		"detector": d.name,
		"elapsed":  uc.now().Sub(start).String(),
	}).Debugf("detector finished")
	return nil
}

// Invoke é o ponto de entrada do runtime Lambda. O evento é ignorado.
func (uc *AuditUseCase) Invoke(ctx context.Context, _ json.RawMessage) (entity.InvocationResult, error) {
	_, report, err := uc.RunAudit(ctx)
	if err != nil {
		return entity.InvocationResult{}, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return entity.InvocationResult{}, fmt.Errorf("encoding report: %w", err)
	}
	return entity.InvocationResult{StatusCode: 200, Body: string(body)}, nil
}

// RunCLI executa uma auditoria a partir da linha de comando e exporta o
// relatório nos formatos pedidos.
func (uc *AuditUseCase) RunCLI(ctx context.Context, args *types.CLIArgs) error {
	status := uc.console.Status(fmt.Sprintf("Auditing idle resources in %s...", uc.awsRepo.Region()))
	run, report, err := uc.RunAudit(ctx)
	status.Stop()
	if err != nil {
		return err
	}

	uc.console.DisplayCategoryBars(entity.Categories, run.Counts)
	if run.Published {
		uc.console.LogSuccess("Report published to SNS (message ID: %s)", run.MessageID)
	}

	if args.ReportName == "" {
		return nil
	}
	for _, reportType := range args.ReportType {
		switch reportType {
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportReportToPDF(run, report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to PDF: %s", pdfPath)
			}
		case "csv":
			csvPath, err := uc.exportRepo.ExportReportToCSV(run, report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportReportToJSON(run, report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported report to JSON: %s", jsonPath)
			}
		default:
			uc.console.LogWarning("Unknown report type %q ignored", reportType)
		}
	}
	return nil
}

func (uc *AuditUseCase) observeFailure(started time.Time) {
	if uc.metrics != nil {
		uc.metrics.ObserveFailure(uc.now().UTC().Sub(started).Seconds())
	}
}
