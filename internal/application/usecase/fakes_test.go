package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

type fakeAWSRepo struct {
	mu sync.Mutex

	report     entity.AuditReport
	errs       map[string]error
	accountErr error

	thresholds    []time.Time
	thresholdDays []int
	calls         []string
}

func (f *fakeAWSRepo) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeAWSRepo) recordThreshold(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.thresholds = append(f.thresholds, t)
}

func (f *fakeAWSRepo) GetAccountID(ctx context.Context) (string, error) {
	if f.accountErr != nil {
		return "", f.accountErr
	}
	return "123456789012", nil
}

func (f *fakeAWSRepo) Region() string { return "eu-west-1" }

func (f *fakeAWSRepo) GetStaleSnapshots(ctx context.Context) ([]entity.StaleSnapshot, error) {
	if err := f.record("snapshots"); err != nil {
		return nil, err
	}
	return f.report.UnusedSnapshots, nil
}

func (f *fakeAWSRepo) GetOldUnusedVolumes(ctx context.Context, threshold time.Time) ([]entity.UnusedVolume, error) {
	f.recordThreshold(threshold)
	if err := f.record("volumes"); err != nil {
		return nil, err
	}
	return f.report.UnusedVolumes, nil
}

func (f *fakeAWSRepo) GetLoadBalancersWithoutTargets(ctx context.Context) ([]entity.LoadBalancerWithoutTargets, error) {
	if err := f.record("load-balancers"); err != nil {
		return nil, err
	}
	return f.report.LoadBalancers, nil
}

func (f *fakeAWSRepo) GetIdleNatGateways(ctx context.Context) ([]entity.IdleNatGateway, error) {
	if err := f.record("nat-gateways"); err != nil {
		return nil, err
	}
	return f.report.UnattachedNATGateways, nil
}

func (f *fakeAWSRepo) GetUnattachedElasticIPs(ctx context.Context) ([]entity.UnattachedElasticIP, error) {
	if err := f.record("elastic-ips"); err != nil {
		return nil, err
	}
	return f.report.UnattachedElasticIPs, nil
}

func (f *fakeAWSRepo) GetLongStoppedInstances(ctx context.Context, threshold time.Time) ([]entity.StoppedInstance, error) {
	if err := f.record("stopped-instances"); err != nil {
		return nil, err
	}
	return f.report.StoppedInstances, nil
}

func (f *fakeAWSRepo) GetUnusedBuckets(ctx context.Context, threshold time.Time, thresholdDays int) ([]entity.UnusedBucket, error) {
	f.mu.Lock()
	f.thresholdDays = append(f.thresholdDays, thresholdDays)
	f.mu.Unlock()
	if err := f.record("buckets"); err != nil {
		return nil, err
	}
	return f.report.UnusedBuckets, nil
}

type publication struct {
	subject string
	message string
}

type fakeNotifier struct {
	published []publication
	err       error
}

func (f *fakeNotifier) Publish(ctx context.Context, subject, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, publication{subject, message})
	return fmt.Sprintf("msg-%d", len(f.published)), nil
}

type fakeExporter struct {
	exported []string
}

func (f *fakeExporter) export(kind, filename, dir string) (string, error) {
	path := dir + "/" + filename + "." + kind
	f.exported = append(f.exported, path)
	return path, nil
}

func (f *fakeExporter) ExportReportToJSON(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error) {
	return f.export("json", filename, outputDir)
}

func (f *fakeExporter) ExportReportToCSV(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error) {
	return f.export("csv", filename, outputDir)
}

func (f *fakeExporter) ExportReportToPDF(run entity.AuditRun, report entity.AuditReport, filename, outputDir string) (string, error) {
	return f.export("pdf", filename, outputDir)
}

// fakeConsole records every line written to it.
type fakeConsole struct {
	mu    sync.Mutex
	lines []string
	bars  map[string]int
}

func (c *fakeConsole) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *fakeConsole) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

func (c *fakeConsole) Print(a ...interface{})                 { c.add(fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.add(fmt.Sprint(a...)) }

func (c *fakeConsole) LogInfo(format string, a ...interface{})    { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) LogWarning(format string, a ...interface{}) { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) LogError(format string, a ...interface{})   { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) { c.add(fmt.Sprintf(format, a...)) }

func (c *fakeConsole) Status(message string) types.StatusHandle { return noopStatus{} }

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

func (c *fakeConsole) DisplayCategoryBars(categories []string, counts map[string]int) {
	c.bars = counts
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type fakeTable struct {
	rows []string
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) {}

func (t *fakeTable) AddRow(cells ...interface{}) {
	t.rows = append(t.rows, fmt.Sprint(cells...))
}

func (t *fakeTable) Render() string { return strings.Join(t.rows, "\n") }
