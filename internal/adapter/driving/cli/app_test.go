package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/aws-idle-audit-go/internal/application/usecase"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

type recordingLoader struct {
	configFile string
	flags      *types.Config
	err        error
}

func (l *recordingLoader) Load(configFile string, flags *types.Config) (*types.Config, error) {
	l.configFile = configFile
	l.flags = flags
	if l.err != nil {
		return nil, l.err
	}
	cfg := &types.Config{}
	cfg.Merge(flags)
	cfg.ApplyDefaults()
	return cfg, nil
}

func TestRunCommandPassesFlagsToLoader(t *testing.T) {
	loader := &recordingLoader{err: errStop}
	app := NewCLIApp("0.0.0-dev", loader)
	app.rootCmd.SetArgs([]string{
		"run", "--region", "eu-west-1", "--topic-arn", "arn:topic", "--page-limit", "3",
		"--parallel", "--dry-run", "-C", "audit.toml", "--export", "json,csv",
	})

	err := app.Execute(context.Background())
	require.ErrorIs(t, err, errStop)

	assert.Equal(t, "audit.toml", loader.configFile)
	assert.Equal(t, "eu-west-1", loader.flags.Region)
	assert.Equal(t, "arn:topic", loader.flags.TopicArn)
	assert.Equal(t, 3, loader.flags.PageLimit)
	assert.True(t, loader.flags.Parallel)
	assert.True(t, loader.flags.DryRun)
}

func TestParseArgsForRun(t *testing.T) {
	app := NewCLIApp("0.0.0-dev", &recordingLoader{})
	runCmd, _, err := app.rootCmd.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, runCmd.ParseFlags([]string{"--export", "pdf", "--report-name", "weekly", "--dir", "/tmp/reports"}))

	args, err := app.parseArgs(runCmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf"}, args.ReportType)
	assert.Equal(t, "weekly", args.ReportName)
	assert.Equal(t, "/tmp/reports", args.Dir)
}

func TestParseArgsWithoutExportLeavesReportNameEmpty(t *testing.T) {
	app := NewCLIApp("0.0.0-dev", &recordingLoader{})
	runCmd, _, err := app.rootCmd.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, runCmd.ParseFlags(nil))

	args, err := app.parseArgs(runCmd)
	require.NoError(t, err)
	assert.Empty(t, args.ReportName)
	assert.NotEmpty(t, args.Dir)
}

func TestScheduleCommandFlags(t *testing.T) {
	loader := &recordingLoader{err: errStop}
	app := NewCLIApp("0.0.0-dev", loader)
	app.rootCmd.SetArgs([]string{"schedule", "--cron", "0 30 2 * * *", "--metrics-addr", ":9091"})

	require.ErrorIs(t, app.Execute(context.Background()), errStop)
	assert.Equal(t, "0 30 2 * * *", loader.flags.Schedule)
	assert.Equal(t, ":9091", loader.flags.MetricsAddr)
}

func TestPrepareFactoryErrors(t *testing.T) {
	app := NewCLIApp("0.0.0-dev", &recordingLoader{})
	app.SetUseCaseFactory(func(ctx context.Context, cfg *types.Config, log *logger.Logger) (*usecase.AuditUseCase, error) {
		assert.Equal(t, "sa-east-1", cfg.Region)
		return nil, errStop
	})
	app.rootCmd.SetArgs([]string{"run", "--region", "sa-east-1", "--dry-run"})

	require.ErrorIs(t, app.Execute(context.Background()), errStop)
}

func TestPrepareWithoutFactory(t *testing.T) {
	app := NewCLIApp("0.0.0-dev", &recordingLoader{})
	app.rootCmd.SetArgs([]string{"run", "--region", "sa-east-1", "--dry-run"})

	err := app.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
