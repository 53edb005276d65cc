package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-idle-audit-go/internal/adapter/driving/lambda"
	"github.com/diillson/aws-idle-audit-go/internal/adapter/driving/scheduler"
	"github.com/diillson/aws-idle-audit-go/internal/application/usecase"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/metrics"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/diillson/aws-idle-audit-go/pkg/version"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ConfigLoader resolves the effective configuration from a file, the
// environment and the flags that were set.
type ConfigLoader interface {
	Load(configFile string, flags *types.Config) (*types.Config, error)
}

// UseCaseFactory builds the audit use case once the configuration is known.
type UseCaseFactory func(ctx context.Context, cfg *types.Config, log *logger.Logger) (*usecase.AuditUseCase, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	loader  ConfigLoader
	factory UseCaseFactory
	version string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, loader ConfigLoader) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		loader:  loader,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "idle-audit",
		Short:         "AWS idle resource audit",
		Long:          "Inventories idle or orphaned AWS resources in one account and region and publishes a consolidated report to SNS. Nothing is ever deleted.",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.rootCommand,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Idle Audit version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("region", "r", "", "AWS region to audit (default: IDLE_AUDIT_REGION or AWS_REGION)")
	flags.String("topic-arn", "", "SNS topic that receives the report")
	flags.StringP("profile", "p", "", "AWS shared config profile")
	flags.Int("page-limit", 0, "Maximum number of pages read from each listing call (default 1)")
	flags.Bool("parallel", false, "Run the detectors concurrently")
	flags.Bool("dry-run", false, "Run the audit without publishing the report")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: json or console")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one audit and print the findings",
		RunE:  app.runCommand,
	}
	runCmd.Flags().StringSliceP("export", "e", nil, "Export the report as: csv, json, pdf")
	runCmd.Flags().StringP("report-name", "n", "idle-audit", "Base name for exported report files (without extension)")
	runCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	lambdaCmd := &cobra.Command{
		Use:   "lambda",
		Short: "Start the AWS Lambda runtime handler",
		RunE:  app.lambdaCommand,
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run audits periodically on a cron schedule",
		RunE:  app.scheduleCommand,
	}
	scheduleCmd.Flags().String("cron", "", "Cron expression with seconds field (default \"0 0 6 * * *\")")
	scheduleCmd.Flags().String("metrics-addr", "", "Address for the Prometheus /metrics endpoint, e.g. :9090")

	rootCmd.AddCommand(runCmd, lambdaCmd, scheduleCmd)
	app.rootCmd = rootCmd
	return app
}

// SetUseCaseFactory sets how the audit use case is built for each command.
func (app *CLIApp) SetUseCaseFactory(factory UseCaseFactory) {
	app.factory = factory
}

// Execute runs the CLI application.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	region, _ := flags.GetString("region")
	topicArn, _ := flags.GetString("topic-arn")
	profile, _ := flags.GetString("profile")
	pageLimit, _ := flags.GetInt("page-limit")
	parallel, _ := flags.GetBool("parallel")
	dryRun, _ := flags.GetBool("dry-run")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Region:     region,
		TopicArn:   topicArn,
		Profile:    profile,
		PageLimit:  pageLimit,
		Parallel:   parallel,
		DryRun:     dryRun,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	}

	if flags.Lookup("export") != nil {
		args.ReportType, _ = flags.GetStringSlice("export")
		if len(args.ReportType) > 0 {
			args.ReportName, _ = flags.GetString("report-name")
		}
		dir, _ := flags.GetString("dir")
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir = cwd
		} else {
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return nil, err
			}
			dir = absDir
		}
		args.Dir = dir
	}
	if flags.Lookup("cron") != nil {
		args.Schedule, _ = flags.GetString("cron")
		args.MetricsAddr, _ = flags.GetString("metrics-addr")
	}

	return args, nil
}

// prepare loads the configuration and builds the use case for cmd.
func (app *CLIApp) prepare(cmd *cobra.Command) (*types.CLIArgs, *types.Config, *logger.Logger, *usecase.AuditUseCase, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cfg, err := app.loader.Load(args.ConfigFile, args.ToConfig())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if app.factory == nil {
		return nil, nil, nil, nil, fmt.Errorf("audit use case is not configured")
	}
	uc, err := app.factory(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return args, cfg, log, uc, nil
}

// rootCommand starts the Lambda handler when running inside Lambda and shows
// the help otherwise.
func (app *CLIApp) rootCommand(cmd *cobra.Command, args []string) error {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return app.lambdaCommand(cmd, args)
	}
	return cmd.Help()
}

// runCommand executa uma auditoria única.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go checkLatestVersion(app.version)

	args, _, _, uc, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return uc.RunCLI(cmd.Context(), args)
}

// lambdaCommand entrega o controle ao runtime do Lambda.
func (app *CLIApp) lambdaCommand(cmd *cobra.Command, _ []string) error {
	// CloudWatch Logs não interpreta cores
	pterm.DisableStyling()

	_, _, log, uc, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	lambda.NewHandler(uc, log).Start()
	return nil
}

// scheduleCommand executa auditorias periódicas até receber um sinal.
func (app *CLIApp) scheduleCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	_, cfg, log, uc, err := app.prepare(cmd)
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	uc.SetMetrics(rec)

	sched, err := scheduler.New(uc, cfg.Schedule, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return sched.Run(ctx)
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return scheduler.ServeMetrics(ctx, cfg.MetricsAddr, rec.Handler(), log)
		})
	}

	pterm.Info.Printfln("Audit scheduled with %q. Press Ctrl+C to stop.", cfg.Schedule)
	return g.Wait()
}
