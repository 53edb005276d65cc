package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/aws-idle-audit-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-idle-audit-go/internal/adapter/driven/config"
	"github.com/diillson/aws-idle-audit-go/internal/adapter/driven/export"
	"github.com/diillson/aws-idle-audit-go/internal/adapter/driven/notification"
	"github.com/diillson/aws-idle-audit-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-idle-audit-go/internal/application/usecase"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
	"github.com/diillson/aws-idle-audit-go/pkg/console"
	"github.com/diillson/aws-idle-audit-go/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializa o aplicativo CLI
	loader := config.NewLoader(config.NewConfigRepository())
	app := cli.NewCLIApp(version.Version, loader)

	// Os repositórios dependem da região e do perfil, conhecidos só após carregar a configuração
	app.SetUseCaseFactory(func(ctx context.Context, cfg *types.Config, log *logger.Logger) (*usecase.AuditUseCase, error) {
		awsCfg, err := aws.LoadAWSConfig(ctx, cfg.Region, cfg.Profile)
		if err != nil {
			return nil, err
		}

		awsRepo := aws.NewAWSRepository(awsCfg, cfg.PageLimit, log)
		notifier := notification.NewSNSRepository(awsCfg, cfg.TopicArn, log)
		exportRepo := export.NewExportRepository()
		consoleImpl := console.NewConsole()

		return usecase.NewAuditUseCase(awsRepo, notifier, exportRepo, consoleImpl, cfg, log), nil
	})

	// Executa o aplicativo
	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
