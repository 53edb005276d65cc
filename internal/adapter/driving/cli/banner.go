package cli

import (
	"fmt"

	"github.com/diillson/aws-idle-audit-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ___    _ _         _             _ _ _
        |_ _|__| | | ___   / \  _   _  __| (_) |_
         | |/ _' | |/ _ \ / _ \| | | |/ _' | | __|
         | | (_| | |  __// ___ \ |_| | (_| | | |_
        |___\__,_|_|\___/_/   \_\__,_|\__,_|_|\__|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("AWS Idle Resource Audit (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
