package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanward/scanward/cmd/analyse"
	"github.com/scanward/scanward/cmd/audit"
	"github.com/scanward/scanward/cmd/version"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "scanward [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Scanward is a heuristic static analyzer for JavaScript and TypeScript sources.",
		Long: `Scanward scans JavaScript and TypeScript sources without parsing them into an AST.
	It reports line-level findings (deprecated declarations, weak equality, debug
	statements, magic numbers, complexity and size metrics) and file-level design
	violations, as JSON or SARIF.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(analyse.AnalyseCmd)
	rootCmd.AddCommand(audit.AuditCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	locale.SetCatalog(locale.Builtin())

	analyse.Init(AppConfig)
	audit.Init(AppConfig)
}
