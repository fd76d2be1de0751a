package audit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanward/scanward/internal/engine"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/files"
	"github.com/scanward/scanward/pkg/shared/logger"
)

// RunOptionsAudit holds the arguments for the audit command.
type RunOptionsAudit struct {
	Language   string
	OutputPath string
}

var (
	AppConfig         *config.Config
	auditOptions      RunOptionsAudit
	exampleAuditUsage = `  # Auditing a project tree for design violations
  scanward audit /path/to/project

  # Auditing with an explicit language tag and writing the report to a file
  scanward audit --language typescript --output violations.json /path/to/project`
)

// AuditCmd represents the audit command.
var AuditCmd = &cobra.Command{
	Use:                   "audit [--language/-l LANGUAGE] [--output/-o PATH] DIRECTORY",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAuditUsage,
	Short:                 "Walks a project tree and reports file-level design violations",
	RunE:                  runAuditCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// auditReport is the JSON envelope for one audit invocation.
type auditReport struct {
	RunID      string               `json:"run_id"`
	Root       string               `json:"root"`
	Violations []findings.Violation `json:"violations"`
	Metrics    engine.Snapshot      `json:"metrics"`
}

// runAuditCommand executes the audit command.
func runAuditCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return cmd.Help()
	}

	root, err := files.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", args[0], err)
	}

	log := logger.NewLogger(AppConfig, "core-audit")
	e := engine.New(AppConfig, log)

	violations := e.AnalyzeProject(cmd.Context(), root, auditOptions.Language)

	data, err := json.MarshalIndent(auditReport{
		RunID:      e.RunID(),
		Root:       root,
		Violations: violations,
		Metrics:    e.Metrics(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	if auditOptions.OutputPath != "" {
		if err := os.WriteFile(auditOptions.OutputPath, data, 0644); err != nil {
			log.Error("failed to write result", "error", err)
			return err
		}
	} else {
		fmt.Println(string(data))
	}

	log.Info("audit command completed successfully", "violations", len(violations))
	return nil
}

func init() {
	AuditCmd.Flags().StringVarP(&auditOptions.Language, "language", "l", "", "language tag for the audited files (detected from the extension when empty)")
	AuditCmd.Flags().StringVarP(&auditOptions.OutputPath, "output", "o", "", "path of the report file (stdout when empty)")
}
