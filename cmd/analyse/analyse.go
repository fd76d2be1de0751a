package analyse

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scanward/scanward/internal/baseline"
	"github.com/scanward/scanward/internal/engine"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/internal/sarif"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/files"
	"github.com/scanward/scanward/pkg/shared/logger"
)

// RunOptionsAnalyse holds the arguments for the analyse command.
type RunOptionsAnalyse struct {
	Language      string
	ReportFormat  string
	OutputPath    string
	BaselinePath  string
	BaselineWrite string
}

var (
	AppConfig           *config.Config
	analyseOptions      RunOptionsAnalyse
	exampleAnalyseUsage = `  # Analysing a single file
  scanward analyse src/app.js

  # Analysing several files with an explicit language tag
  scanward analyse --language typescript src/a.ts src/b.ts

  # Producing a SARIF report
  scanward analyse --format sarif --output report.sarif src/app.js

  # Recording a baseline, then later reporting only regressions against it
  scanward analyse --write-baseline baseline.json src/app.js
  scanward analyse --baseline baseline.json src/app.js`
)

// AnalyseCmd represents the analyse command.
var AnalyseCmd = &cobra.Command{
	Use:                   "analyse [--language/-l LANGUAGE] [--format/-f json|sarif] [--output/-o PATH] FILE...",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyseUsage,
	Short:                 "Runs the line-level detectors and metric calculators over the given files",
	RunE:                  runAnalyseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// analyseReport is the JSON envelope for one analyse invocation.
type analyseReport struct {
	RunID   string                        `json:"run_id"`
	Files   map[string][]findings.Finding `json:"files"`
	Metrics engine.Snapshot               `json:"metrics"`
}

// runAnalyseCommand executes the analyse command.
func runAnalyseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	if err := validateAnalyseArgs(&analyseOptions); err != nil {
		return err
	}

	log := logger.NewLogger(AppConfig, "core-analyse")
	e := engine.New(AppConfig, log)

	results := make(map[string][]findings.Finding, len(args))
	for _, arg := range args {
		path, err := files.ExpandPath(arg)
		if err != nil {
			log.Error("failed to expand path", "path", arg, "error", err)
			continue
		}
		results[path] = e.AnalyzeFile(cmd.Context(), path, analyseOptions.Language)
	}

	results, err := applyBaseline(e, log, results)
	if err != nil {
		return err
	}

	if err := writeAnalyseReport(e, log, results); err != nil {
		log.Error("failed to write result", "error", err)
		return err
	}

	log.Info("analyse command completed successfully", "files", len(results))
	return nil
}

func validateAnalyseArgs(options *RunOptionsAnalyse) error {
	switch options.ReportFormat {
	case "json", "sarif":
		return nil
	default:
		return fmt.Errorf("unsupported report format %q: expected json or sarif", options.ReportFormat)
	}
}

// applyBaseline records or applies a stored baseline. When a baseline is
// applied, the returned results contain only findings with no counterpart in
// it.
func applyBaseline(e *engine.Engine, log hclog.Logger, results map[string][]findings.Finding) (map[string][]findings.Finding, error) {
	if analyseOptions.BaselinePath == "" && analyseOptions.BaselineWrite == "" {
		return results, nil
	}

	entries := collectEntries(results)

	if analyseOptions.BaselineWrite != "" {
		report := &baseline.Report{RunID: e.RunID(), Entries: entries}
		if err := report.Write(analyseOptions.BaselineWrite); err != nil {
			return nil, err
		}
		log.Info("baseline recorded", "path", analyseOptions.BaselineWrite, "entries", len(entries))
	}

	if analyseOptions.BaselinePath != "" {
		known, err := baseline.Load(analyseOptions.BaselinePath)
		if err != nil {
			return nil, err
		}
		correlator := baseline.NewCorrelator(entries, known.Entries)
		regressions := correlator.UnmatchedCurrent()
		log.Info("baseline applied",
			"regressions", len(regressions),
			"fixed", len(correlator.UnmatchedKnown()))
		results = groupByFile(regressions)
	}
	return results, nil
}

// collectEntries fingerprints every finding against the file content it
// points at. A file that cannot be re-read yields entries without hashes,
// which still correlate by position.
func collectEntries(results map[string][]findings.Finding) []baseline.Entry {
	var entries []baseline.Entry
	for path, list := range results {
		var lines []string
		if data, err := os.ReadFile(path); err == nil {
			lines = strings.Split(string(data), "\n")
		}
		entries = append(entries, baseline.EntriesForFile(path, lines, list)...)
	}
	return entries
}

func groupByFile(entries []baseline.Entry) map[string][]findings.Finding {
	grouped := make(map[string][]findings.Finding)
	for _, entry := range entries {
		grouped[entry.File] = append(grouped[entry.File], entry.Finding)
	}
	return grouped
}

// writeAnalyseReport renders the results in the requested format, to the
// output file when one was given and to stdout otherwise.
func writeAnalyseReport(e *engine.Engine, log hclog.Logger, results map[string][]findings.Finding) error {
	if analyseOptions.ReportFormat == "sarif" {
		builder := sarif.NewBuilder(log, e.RunID())
		if analyseOptions.OutputPath != "" {
			return builder.WriteFile(analyseOptions.OutputPath, results)
		}
		report, err := builder.Build(results)
		if err != nil {
			return err
		}
		return report.PrettyWrite(os.Stdout)
	}

	data, err := json.MarshalIndent(analyseReport{
		RunID:   e.RunID(),
		Files:   results,
		Metrics: e.Metrics(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	if analyseOptions.OutputPath != "" {
		return os.WriteFile(analyseOptions.OutputPath, data, 0644)
	}
	_, err = fmt.Println(string(data))
	return err
}

func init() {
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Language, "language", "l", "", "language tag for the analyzed files (detected from the extension when empty)")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.ReportFormat, "format", "f", "json", "report format: json or sarif")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.OutputPath, "output", "o", "", "path of the report file (stdout when empty)")
	AnalyseCmd.Flags().StringVar(&analyseOptions.BaselinePath, "baseline", "", "baseline file to compare against; only regressions are reported")
	AnalyseCmd.Flags().StringVar(&analyseOptions.BaselineWrite, "write-baseline", "", "record the run's findings as a baseline at this path")
}
