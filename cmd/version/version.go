package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time values, overridden through -ldflags.
var (
	CoreVersion = "unknown"
	BuildTime   = "unknown"
)

// Versions holds version information for the application binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(Versions{
				Version:       CoreVersion,
				GolangVersion: runtime.Version(),
				BuildTime:     BuildTime,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize version info: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
