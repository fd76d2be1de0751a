package config

import (
	"fmt"
	"time"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateAnalysisConfig(&cfg.Analysis); err != nil {
		return fmt.Errorf("YAML global config: analysis directive is invalid: %w", err)
	}
	return nil
}

// ValidateAnalysisConfig checks if the analysis limits have valid values.
func ValidateAnalysisConfig(a *Analysis) error {
	if a == nil {
		return fmt.Errorf("analysis configuration is nil")
	}

	positives := map[string]int{
		"max_file_size_bytes":   a.MaxFileSizeBytes,
		"max_path_length":       a.MaxPathLength,
		"max_findings_per_file": a.MaxFindingsPerFile,
		"max_units_per_file":    a.MaxUnitsPerFile,
		"max_line_length":       a.MaxLineLength,
		"max_unit_body_bytes":   a.MaxUnitBodyBytes,
		"max_brace_depth":       a.MaxBraceDepth,
		"workers":               a.Workers,
		"complexity_warn":       a.ComplexityWarn,
		"complexity_error":      a.ComplexityError,
		"max_unit_lines":        a.MaxUnitLines,
		"max_parameters":        a.MaxParameters,
		"max_nesting_depth":     a.MaxNestingDepth,
	}
	for name, v := range positives {
		if v <= 0 {
			return fmt.Errorf("%s must be positive: %d", name, v)
		}
	}

	if a.ComplexityError < a.ComplexityWarn {
		return fmt.Errorf("complexity_error (%d) must not be below complexity_warn (%d)", a.ComplexityError, a.ComplexityWarn)
	}

	if err := validateDuration(a.Timeout, "timeout", 10*time.Minute); err != nil {
		return err
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("invalid duration for %s: %v must be positive", name, d)
	}
	if d > max {
		return fmt.Errorf("%s duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}
