package config

import (
	"time"
)

type Config struct {
	Logger   Logger   `yaml:"logger"`
	Analysis Analysis `yaml:"analysis"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Analysis holds every limit and threshold the engine enforces on untrusted
// input. All fields have safe defaults; zero values are backfilled on load.
type Analysis struct {
	MaxFileSizeBytes   int           `yaml:"max_file_size_bytes"`
	MaxPathLength      int           `yaml:"max_path_length"`
	MaxFindingsPerFile int           `yaml:"max_findings_per_file"`
	MaxUnitsPerFile    int           `yaml:"max_units_per_file"`
	MaxLineLength      int           `yaml:"max_line_length"`
	MaxUnitBodyBytes   int           `yaml:"max_unit_body_bytes"`
	MaxBraceDepth      int           `yaml:"max_brace_depth"`
	Timeout            time.Duration `yaml:"timeout"`
	Workers            int           `yaml:"workers"`

	ComplexityWarn  int `yaml:"complexity_warn"`
	ComplexityError int `yaml:"complexity_error"`
	MaxUnitLines    int `yaml:"max_unit_lines"`
	MaxParameters   int `yaml:"max_parameters"`
	MaxNestingDepth int `yaml:"max_nesting_depth"`

	// Context words that make a bare numeric literal acceptable on its line.
	// The precision/recall tradeoff of this list is a policy choice, so it
	// is configuration rather than a constant.
	MagicNumberContext []string `yaml:"magic_number_context"`
}

// DefaultAnalysis returns the limit set applied when a directive is absent.
func DefaultAnalysis() Analysis {
	return Analysis{
		MaxFileSizeBytes:   1024 * 1024,
		MaxPathLength:      500,
		MaxFindingsPerFile: 200,
		MaxUnitsPerFile:    100,
		MaxLineLength:      500,
		MaxUnitBodyBytes:   50 * 1024,
		MaxBraceDepth:      50,
		Timeout:            30 * time.Second,
		Workers:            4,
		ComplexityWarn:     10,
		ComplexityError:    20,
		MaxUnitLines:       50,
		MaxParameters:      5,
		MaxNestingDepth:    4,
		MagicNumberContext: []string{"port", "timeout", "line", "version", "index", "size", "length", "offset"},
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Logger:   Logger{Level: "INFO"},
		Analysis: DefaultAnalysis(),
	}
}
