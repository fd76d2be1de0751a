package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads a configuration file and backfills absent directives with
// defaults. A missing file is not an error; the defaults are returned so the
// engine can run without any configuration present.
func NewConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}
	applyDefaults(config)

	return config, nil
}

// applyDefaults backfills zero-valued analysis directives after decode.
func applyDefaults(cfg *Config) {
	def := DefaultAnalysis()
	a := &cfg.Analysis

	a.MaxFileSizeBytes = SetThen(a.MaxFileSizeBytes, def.MaxFileSizeBytes)
	a.MaxPathLength = SetThen(a.MaxPathLength, def.MaxPathLength)
	a.MaxFindingsPerFile = SetThen(a.MaxFindingsPerFile, def.MaxFindingsPerFile)
	a.MaxUnitsPerFile = SetThen(a.MaxUnitsPerFile, def.MaxUnitsPerFile)
	a.MaxLineLength = SetThen(a.MaxLineLength, def.MaxLineLength)
	a.MaxUnitBodyBytes = SetThen(a.MaxUnitBodyBytes, def.MaxUnitBodyBytes)
	a.MaxBraceDepth = SetThen(a.MaxBraceDepth, def.MaxBraceDepth)
	a.Timeout = SetThen(a.Timeout, def.Timeout)
	a.Workers = SetThen(a.Workers, def.Workers)
	a.ComplexityWarn = SetThen(a.ComplexityWarn, def.ComplexityWarn)
	a.ComplexityError = SetThen(a.ComplexityError, def.ComplexityError)
	a.MaxUnitLines = SetThen(a.MaxUnitLines, def.MaxUnitLines)
	a.MaxParameters = SetThen(a.MaxParameters, def.MaxParameters)
	a.MaxNestingDepth = SetThen(a.MaxNestingDepth, def.MaxNestingDepth)
	if len(a.MagicNumberContext) == 0 {
		a.MagicNumberContext = def.MagicNumberContext
	}
}
