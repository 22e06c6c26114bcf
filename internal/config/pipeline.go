package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mungebits/internal/spec"
)

const SupportedSchema = "v1"

// LoadPipelineSpec parses a pipeline YAML and validates schema_version and
// the shape of every step.
func LoadPipelineSpec(path string) (spec.File, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("pipeline %s: %w", path, err)
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("pipeline schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	for i, st := range cfg.Steps {
		if err := validateStep(st); err != nil {
			return cfg, fmt.Errorf("pipeline %s: step %d (%s): %w", path, i, st.Name, err)
		}
	}
	return cfg, nil
}

func validateStep(st spec.StepSpec) error {
	forms := 0
	if st.Transform != "" {
		forms++
	}
	if st.Train != nil || st.Predict != nil {
		forms++
		if st.Train == nil || st.Predict == nil {
			return fmt.Errorf("train and predict must be given together")
		}
		if len(st.Args) > 0 {
			return fmt.Errorf("args belong inside train and predict")
		}
	}
	if st.Pipeline != "" {
		forms++
	}
	if st.Remote != "" {
		forms++
	}
	if forms != 1 {
		return fmt.Errorf("want exactly one of transform, train/predict, pipeline or remote")
	}
	if st.TrainOnly && (st.Pipeline != "" || st.Remote != "") {
		return fmt.Errorf("train_only applies to transform and train/predict steps only")
	}
	return nil
}
