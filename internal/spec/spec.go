package spec

// CallSpec names one side of a step with distinct train and predict
// functions.
type CallSpec struct {
	Transform string `yaml:"transform"` // registry name; its train or predict side is used
	Args      []any  `yaml:"args"`
}

type StepSpec struct {
	Name string `yaml:"name"`

	// Exactly one of Transform, Train+Predict, Pipeline or Remote is set.
	Transform string    `yaml:"transform"`
	Args      []any     `yaml:"args"`
	Train     *CallSpec `yaml:"train"`
	Predict   *CallSpec `yaml:"predict"`
	Pipeline  string    `yaml:"pipeline"` // nested pipeline file, relative to this one
	Remote    string    `yaml:"remote"`   // address of a Predictor service

	TrainOnly bool `yaml:"train_only"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`

	// Ordered list of steps applied to every plane.
	Steps []StepSpec `yaml:"steps"`
}
