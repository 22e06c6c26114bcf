package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"mungebits/internal/config"
	"mungebits/internal/spec"
	"mungebits/internal/transform"
	"mungebits/internal/transforms"
	"mungebits/mungebit"
)

// maxDepth bounds pipeline files including each other.
const maxDepth = 8

// Compile loads a pipeline file and builds its runner. Nested pipeline
// paths are resolved against the directory of the including file.
func Compile(path string) (*Runner, error) {
	return compile(path, 0)
}

func compile(path string, depth int) (*Runner, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("pipeline %s: nested more than %d levels", path, maxDepth)
	}
	f, err := config.LoadPipelineSpec(path)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return build(f, filepath.Dir(path), depth)
}

// Build turns a parsed pipeline file into a runner. dir resolves relative
// nested pipeline paths.
func Build(f spec.File, dir string) (*Runner, error) {
	return build(f, dir, 0)
}

func build(f spec.File, dir string, depth int) (*Runner, error) {
	r := NewRunner(f.Name)
	for i, st := range f.Steps {
		name := st.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i)
		}
		piece, err := compileStep(st, dir, depth)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", name, err)
		}
		r.AddStep(name, piece)
	}
	return r, nil
}

// compileStep lowers a step into the argument list mungebit.Parse
// understands.
func compileStep(st spec.StepSpec, dir string, depth int) (mungebit.Piece, error) {
	if st.TrainOnly && (st.Pipeline != "" || st.Remote != "") {
		return nil, fmt.Errorf("train_only applies to transform and train/predict steps only")
	}
	var opts []mungebit.ParseOption
	if st.TrainOnly {
		opts = append(opts, mungebit.TrainOnly())
	}

	switch {
	case st.Pipeline != "":
		path := st.Pipeline
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		nested, err := compile(path, depth+1)
		if err != nil {
			return nil, err
		}
		return mungebit.Parse(nested)

	case st.Remote != "":
		remote, err := transform.NewRemote(st.Remote)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", st.Remote, err)
		}
		return mungebit.Parse(remote)

	case st.Transform != "":
		pair, err := transforms.Lookup(st.Transform)
		if err != nil {
			return nil, err
		}
		var head any = []any{pair.Train, pair.Predict}
		if pair.Shared() {
			head = pair.Train
		}
		return mungebit.Parse(append([]any{head}, st.Args...), opts...)

	case st.Train != nil && st.Predict != nil:
		train, err := transforms.Lookup(st.Train.Transform)
		if err != nil {
			return nil, err
		}
		predict, err := transforms.Lookup(st.Predict.Transform)
		if err != nil {
			return nil, err
		}
		return mungebit.Parse([]any{
			append([]any{train.Train}, st.Train.Args...),
			append([]any{predict.Predict}, st.Predict.Args...),
		}, opts...)
	}
	return nil, fmt.Errorf("step has no transform, train/predict, pipeline or remote")
}
