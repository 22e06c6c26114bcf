// Package column builds mungebit functions that work one column at a time.
package column

import (
	"errors"
	"fmt"

	"mungebits/mungebit"
)

// Kind is the value of the "kind" tag on functions built by Transformation.
const Kind = "column"

// Func transforms the values of a single column. in is private to that
// column; args are the step arguments after the column selector.
type Func func(values []any, in *mungebit.Inputs, args ...any) ([]any, error)

// Transformation lifts fn to a whole-plane function. The first step argument
// selects the columns fn is applied to, see Names.
func Transformation(fn Func) mungebit.Function {
	return mungebit.NewFunction(func(p mungebit.Plane, in *mungebit.Inputs, args ...any) error {
		if len(args) == 0 {
			return errors.New("column: missing column selector")
		}
		names, err := Names(args[0])
		if err != nil {
			return err
		}
		for _, name := range names {
			values, err := p.Column(name)
			if err != nil {
				return err
			}
			out, err := fn(values, in.Scope(name), args[1:]...)
			if err != nil {
				return fmt.Errorf("column %q: %w", name, err)
			}
			if err := p.SetColumn(name, out); err != nil {
				return err
			}
		}
		return nil
	}).Tag("kind", Kind)
}

// Names reads a column selector: a name, a list of names, or a list of
// values that are all strings (as decoded from YAML or JSON).
func Names(sel any) ([]string, error) {
	switch s := sel.(type) {
	case string:
		return []string{s}, nil
	case []string:
		return s, nil
	case []any:
		out := make([]string, 0, len(s))
		for i, v := range s {
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("column: selector item %d is %T, want string", i, v)
			}
			out = append(out, name)
		}
		return out, nil
	}
	return nil, fmt.Errorf("column: unsupported selector %T", sel)
}
