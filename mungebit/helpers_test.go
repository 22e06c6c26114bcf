package mungebit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"mungebits/mungebit"
	"mungebits/plane"
)

func frame(t *testing.T, name string, values ...any) *plane.Frame {
	t.Helper()
	f := plane.New()
	require.NoError(t, f.SetColumn(name, values))
	return f
}

func columnOf(t *testing.T, p mungebit.Plane, name string) []any {
	t.Helper()
	col, err := p.Column(name)
	require.NoError(t, err)
	return col
}

// mapColumn applies fn to every cell of the column named by args[0].
func mapColumn(fn func(float64) float64) mungebit.Func {
	return func(p mungebit.Plane, _ *mungebit.Inputs, args ...any) error {
		name, ok := args[0].(string)
		if !ok {
			return fmt.Errorf("want column name, got %T", args[0])
		}
		col, err := p.Column(name)
		if err != nil {
			return err
		}
		out := make([]any, len(col))
		for i, v := range col {
			out[i] = fn(v.(float64))
		}
		return p.SetColumn(name, out)
	}
}

var double = mapColumn(func(x float64) float64 { return x * 2 })

// recorder remembers the arguments of every call.
type recorder struct {
	calls [][]any
}

func (r *recorder) fn() mungebit.Func {
	return func(_ mungebit.Plane, _ *mungebit.Inputs, args ...any) error {
		r.calls = append(r.calls, args)
		return nil
	}
}

// centerer subtracts the training mean, cached under "mean".
func centerer() mungebit.Func {
	return func(p mungebit.Plane, in *mungebit.Inputs, args ...any) error {
		name := args[0].(string)
		col, err := p.Column(name)
		if err != nil {
			return err
		}
		mean, err := in.Memo("mean", func() (any, error) {
			var sum float64
			for _, v := range col {
				sum += v.(float64)
			}
			return sum / float64(len(col)), nil
		})
		if err != nil {
			return err
		}
		out := make([]any, len(col))
		for i, v := range col {
			out[i] = v.(float64) - mean.(float64)
		}
		return p.SetColumn(name, out)
	}
}
