package transforms

import (
	"errors"
	"fmt"
	"math"

	"mungebits/plane"
)

var errNoNumbers = errors.New("no numeric values to learn from")

// numbers returns the numeric cells of values, skipping nils.
func numbers(values []any) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		f, ok := plane.Float(v)
		if !ok {
			return nil, fmt.Errorf("row %d: %T is not numeric", i, v)
		}
		out = append(out, f)
	}
	return out, nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation.
func stddev(xs []float64, m float64) float64 {
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// mapNumeric applies fn to every numeric cell and keeps nils.
func mapNumeric(values []any, fn func(float64) float64) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		f, ok := plane.Float(v)
		if !ok {
			return nil, fmt.Errorf("row %d: %T is not numeric", i, v)
		}
		out[i] = fn(f)
	}
	return out, nil
}

func factor(args []any) (float64, error) {
	if len(args) == 0 {
		return 0, errors.New("missing factor argument")
	}
	f, ok := plane.Float(args[0])
	if !ok {
		return 0, fmt.Errorf("factor %v is not numeric", args[0])
	}
	return f, nil
}
