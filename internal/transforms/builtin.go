package transforms

import (
	"mungebits/column"
	"mungebits/mungebit"
)

// Predict functions below leave a column unchanged when its parameters were
// never learned, which is what an untrained unit with relaxed enforcement
// sees.

func init() {
	Register("scale", func() Pair { return SharedPair(column.Transformation(scale)) })
	Register("impute_mean", func() Pair {
		return Pair{
			Train:   column.Transformation(imputeMeanTrain),
			Predict: column.Transformation(imputeMeanPredict),
		}
	})
	Register("standardize", func() Pair {
		return Pair{
			Train:   column.Transformation(standardizeTrain),
			Predict: column.Transformation(standardizePredict),
		}
	})
	Register("min_max", func() Pair {
		return Pair{
			Train:   column.Transformation(minMaxTrain),
			Predict: column.Transformation(minMaxPredict),
		}
	})
}

// scale multiplies by args[0]. Nothing is learned.
func scale(values []any, _ *mungebit.Inputs, args ...any) ([]any, error) {
	k, err := factor(args)
	if err != nil {
		return nil, err
	}
	return mapNumeric(values, func(x float64) float64 { return x * k })
}

func learnMean(values []any, in *mungebit.Inputs) error {
	_, err := in.Memo("mean", func() (any, error) {
		xs, err := numbers(values)
		if err != nil {
			return nil, err
		}
		if len(xs) == 0 {
			return nil, errNoNumbers
		}
		return mean(xs), nil
	})
	return err
}

func imputeMeanTrain(values []any, in *mungebit.Inputs, args ...any) ([]any, error) {
	if err := learnMean(values, in); err != nil {
		return nil, err
	}
	return imputeMeanPredict(values, in, args...)
}

func imputeMeanPredict(values []any, in *mungebit.Inputs, _ ...any) ([]any, error) {
	m, ok := in.Float("mean")
	if !ok {
		return values, nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = m
			continue
		}
		out[i] = v
	}
	return out, nil
}

func standardizeTrain(values []any, in *mungebit.Inputs, args ...any) ([]any, error) {
	if err := learnMean(values, in); err != nil {
		return nil, err
	}
	m, _ := in.Float("mean")
	if _, err := in.Memo("sd", func() (any, error) {
		xs, err := numbers(values)
		if err != nil {
			return nil, err
		}
		return stddev(xs, m), nil
	}); err != nil {
		return nil, err
	}
	return standardizePredict(values, in, args...)
}

func standardizePredict(values []any, in *mungebit.Inputs, _ ...any) ([]any, error) {
	m, okMean := in.Float("mean")
	sd, okSD := in.Float("sd")
	if !okMean || !okSD {
		return values, nil
	}
	if sd == 0 {
		sd = 1
	}
	return mapNumeric(values, func(x float64) float64 { return (x - m) / sd })
}

func minMaxTrain(values []any, in *mungebit.Inputs, args ...any) ([]any, error) {
	xs, err := numbers(values)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, errNoNumbers
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo, hi = min(lo, x), max(hi, x)
	}
	if !in.Has("min") {
		in.Set("min", lo)
		in.Set("max", hi)
	}
	return minMaxPredict(values, in, args...)
}

func minMaxPredict(values []any, in *mungebit.Inputs, _ ...any) ([]any, error) {
	lo, okLo := in.Float("min")
	hi, okHi := in.Float("max")
	if !okLo || !okHi {
		return values, nil
	}
	span := hi - lo
	return mapNumeric(values, func(x float64) float64 {
		if span == 0 {
			return 0
		}
		return (x - lo) / span
	})
}
