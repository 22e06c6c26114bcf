package mungebit

import (
	"fmt"
	"slices"
)

// Form is one of the argument shapes a Mungepiece can be built from:
// Shared, Paired, Separate or Derived.
type Form interface {
	form()
}

// Shared uses one function for both phases with the same arguments.
type Shared struct {
	Fn   Function
	Args []any
}

// Paired uses distinct train and predict functions with the same arguments.
type Paired struct {
	Train, Predict Function
	Args           []any
}

// Call is a function together with its arguments.
type Call struct {
	Fn   Function
	Args []any
}

// Separate gives each phase its own function and arguments.
type Separate struct {
	Train, Predict Call
}

// Derived builds a new unit from the functions of an existing Mungebit.
// The existing unit's cache and trained state are not carried over.
type Derived struct {
	Bit  *Mungebit
	Args []any
}

func (Shared) form()   {}
func (Paired) form()   {}
func (Separate) form() {}
func (Derived) form()  {}

type ParseOption func(*parseConfig)

type parseConfig struct {
	trainOnly bool
}

// TrainOnly builds units that do not enforce training.
func TrainOnly() ParseOption {
	return func(c *parseConfig) { c.trainOnly = true }
}

// Build constructs a Mungepiece from form. Both functions are normalized
// before they are sealed into the new Mungebit.
func Build(form Form, opts ...ParseOption) (*Mungepiece, error) {
	var cfg parseConfig
	for _, o := range opts {
		o(&cfg)
	}

	var (
		train, predict         Function
		trainArgs, predictArgs []any
	)
	switch f := form.(type) {
	case Shared:
		train, predict = f.Fn, f.Fn
		trainArgs, predictArgs = f.Args, f.Args
	case Paired:
		train, predict = f.Train, f.Predict
		trainArgs, predictArgs = f.Args, f.Args
	case Separate:
		train, predict = f.Train.Fn, f.Predict.Fn
		trainArgs, predictArgs = f.Train.Args, f.Predict.Args
	case Derived:
		if f.Bit == nil {
			return nil, fmt.Errorf("%w: nil mungebit", ErrInvalidArgumentShape)
		}
		train, predict = f.Bit.train, f.Bit.predict
		trainArgs, predictArgs = f.Args, f.Args
	default:
		return nil, fmt.Errorf("%w: unsupported form %T", ErrInvalidArgumentShape, form)
	}

	bit := New(Normalize(train), Normalize(predict), WithEnforceTrain(!cfg.trainOnly))
	return NewMungepiece(bit, slices.Clone(trainArgs), slices.Clone(predictArgs)), nil
}
