package mungebit

import "fmt"

// Mungebit is a train/predict function pair with the inputs cache they
// share. It starts untrained and becomes trained after the first train
// phase that completes without error.
type Mungebit struct {
	train, predict Function
	enforceTrain   bool

	trained bool
	inputs  *Inputs
}

type Option func(*Mungebit)

// WithEnforceTrain controls whether predict may run before train and
// whether a trained unit refuses to train again. Enforcement is on by
// default.
func WithEnforceTrain(enforce bool) Option {
	return func(b *Mungebit) { b.enforceTrain = enforce }
}

func New(train, predict Function, opts ...Option) *Mungebit {
	b := &Mungebit{
		train:        train,
		predict:      predict,
		enforceTrain: true,
		inputs:       NewInputs(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Mungebit) Trained() bool      { return b.trained }
func (b *Mungebit) EnforceTrain() bool { return b.enforceTrain }
func (b *Mungebit) Inputs() *Inputs    { return b.inputs }

// Functions returns the train and predict functions of b.
func (b *Mungebit) Functions() (train, predict Function) {
	return b.train, b.predict
}

// Run executes the function for phase against p with args and returns p,
// which the function mutated in place.
//
// With enforcement off, predict on an untrained unit is tolerated: the
// predict function runs against the empty cache and the unit stays
// untrained.
func (b *Mungebit) Run(p Plane, phase Phase, args ...any) (Plane, error) {
	if p == nil {
		return nil, ErrNilPlane
	}
	switch phase {
	case PhaseTrain:
		if b.trained && b.enforceTrain {
			return p, ErrAlreadyTrained
		}
		if err := b.train.Call(p, b.inputs, args...); err != nil {
			return p, err
		}
		b.trained = true
		return p, nil
	case PhasePredict:
		if !b.trained && b.enforceTrain {
			return p, ErrUntrainedInvocation
		}
		if err := b.predict.Call(p, b.inputs, args...); err != nil {
			return p, err
		}
		return p, nil
	default:
		return p, fmt.Errorf("mungebit: unknown %s", phase)
	}
}

func (b *Mungebit) Train(p Plane, args ...any) (Plane, error) {
	return b.Run(p, PhaseTrain, args...)
}

func (b *Mungebit) Predict(p Plane, args ...any) (Plane, error) {
	return b.Run(p, PhasePredict, args...)
}

// Fresh returns an untrained unit with the same functions and policy and an
// empty cache.
func (b *Mungebit) Fresh() *Mungebit {
	return New(b.train, b.predict, WithEnforceTrain(b.enforceTrain))
}

// Clone returns an independent copy of b, trained state and cache included.
func (b *Mungebit) Clone() (*Mungebit, error) {
	in, err := b.inputs.Clone()
	if err != nil {
		return nil, err
	}
	c := b.Fresh()
	c.trained = b.trained
	c.inputs = in
	return c, nil
}
