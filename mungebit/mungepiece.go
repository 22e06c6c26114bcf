package mungebit

import "slices"

// Mungepiece is a Mungebit bound to the arguments each phase receives.
type Mungepiece struct {
	bit         *Mungebit
	trainArgs   []any
	predictArgs []any
}

func NewMungepiece(bit *Mungebit, trainArgs, predictArgs []any) *Mungepiece {
	return &Mungepiece{
		bit:         bit,
		trainArgs:   slices.Clone(trainArgs),
		predictArgs: slices.Clone(predictArgs),
	}
}

func (mp *Mungepiece) Mungebit() *Mungebit { return mp.bit }
func (mp *Mungepiece) TrainArgs() []any    { return slices.Clone(mp.trainArgs) }
func (mp *Mungepiece) PredictArgs() []any  { return slices.Clone(mp.predictArgs) }

// Run trains the unit on p if it is untrained and predicts otherwise
// (see InferPhase).
//
// When the unit does not enforce training, every Run starts from a fresh
// unit, so each call trains on its own plane and never sees parameters a
// previous call learned.
func (mp *Mungepiece) Run(p Plane) (Plane, error) {
	mp.reset()
	return mp.dispatch(p, InferPhase(mp.bit.Trained()))
}

// Train runs the train phase. A unit that does not enforce training is reset
// first.
func (mp *Mungepiece) Train(p Plane) (Plane, error) {
	mp.reset()
	return mp.dispatch(p, PhaseTrain)
}

// Predict runs the predict phase against whatever the unit learned so far.
func (mp *Mungepiece) Predict(p Plane) (Plane, error) {
	return mp.dispatch(p, PhasePredict)
}

// Clone returns a piece over an independent copy of the unit.
func (mp *Mungepiece) Clone() (*Mungepiece, error) {
	bit, err := mp.bit.Clone()
	if err != nil {
		return nil, err
	}
	return NewMungepiece(bit, mp.trainArgs, mp.predictArgs), nil
}

func (mp *Mungepiece) reset() {
	if !mp.bit.EnforceTrain() {
		mp.bit = mp.bit.Fresh()
	}
}

func (mp *Mungepiece) dispatch(p Plane, phase Phase) (Plane, error) {
	args := mp.trainArgs
	if phase == PhasePredict {
		args = mp.predictArgs
	}
	return mp.bit.Run(p, phase, args...)
}
