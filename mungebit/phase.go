package mungebit

import "fmt"

// Phase selects which function of a Mungebit runs.
type Phase int

const (
	PhaseTrain Phase = iota
	PhasePredict
)

func (p Phase) String() string {
	switch p {
	case PhaseTrain:
		return "train"
	case PhasePredict:
		return "predict"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// InferPhase is the phase Mungepiece.Run dispatches to: an untrained unit
// trains, a trained unit predicts. Calling Run repeatedly on a unit that
// enforces training therefore trains exactly once.
func InferPhase(trained bool) Phase {
	if trained {
		return PhasePredict
	}
	return PhaseTrain
}
