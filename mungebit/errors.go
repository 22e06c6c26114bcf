package mungebit

import "errors"

var (
	// ErrInvalidArgumentShape is returned by Parse and Build when the arguments
	// match none of the recognized forms, or a resolved train or predict
	// function is neither callable nor nil.
	ErrInvalidArgumentShape = errors.New("mungebit: invalid argument shape")

	// ErrUntrainedInvocation is returned when the predict phase runs on an
	// untrained Mungebit that enforces training.
	ErrUntrainedInvocation = errors.New("mungebit: predict called before train")

	// ErrAlreadyTrained is returned when the train phase runs again on a
	// trained Mungebit that enforces training.
	ErrAlreadyTrained = errors.New("mungebit: already trained")

	ErrNilPlane = errors.New("mungebit: nil data plane")
)
