package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"mungebits/internal/telemetry"
	"mungebits/mungebit"
)

// phased is implemented by pieces that let the caller pick the phase
// (*mungebit.Mungepiece, *Runner).
type phased interface {
	Train(mungebit.Plane) (mungebit.Plane, error)
	Predict(mungebit.Plane) (mungebit.Plane, error)
}

type step struct {
	name  string
	piece mungebit.Piece
}

// Runner applies an ordered list of named pieces to a plane. It implements
// mungebit.Piece, so mungebit.Parse passes a Runner through unchanged and
// runners nest.
type Runner struct {
	name  string
	steps []step
}

func NewRunner(name string) *Runner { return &Runner{name: name} }

func (r *Runner) Name() string { return r.name }
func (r *Runner) Len() int     { return len(r.steps) }

func (r *Runner) AddStep(name string, p mungebit.Piece) {
	r.steps = append(r.steps, step{name: name, piece: p})
}

func (r *Runner) Steps() []string {
	out := make([]string, len(r.steps))
	for i, s := range r.steps {
		out[i] = s.name
	}
	return out
}

// Run lets every step pick its own phase (see mungebit.InferPhase).
func (r *Runner) Run(p mungebit.Plane) (mungebit.Plane, error) {
	return r.exec(p, "run")
}

func (r *Runner) Train(p mungebit.Plane) (mungebit.Plane, error) {
	return r.exec(p, mungebit.PhaseTrain.String())
}

func (r *Runner) Predict(p mungebit.Plane) (mungebit.Plane, error) {
	return r.exec(p, mungebit.PhasePredict.String())
}

func (r *Runner) exec(p mungebit.Plane, mode string) (mungebit.Plane, error) {
	for _, s := range r.steps {
		start := time.Now()
		out, err := runStep(s.piece, p, mode)
		telemetry.ObserveStep(s.name, mode, time.Since(start), err)
		if err != nil {
			return p, fmt.Errorf("step %s: %w", s.name, err)
		}
		p = out
	}
	return p, nil
}

func runStep(piece mungebit.Piece, p mungebit.Plane, mode string) (mungebit.Plane, error) {
	ph, ok := piece.(phased)
	switch {
	case ok && mode == mungebit.PhaseTrain.String():
		return ph.Train(p)
	case ok && mode == mungebit.PhasePredict.String():
		return ph.Predict(p)
	default:
		return piece.Run(p)
	}
}

// Clone copies every stateful step so the copy can run on another
// goroutine. Stateless pieces are shared.
func (r *Runner) Clone() (*Runner, error) {
	c := NewRunner(r.name)
	for _, s := range r.steps {
		piece := s.piece
		switch v := s.piece.(type) {
		case *mungebit.Mungepiece:
			mp, err := v.Clone()
			if err != nil {
				return nil, fmt.Errorf("step %s: %w", s.name, err)
			}
			piece = mp
		case *Runner:
			nested, err := v.Clone()
			if err != nil {
				return nil, err
			}
			piece = nested
		}
		c.AddStep(s.name, piece)
	}
	return c, nil
}

// Close releases steps that hold connections (remote steps, nested runners).
func (r *Runner) Close() error {
	var errs []error
	for _, s := range r.steps {
		if c, ok := s.piece.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
