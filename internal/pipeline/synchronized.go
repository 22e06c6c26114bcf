package pipeline

import (
	"sync"

	"mungebits/mungebit"
)

type Predictor interface {
	Predict(mungebit.Plane) (mungebit.Plane, error)
}

// Synchronized serializes Predict calls. Pieces are not safe for concurrent
// use, transports are.
type Synchronized struct {
	mu   sync.Mutex
	next Predictor
}

func Synchronize(p Predictor) *Synchronized { return &Synchronized{next: p} }

func (s *Synchronized) Predict(p mungebit.Plane) (mungebit.Plane, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Predict(p)
}
