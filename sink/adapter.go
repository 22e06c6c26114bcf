package sink

import (
	"fmt"

	"mungebits/plane"
)

// Batch is a predicted plane together with the key of the record it came
// from.
type Batch struct {
	Key   []byte
	Frame *plane.Frame
}

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error // driver-specific config struct
	Push(Batch) error    // consume one batch
	Close() error        // idempotent
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
