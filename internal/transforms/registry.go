// Package transforms is the catalogue of named train/predict pairs that
// pipeline files refer to.
package transforms

import (
	"fmt"
	"sort"

	"mungebits/mungebit"
)

// Pair is a matched train/predict function pair. Shared pairs use the same
// function for both phases.
type Pair struct {
	Train, Predict mungebit.Function
	shared         bool
}

// SharedPair uses fn for both phases.
func SharedPair(fn mungebit.Function) Pair {
	return Pair{Train: fn, Predict: fn, shared: true}
}

func (p Pair) Shared() bool { return p.shared }

// Factory builds a Pair. Each pipeline step gets its own.
type Factory func() Pair

var registry = map[string]Factory{}

// Register is called from init() of each transform file.
func Register(name string, f Factory) {
	registry[name] = f
}

// Lookup returns a new Pair for name ("scale", "impute_mean", ...).
func Lookup(name string) (Pair, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return Pair{}, fmt.Errorf("transforms: unknown transform %q", name)
}

// Names lists the registered transforms in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
