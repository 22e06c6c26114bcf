package mungebit

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/copystructure"
)

// Inputs holds the parameters a train function learns for later use by the
// predict function of the same Mungebit.
type Inputs struct {
	values map[string]any
}

// Caches stored inside other values (slices, maps, structs) are copied with
// Clone as well, so their entries survive copystructure.
func init() {
	copystructure.Copiers[reflect.TypeOf(Inputs{})] = func(v any) (any, error) {
		in := v.(Inputs)
		c, err := in.Clone()
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
}

func NewInputs() *Inputs {
	return &Inputs{values: make(map[string]any)}
}

func (in *Inputs) Get(key string) (any, bool) {
	v, ok := in.values[key]
	return v, ok
}

func (in *Inputs) Set(key string, v any) { in.values[key] = v }

func (in *Inputs) Has(key string) bool {
	_, ok := in.values[key]
	return ok
}

func (in *Inputs) Delete(key string) { delete(in.values, key) }

func (in *Inputs) Len() int { return len(in.values) }

// Keys returns the stored keys in sorted order.
func (in *Inputs) Keys() []string {
	keys := make([]string, 0, len(in.values))
	for k := range in.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float returns the value under key if it is a float64.
func (in *Inputs) Float(key string) (float64, bool) {
	f, ok := in.values[key].(float64)
	return f, ok
}

// Memo returns the value under key, computing and storing it first when the
// key is absent. A failed compute stores nothing.
func (in *Inputs) Memo(key string, compute func() (any, error)) (any, error) {
	if v, ok := in.values[key]; ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	in.values[key] = v
	return v, nil
}

// Scope returns the nested cache stored under name, creating it if needed.
// Column transformations keep one scope per column.
func (in *Inputs) Scope(name string) *Inputs {
	if s, ok := in.values[name].(*Inputs); ok {
		return s
	}
	s := NewInputs()
	in.values[name] = s
	return s
}

// Clone deep-copies the cache, nested scopes included.
func (in *Inputs) Clone() (*Inputs, error) {
	out := &Inputs{values: make(map[string]any, len(in.values))}
	for k, v := range in.values {
		switch v := v.(type) {
		case nil:
			out.values[k] = nil
		case *Inputs:
			nested, err := v.Clone()
			if err != nil {
				return nil, err
			}
			out.values[k] = nested
		default:
			c, err := copystructure.Copy(v)
			if err != nil {
				return nil, fmt.Errorf("inputs: copy %q: %w", k, err)
			}
			out.values[k] = c
		}
	}
	return out, nil
}
