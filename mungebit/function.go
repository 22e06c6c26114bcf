package mungebit

import "maps"

// Func is the body of a train or predict step. It reads and writes columns
// of p in place and may use in to store or replay learned parameters.
type Func func(p Plane, in *Inputs, args ...any) error

// Function is a Func together with the dispatch tags attached by the factory
// that built it (for example kind=column). The zero Function is the null
// function: running it is a no-op.
type Function struct {
	fn   Func
	tags map[string]string
}

func NewFunction(fn Func) Function { return Function{fn: fn} }

// Tag returns a copy of f carrying key=value. f itself is not modified.
func (f Function) Tag(key, value string) Function {
	tags := make(map[string]string, len(f.tags)+1)
	maps.Copy(tags, f.tags)
	tags[key] = value
	return Function{fn: f.fn, tags: tags}
}

// Tags returns a copy of the tags on f.
func (f Function) Tags() map[string]string {
	return maps.Clone(f.tags)
}

func (f Function) IsNil() bool { return f.fn == nil }

// Call runs f. A null Function does nothing.
func (f Function) Call(p Plane, in *Inputs, args ...any) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(p, in, args...)
}

// Normalize returns f without any tags. The body is shared, so the result
// behaves exactly like f, but nothing a factory attached to f leaks into
// units derived from it.
func Normalize(f Function) Function {
	return Function{fn: f.fn}
}

// asFunction reports whether v is a non-nil callable and returns it as a
// Function.
func asFunction(v any) (Function, bool) {
	switch f := v.(type) {
	case Function:
		return f, f.fn != nil
	case *Function:
		if f == nil || f.fn == nil {
			return Function{}, false
		}
		return *f, true
	case Func:
		return Function{fn: f}, f != nil
	case func(Plane, *Inputs, ...any) error:
		return Function{fn: f}, f != nil
	}
	return Function{}, false
}

// resolveFunction accepts a callable or a nil value. ok is false for
// anything else.
func resolveFunction(v any) (fn Function, ok bool) {
	if fn, ok := asFunction(v); ok {
		return fn, true
	}
	// Typed nil functions count as null, like an untyped nil.
	switch v.(type) {
	case nil, Function, *Function, Func, func(Plane, *Inputs, ...any) error:
		return Function{}, true
	}
	return Function{}, false
}

func isCallable(v any) bool {
	_, ok := asFunction(v)
	return ok
}
