package mungebit

import "fmt"

// Parse turns a heterogeneous argument list into a runnable piece. The
// recognized shapes, in the order they are tried:
//
//  1. a *Mungepiece is returned unchanged;
//  2. any other Piece (a pipeline) is returned unchanged;
//  3. a bare *Mungebit or callable is treated as a one-element list;
//  4. a list headed by a *Mungebit derives a new unit from its functions,
//     the rest of the list being the arguments of both phases;
//  5. a one-element list holding a *Mungepiece returns that piece;
//  6. a two-element list of non-empty lists headed by callables gives the
//     train function and arguments, then the predict function and arguments;
//  7. a list headed by a two-item list of callables (one may be nil) pairs
//     train and predict functions; otherwise the head is the function of
//     both phases. The rest of the list is shared by both phases.
//
// Shape 6 wins over shape 7 whenever both apply, so
// []any{[]any{train, a}, []any{predict, b}} never reads as a paired head.
func Parse(arg any, opts ...ParseOption) (Piece, error) {
	switch v := arg.(type) {
	case *Mungepiece:
		if v != nil {
			return v, nil
		}
	case Piece:
		return v, nil
	}

	args, err := argumentList(arg)
	if err != nil {
		return nil, err
	}

	if bit, ok := args[0].(*Mungebit); ok {
		return build(Derived{Bit: bit, Args: args[1:]}, opts)
	}
	if len(args) == 1 {
		if mp, ok := args[0].(*Mungepiece); ok && mp != nil {
			return mp, nil
		}
	}

	form, err := detectForm(args)
	if err != nil {
		return nil, err
	}
	return build(form, opts)
}

func build(form Form, opts []ParseOption) (Piece, error) {
	mp, err := Build(form, opts...)
	if err != nil {
		return nil, err
	}
	return mp, nil
}

func argumentList(arg any) ([]any, error) {
	switch v := arg.(type) {
	case *Mungebit:
		if v == nil {
			return nil, fmt.Errorf("%w: nil mungebit", ErrInvalidArgumentShape)
		}
		return []any{v}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty argument list", ErrInvalidArgumentShape)
		}
		return v, nil
	}
	if isCallable(arg) {
		return []any{arg}, nil
	}
	return nil, fmt.Errorf("%w: cannot build a mungepiece from %T", ErrInvalidArgumentShape, arg)
}

func detectForm(args []any) (Form, error) {
	if len(args) == 2 {
		train, okTrain := callList(args[0])
		predict, okPredict := callList(args[1])
		if okTrain && okPredict {
			return Separate{Train: train, Predict: predict}, nil
		}
	}

	rest := args[1:]
	if pair, ok := args[0].([]any); ok {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: function pair must have 2 elements, got %d", ErrInvalidArgumentShape, len(pair))
		}
		train, okTrain := resolveFunction(pair[0])
		predict, okPredict := resolveFunction(pair[1])
		if !okTrain || !okPredict {
			return nil, fmt.Errorf("%w: function pair holds %T and %T", ErrInvalidArgumentShape, pair[0], pair[1])
		}
		if train.IsNil() && predict.IsNil() {
			return nil, fmt.Errorf("%w: function pair holds no function", ErrInvalidArgumentShape)
		}
		return Paired{Train: train, Predict: predict, Args: rest}, nil
	}

	fn, ok := resolveFunction(args[0])
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidArgumentShape, args[0])
	}
	return Shared{Fn: fn, Args: rest}, nil
}

// callList matches a non-empty list headed by a callable.
func callList(v any) (Call, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return Call{}, false
	}
	fn, ok := asFunction(list[0])
	if !ok {
		return Call{}, false
	}
	return Call{Fn: fn, Args: list[1:]}, true
}
