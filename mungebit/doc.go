// Package mungebit implements trainable data transformation units.
//
// A Mungebit pairs a train function with a predict function and owns an
// Inputs cache. The train function learns parameters from a data plane and
// stores them in the cache; the predict function replays them on new data
// without seeing the training set again.
//
// A Mungepiece binds a Mungebit to the arguments each phase is invoked with.
// Pieces are usually built with Parse, which accepts the argument shapes
// below in priority order:
//
//	piece                                 // *Mungepiece or pipeline, returned as is
//	fn                                    // one function for both phases
//	[]any{bit, args...}                   // new unit from an existing Mungebit
//	[]any{[]any{mp}}                      // single *Mungepiece, returned as is
//	[]any{[]any{train, a...}, []any{predict, b...}}
//	[]any{[]any{train, predict}, args...}
//	[]any{fn, args...}
//
// Callers that know the shape up front can skip detection and call Build
// with a Shared, Paired, Separate or Derived form.
//
// Nothing in this package is safe for concurrent use. Clone a trained
// Mungebit to use it from another goroutine.
package mungebit
