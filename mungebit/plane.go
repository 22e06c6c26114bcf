package mungebit

// Plane is the mutable tabular container transformations operate on.
// Implementations must keep a stable row ordering.
type Plane interface {
	Column(name string) ([]any, error)
	SetColumn(name string, values []any) error
	Rows() int
}

// Piece is a runnable step of a pipeline: a *Mungepiece or any orchestration
// object that runs a plane end to end.
type Piece interface {
	Run(p Plane) (Plane, error)
}
