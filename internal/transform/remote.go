package transform

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"

	"mungebits/internal/transport"
	"mungebits/mungebit"
	"mungebits/plane"
)

const defaultTimeout = 5 * time.Second

// Remote is a stateless mungebit.Piece backed by a Predictor service.
type Remote struct {
	target  string
	client  *transport.Client
	timeout time.Duration
}

func NewRemote(target string, opts ...grpc.DialOption) (*Remote, error) {
	c, err := transport.Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Remote{target: target, client: c, timeout: defaultTimeout}, nil
}

func (r *Remote) Target() string { return r.target }

// Run sends the frame and replaces every column the service returns.
func (r *Remote) Run(p mungebit.Plane) (mungebit.Plane, error) {
	if p == nil {
		return nil, mungebit.ErrNilPlane
	}
	in, ok := p.(*plane.Frame)
	if !ok {
		return p, fmt.Errorf("remote %s: want *plane.Frame, got %T", r.target, p)
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := r.client.Predict(ctx, in)
	if err != nil {
		return p, fmt.Errorf("remote %s: %w", r.target, err)
	}
	for _, name := range out.Names() {
		col, err := out.Column(name)
		if err != nil {
			return p, err
		}
		if err := p.SetColumn(name, col); err != nil {
			return p, fmt.Errorf("remote %s: %w", r.target, err)
		}
	}
	return p, nil
}

func (r *Remote) Close() error { return r.client.Close() }
