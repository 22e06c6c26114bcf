package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"mungebits/plane"
)

// Client calls a remote Predictor service.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects lazily; without options the connection is plaintext.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Predict(ctx context.Context, f *plane.Frame) (*plane.Frame, error) {
	req, err := plane.ToProto(f)
	if err != nil {
		return nil, err
	}
	resp := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, predictMethod, req, resp); err != nil {
		return nil, err
	}
	return plane.FromProto(resp)
}

func (c *Client) Close() error {
	if c.cc != nil {
		return c.cc.Close()
	}
	return nil
}
