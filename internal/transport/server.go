package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"mungebits/internal/logging"
	"mungebits/mungebit"
	"mungebits/plane"
)

const (
	serviceName   = "mungebits.v1.Predictor"
	predictMethod = "/" + serviceName + "/Predict"
)

// Predictor runs one plane through a trained pipeline.
type Predictor interface {
	Predict(mungebit.Plane) (mungebit.Plane, error)
}

// predictorServer is the handler type of the Predictor service. Rows travel
// as a list of structs, one per row.
type predictorServer interface {
	Predict(context.Context, *structpb.ListValue) (*structpb.ListValue, error)
}

var predictorDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*predictorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mungebits/v1/predictor.proto",
}

func predictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(predictorServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: predictMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(predictorServer).Predict(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

type predictorService struct {
	p   Predictor
	log *slog.Logger
}

func (s *predictorService) Predict(_ context.Context, rows *structpb.ListValue) (*structpb.ListValue, error) {
	id := uuid.NewString()
	in, err := plane.FromProto(rows)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode rows: %v", err)
	}

	start := time.Now()
	out, err := s.p.Predict(in)
	if err != nil {
		s.log.Warn("predict failed", "request_id", id, "err", err)
		if errors.Is(err, mungebit.ErrUntrainedInvocation) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	f, ok := out.(*plane.Frame)
	if !ok {
		return nil, status.Errorf(codes.Internal, "pipeline returned %T", out)
	}
	resp, err := plane.ToProto(f)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode rows: %v", err)
	}
	s.log.Debug("predicted", "request_id", id, "rows", f.Rows(), "elapsed", time.Since(start))
	return resp, nil
}

type Server struct {
	grpc *grpc.Server
	lis  net.Listener
}

func StartServer(port int, p Predictor) (*Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	return NewServer(lis, p), nil
}

// NewServer registers the Predictor service on lis. Serve must be called to
// accept connections.
func NewServer(lis net.Listener, p Predictor) *Server {
	s := &Server{
		grpc: grpc.NewServer(),
		lis:  lis,
	}
	s.grpc.RegisterService(&predictorDesc, &predictorService{p: p, log: logging.For("transport")})
	return s
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

// Serve blocks until Stop. Stopping before Serve starts is not an error.
func (s *Server) Serve() error {
	if err := s.grpc.Serve(s.lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
func (s *Server) Stop() {
	s.grpc.GracefulStop()
}
