package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"mungebits/internal/logging"
	"mungebits/internal/telemetry"
	"mungebits/plane"
	"mungebits/sink"
	"mungebits/source/kafka"
)

// Stream routes source records through a trained pipeline into sinks. Each
// record value is a JSON object or array of objects.
type Stream struct {
	source    kafka.Adapter
	predictor Predictor
	sinks     []sink.Adapter
	log       *slog.Logger
}

func NewStream(src kafka.Adapter, p Predictor, sinks ...sink.Adapter) *Stream {
	return &Stream{source: src, predictor: p, sinks: sinks, log: logging.For("stream")}
}

// Run blocks until ctx is done or the source fails.
func (s *Stream) Run(ctx context.Context) error {
	return s.source.Run(ctx, s.handle)
}

// handle drops records that fail to decode or predict; a sink failure stops
// the source so the offset is not committed.
func (s *Stream) handle(m *kafka.Message) error {
	id := uuid.NewString()
	f, err := plane.DecodeJSON(m.Value)
	if err != nil {
		s.log.Warn("decode failed", "msg_id", id, "topic", m.Topic, "offset", m.Offset, "err", err)
		telemetry.ObserveMessage("decode_error")
		return nil
	}
	out, err := s.predictor.Predict(f)
	if err != nil {
		s.log.Warn("predict failed", "msg_id", id, "topic", m.Topic, "offset", m.Offset, "err", err)
		telemetry.ObserveMessage("predict_error")
		return nil
	}
	pf, ok := out.(*plane.Frame)
	if !ok {
		telemetry.ObserveMessage("predict_error")
		return fmt.Errorf("stream: pipeline returned %T", out)
	}
	for _, sk := range s.sinks {
		if err := sk.Push(sink.Batch{Key: m.Key, Frame: pf}); err != nil {
			telemetry.ObserveMessage("sink_error")
			return fmt.Errorf("stream: sink: %w", err)
		}
	}
	s.log.Debug("routed", "msg_id", id, "rows", pf.Rows())
	telemetry.ObserveMessage("ok")
	return nil
}

func (s *Stream) Close() error {
	errs := []error{s.source.Close()}
	for _, sk := range s.sinks {
		errs = append(errs, sk.Close())
	}
	return errors.Join(errs...)
}
