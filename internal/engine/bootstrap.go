package engine

import (
	"context"
	"fmt"
	"os"

	"mungebits/internal/config"
	"mungebits/internal/logging"
	"mungebits/internal/pipeline"
	"mungebits/internal/telemetry"
	"mungebits/internal/transport"
	"mungebits/plane"
	"mungebits/sink"
	_ "mungebits/sink/kafka" // registers the kafka sink
	"mungebits/sink/stdout"
	"mungebits/source/kafka"
)

// Bootstrap compiles and trains the pipeline, then wires the gRPC server,
// the optional stream and metrics. Nothing is served until Run.
func Bootstrap(ctx context.Context, cfg config.Engine) (*Engine, error) {
	logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	log := logging.For("engine")

	// 1. pipeline runner
	if cfg.Pipeline == "" {
		return nil, fmt.Errorf("pipeline: no pipeline file configured")
	}
	runner, err := pipeline.Compile(cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if cfg.TrainData != "" {
		if err := TrainFromCSV(runner, cfg.TrainData); err != nil {
			_ = runner.Close()
			return nil, err
		}
		log.Info("pipeline trained", "pipeline", runner.Name(), "data", cfg.TrainData)
	}

	// 2. transport server
	srv, err := transport.StartServer(cfg.GRPCPort, pipeline.Synchronize(runner))
	if err != nil {
		_ = runner.Close()
		return nil, fmt.Errorf("transport: %w", err)
	}

	e := &Engine{transport: srv, runner: runner, log: log}

	// 3. stream
	if cfg.Stream.Enabled {
		if e.stream, err = buildStream(cfg.Stream, runner); err != nil {
			srv.Stop()
			_ = runner.Close()
			return nil, fmt.Errorf("stream: %w", err)
		}
	}

	// 4. metrics
	if cfg.MetricsPort > 0 {
		telemetry.Expose(cfg.MetricsPort)
	}
	return e, nil
}

// TrainFromCSV trains every step of r on the rows of the CSV at path.
func TrainFromCSV(r *pipeline.Runner, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("train data: %w", err)
	}
	defer fh.Close()
	f, err := plane.ReadCSV(fh)
	if err != nil {
		return fmt.Errorf("train data %s: %w", path, err)
	}
	if _, err := r.Train(f); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	return nil
}

// buildStream gives the stream its own copy of the trained runner so it
// does not contend with the gRPC server. On failure everything opened so far
// is closed.
func buildStream(cfg config.StreamConfig, runner *pipeline.Runner) (*pipeline.Stream, error) {
	kcfg, err := config.LoadKafkaConfig(cfg.Source)
	if err != nil {
		return nil, err
	}
	src, err := kafka.NewAdapter(cfg.Driver)
	if err != nil {
		return nil, err
	}

	sinks := make([]sink.Adapter, 0, len(cfg.Sinks))
	fail := func(err error) (*pipeline.Stream, error) {
		for _, sk := range sinks {
			_ = sk.Close()
		}
		_ = src.Close()
		return nil, err
	}

	if err := src.Configure(kcfg); err != nil {
		return fail(err)
	}
	for _, name := range cfg.Sinks {
		sk, err := sink.NewAdapter(name)
		if err != nil {
			return fail(err)
		}
		var sc any
		switch name {
		case "kafka":
			sc = cfg.KafkaSink
		default:
			sc = stdout.Config{}
		}
		if err := sk.Configure(sc); err != nil {
			_ = sk.Close()
			return fail(fmt.Errorf("sink %s: %w", name, err))
		}
		sinks = append(sinks, sk)
	}

	clone, err := runner.Clone()
	if err != nil {
		return fail(err)
	}
	return pipeline.NewStream(src, pipeline.Synchronize(clone), sinks...), nil
}
