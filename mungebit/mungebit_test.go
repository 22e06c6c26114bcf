package mungebit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mungebits/mungebit"
)

func TestMungebit_PredictBeforeTrainEnforced(t *testing.T) {
	var predict recorder
	bit := mungebit.New(mungebit.NewFunction(double), mungebit.NewFunction(predict.fn()))

	_, err := bit.Predict(frame(t, "x", 1.0), "x")
	require.ErrorIs(t, err, mungebit.ErrUntrainedInvocation)
	assert.Empty(t, predict.calls)
	assert.False(t, bit.Trained())
}

func TestMungebit_PredictBeforeTrainRelaxed(t *testing.T) {
	var predict recorder
	bit := mungebit.New(mungebit.NewFunction(double), mungebit.NewFunction(predict.fn()),
		mungebit.WithEnforceTrain(false))

	_, err := bit.Predict(frame(t, "x", 1.0), "x")
	require.NoError(t, err)
	assert.Len(t, predict.calls, 1)
	assert.False(t, bit.Trained(), "tolerated predict must not mark the unit trained")
}

func TestMungebit_TrainTransitionsOnce(t *testing.T) {
	bit := mungebit.New(mungebit.NewFunction(double), mungebit.NewFunction(double))
	f := frame(t, "x", 1.0)

	_, err := bit.Train(f, "x")
	require.NoError(t, err)
	assert.True(t, bit.Trained())

	_, err = bit.Train(f, "x")
	require.ErrorIs(t, err, mungebit.ErrAlreadyTrained)
	assert.Equal(t, []any{2.0}, columnOf(t, f, "x"))
}

func TestMungebit_RelaxedAllowsRetrain(t *testing.T) {
	bit := mungebit.New(mungebit.NewFunction(double), mungebit.Function{}, mungebit.WithEnforceTrain(false))
	f := frame(t, "x", 1.0)
	for i := 0; i < 2; i++ {
		_, err := bit.Train(f, "x")
		require.NoError(t, err)
	}
	assert.Equal(t, []any{4.0}, columnOf(t, f, "x"))
}

func TestMungebit_FailedTrainStaysUntrained(t *testing.T) {
	boom := errors.New("boom")
	bit := mungebit.New(mungebit.NewFunction(func(mungebit.Plane, *mungebit.Inputs, ...any) error {
		return boom
	}), mungebit.Function{})

	_, err := bit.Train(frame(t, "x", 1.0))
	require.Equal(t, boom, err, "transformation errors are returned as is")
	assert.False(t, bit.Trained())
}

func TestMungebit_PredictErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	bit := mungebit.New(mungebit.Function{}, mungebit.NewFunction(func(mungebit.Plane, *mungebit.Inputs, ...any) error {
		return boom
	}))
	f := frame(t, "x", 1.0)
	_, err := bit.Train(f)
	require.NoError(t, err)

	_, err = bit.Predict(f)
	require.Equal(t, boom, err)
	assert.True(t, bit.Trained())
}

func TestMungebit_NilFunctionsAreNoops(t *testing.T) {
	bit := mungebit.New(mungebit.Function{}, mungebit.Function{})
	f := frame(t, "x", 1.0)

	got, err := bit.Train(f, "x")
	require.NoError(t, err)
	assert.Same(t, f, got)
	assert.True(t, bit.Trained())

	_, err = bit.Predict(f, "x")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, columnOf(t, f, "x"))
}

func TestMungebit_NilPlaneAndUnknownPhase(t *testing.T) {
	bit := mungebit.New(mungebit.NewFunction(double), mungebit.NewFunction(double))
	_, err := bit.Train(nil, "x")
	require.ErrorIs(t, err, mungebit.ErrNilPlane)

	_, err = bit.Run(frame(t, "x", 1.0), mungebit.Phase(7))
	require.Error(t, err)
	assert.False(t, bit.Trained())
}

func TestMungebit_InputsCacheReachesPredict(t *testing.T) {
	train := mungebit.NewFunction(centerer())
	predict := mungebit.NewFunction(func(p mungebit.Plane, in *mungebit.Inputs, args ...any) error {
		name := args[0].(string)
		mean, ok := in.Float("mean")
		if !ok {
			return errors.New("mean not learned")
		}
		col, err := p.Column(name)
		if err != nil {
			return err
		}
		out := make([]any, len(col))
		for i, v := range col {
			out[i] = v.(float64) - mean
		}
		return p.SetColumn(name, out)
	})
	bit := mungebit.New(train, predict)

	_, err := bit.Train(frame(t, "x", 1.0, 2.0, 6.0), "x")
	require.NoError(t, err)
	mean, ok := bit.Inputs().Float("mean")
	require.True(t, ok)
	assert.Equal(t, 3.0, mean)

	// a single new row: predict cannot recompute the mean from it
	f := frame(t, "x", 10.0)
	_, err = bit.Predict(f, "x")
	require.NoError(t, err)
	assert.Equal(t, []any{7.0}, columnOf(t, f, "x"))

	again, _ := bit.Inputs().Float("mean")
	assert.Equal(t, 3.0, again)
}

func TestMungebit_FreshAndClone(t *testing.T) {
	bit := mungebit.New(mungebit.NewFunction(centerer()), mungebit.NewFunction(centerer()))
	_, err := bit.Train(frame(t, "x", 2.0, 4.0), "x")
	require.NoError(t, err)
	bit.Inputs().Scope("col").Set("n", []any{1.0})

	fresh := bit.Fresh()
	assert.False(t, fresh.Trained())
	assert.Zero(t, fresh.Inputs().Len())
	assert.True(t, fresh.EnforceTrain())

	clone, err := bit.Clone()
	require.NoError(t, err)
	assert.True(t, clone.Trained())
	assert.Equal(t, bit.Inputs().Keys(), clone.Inputs().Keys())

	clone.Inputs().Set("mean", 100.0)
	clone.Inputs().Scope("col").Set("n", []any{2.0})
	mean, _ := bit.Inputs().Float("mean")
	assert.Equal(t, 3.0, mean)
	n, _ := bit.Inputs().Scope("col").Get("n")
	assert.Equal(t, []any{1.0}, n)
}

func TestInferPhase(t *testing.T) {
	assert.Equal(t, mungebit.PhaseTrain, mungebit.InferPhase(false))
	assert.Equal(t, mungebit.PhasePredict, mungebit.InferPhase(true))
	assert.Equal(t, "train", mungebit.PhaseTrain.String())
	assert.Equal(t, "predict", mungebit.PhasePredict.String())
}

func TestNormalize(t *testing.T) {
	tagged := mungebit.NewFunction(double).Tag("kind", "column").Tag("name", "double")
	assert.Len(t, tagged.Tags(), 2)

	plain := mungebit.Normalize(tagged)
	assert.Empty(t, plain.Tags())
	assert.Empty(t, mungebit.Normalize(plain).Tags())
	assert.False(t, plain.IsNil())

	f := frame(t, "x", 3.0)
	require.NoError(t, plain.Call(f, mungebit.NewInputs(), "x"))
	assert.Equal(t, []any{6.0}, columnOf(t, f, "x"))

	assert.True(t, mungebit.Normalize(mungebit.Function{}).IsNil())
}

func TestFunction_TagDoesNotShareMetadata(t *testing.T) {
	base := mungebit.NewFunction(double).Tag("kind", "column")
	derived := base.Tag("kind", "plain")
	assert.Equal(t, "column", base.Tags()["kind"])
	assert.Equal(t, "plain", derived.Tags()["kind"])

	tags := base.Tags()
	tags["kind"] = "mutated"
	assert.Equal(t, "column", base.Tags()["kind"])
}
