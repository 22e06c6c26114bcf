package mungebit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mungebits/mungebit"
)

func TestMungepiece_RunTrainsThenPredicts(t *testing.T) {
	var train, predict recorder
	mp := mustPiece(t, []any{[]any{train.fn(), predict.fn()}, "x"})
	f := frame(t, "x", 1.0)

	for i := 0; i < 3; i++ {
		_, err := mp.Run(f)
		require.NoError(t, err)
	}
	assert.Len(t, train.calls, 1)
	assert.Len(t, predict.calls, 2)
}

func TestMungepiece_RelaxedRunsDoNotShareState(t *testing.T) {
	mp := mustPiece(t, []any{centerer(), "x"}, mungebit.TrainOnly())

	first := frame(t, "x", 1.0, 2.0, 3.0)
	_, err := mp.Run(first)
	require.NoError(t, err)
	assert.Equal(t, []any{-1.0, 0.0, 1.0}, columnOf(t, first, "x"))

	second := frame(t, "x", 10.0, 20.0, 30.0)
	_, err = mp.Run(second)
	require.NoError(t, err)
	assert.Equal(t, []any{-10.0, 0.0, 10.0}, columnOf(t, second, "x"))

	mean, _ := mp.Mungebit().Inputs().Float("mean")
	assert.Equal(t, 20.0, mean)
}

func TestMungepiece_RelaxedTrainResetsPredictDoesNot(t *testing.T) {
	mp := mustPiece(t, []any{centerer(), "x"}, mungebit.TrainOnly())

	_, err := mp.Train(frame(t, "x", 2.0, 4.0))
	require.NoError(t, err)

	f := frame(t, "x", 3.0)
	_, err = mp.Predict(f)
	require.NoError(t, err)
	assert.Equal(t, []any{0.0}, columnOf(t, f, "x"))

	_, err = mp.Train(frame(t, "x", 10.0))
	require.NoError(t, err)
	mean, _ := mp.Mungebit().Inputs().Float("mean")
	assert.Equal(t, 10.0, mean)
}

func TestMungepiece_EnforcedKeepsTrainedState(t *testing.T) {
	mp := mustPiece(t, []any{centerer(), "x"})

	_, err := mp.Run(frame(t, "x", 1.0, 3.0))
	require.NoError(t, err)

	f := frame(t, "x", 10.0)
	_, err = mp.Run(f)
	require.NoError(t, err)
	assert.Equal(t, []any{8.0}, columnOf(t, f, "x"))

	_, err = mp.Train(frame(t, "x", 1.0))
	assert.ErrorIs(t, err, mungebit.ErrAlreadyTrained)
}

func TestMungepiece_PredictBeforeTrain(t *testing.T) {
	mp := mustPiece(t, []any{double, "x"})
	_, err := mp.Predict(frame(t, "x", 1.0))
	assert.ErrorIs(t, err, mungebit.ErrUntrainedInvocation)
}

func TestMungepiece_Clone(t *testing.T) {
	mp := mustPiece(t, []any{centerer(), "x"})
	_, err := mp.Train(frame(t, "x", 4.0))
	require.NoError(t, err)

	c, err := mp.Clone()
	require.NoError(t, err)
	assert.NotSame(t, mp.Mungebit(), c.Mungebit())
	assert.Equal(t, mp.PredictArgs(), c.PredictArgs())

	f := frame(t, "x", 5.0)
	_, err = c.Run(f)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, columnOf(t, f, "x"))
}
