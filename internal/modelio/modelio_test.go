package modelio

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/chessbench/arena/internal/nnbot"
	"github.com/stretchr/testify/require"
)

func manifestJSON(t *testing.T, numWeights int) []byte {
	t.Helper()
	weights := make([]float32, numWeights)
	for i := range weights {
		weights[i] = 0.01
	}
	data, err := json.Marshal(manifest{Weights: weights, Bias: 0.5})
	require.NoError(t, err)
	return data
}

func TestLoadBytesAcceptsValidManifest(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize)

	eval, err := LoadBytes(data, ModelConfig{MaxParams: 10_000_000})
	require.NoError(t, err)
	require.NotNil(t, eval)
}

func TestLoadBytesRejectsOversizedManifest(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize)

	_, err := LoadBytes(data, ModelConfig{MaxParams: 100})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrModelRejected))
}

func TestLoadBytesRejectsWrongWeightCount(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize-1)

	_, err := LoadBytes(data, ModelConfig{})
	require.Error(t, err)
}

func TestLoadBytesRejectsNonScalarFormat(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize)

	_, err := LoadBytes(data, ModelConfig{Format: PolicyHead})
	require.Error(t, err)
}

func TestEvaluateComputesLinearScore(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize)
	eval, err := LoadBytes(data, ModelConfig{})
	require.NoError(t, err)

	batch := make([]float32, nnbot.TensorSize)
	for i := range batch {
		batch[i] = 1.0
	}

	scores, err := eval.Evaluate(batch)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.InDelta(t, float64(nnbot.TensorSize)*0.01+0.5, float64(scores[0]), 1e-3)
}

func TestEvaluateRejectsMisshapenBatch(t *testing.T) {
	data := manifestJSON(t, nnbot.TensorSize)
	eval, err := LoadBytes(data, ModelConfig{})
	require.NoError(t, err)

	_, err = eval.Evaluate(make([]float32, nnbot.TensorSize+1))
	require.Error(t, err)
}
