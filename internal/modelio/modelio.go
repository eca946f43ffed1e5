// Package modelio loads the external evaluator model file. The real
// artifact format (ONNX) is out of scope; this package instead loads a
// JSON-described weight manifest and validates it against a configured
// parameter cap before handing back an opaque nnbot.Evaluator.
package modelio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/chessbench/arena/internal/nnbot"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("modelio")

// ErrModelRejected is returned (wrapped with the actual/cap counts) when a
// model's parameter total exceeds ModelConfig.MaxParams.
var ErrModelRejected = errors.New("model rejected: parameter cap exceeded")

// ModelFormat selects the evaluation head shape the loader expects.
// Only Scalar is implemented; PolicyHead is reserved for a future
// [1,4096] policy-head strategy and is rejected at load time.
type ModelFormat int

const (
	// Scalar is the [N,1] evaluation-head shape this loader supports.
	Scalar ModelFormat = iota
	// PolicyHead is a reserved, unimplemented [1,4096] variant.
	PolicyHead
)

// ModelConfig bounds and shapes what the loader will accept.
type ModelConfig struct {
	// MaxParams is the parameter cap; models with more total weights are
	// rejected. Defaults to 10,000,000 when zero.
	MaxParams int
	// Format must be Scalar; any other value is rejected.
	Format ModelFormat
}

// DefaultMaxParams is the parameter cap used when ModelConfig.MaxParams
// is left at its zero value.
const DefaultMaxParams = 10_000_000

// manifest is the on-disk JSON shape: a flat linear layer over the
// 12x64=768-element encoded board, producing a single scalar score.
type manifest struct {
	Weights []float32 `json:"weights"`
	Bias    float32   `json:"bias"`
}

// LinearEvaluator is a JSON-manifest-backed nnbot.Evaluator: each row of
// the input batch is scored as the dot product with Weights, plus Bias.
type LinearEvaluator struct {
	weights []float32
	bias    float32
}

var _ nnbot.Evaluator = (*LinearEvaluator)(nil)

// Load reads and validates a weight manifest from path.
func Load(path string, cfg ModelConfig) (*LinearEvaluator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelio: read %s: %w", path, err)
	}
	eval, err := LoadBytes(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("modelio: %s: %w", path, err)
	}
	return eval, nil
}

// LoadBytes parses and validates a weight manifest already read into memory.
func LoadBytes(data []byte, cfg ModelConfig) (*LinearEvaluator, error) {
	if cfg.Format != Scalar {
		return nil, fmt.Errorf("modelio: unsupported model format %d", cfg.Format)
	}
	maxParams := cfg.MaxParams
	if maxParams <= 0 {
		maxParams = DefaultMaxParams
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Weights) != nnbot.TensorSize {
		return nil, fmt.Errorf("manifest has %d weights, want %d", len(m.Weights), nnbot.TensorSize)
	}

	total := len(m.Weights) + 1 // +1 for bias
	if total > maxParams {
		return nil, fmt.Errorf("%w: %d params > cap %d", ErrModelRejected, total, maxParams)
	}

	log.Infof("loaded model: %d parameters (cap %d)", total, maxParams)
	return &LinearEvaluator{weights: m.Weights, bias: m.Bias}, nil
}

// Evaluate scores every row of batch ([N, TensorSize]) as a single linear
// layer, satisfying nnbot.Evaluator.
func (e *LinearEvaluator) Evaluate(batch []float32) ([]float32, error) {
	if len(batch)%nnbot.TensorSize != 0 {
		return nil, fmt.Errorf("modelio: batch length %d not a multiple of %d", len(batch), nnbot.TensorSize)
	}
	n := len(batch) / nnbot.TensorSize
	scores := make([]float32, n)
	for i := 0; i < n; i++ {
		row := batch[i*nnbot.TensorSize : (i+1)*nnbot.TensorSize]
		var sum float32
		for j, w := range e.weights {
			sum += w * row[j]
		}
		scores[i] = sum + e.bias
	}
	return scores, nil
}
