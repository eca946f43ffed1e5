package nnbot

// Evaluator is the pluggable, opaque scoring function: given a batch of N
// encoded boards, it returns N scalar scores, each higher for positions
// more favorable to the side to move in that position. Implementations
// are treated as pure and reentrant.
type Evaluator interface {
	Evaluate(batch []float32) (scores []float32, err error)
}
