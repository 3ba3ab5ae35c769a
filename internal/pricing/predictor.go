package pricing

import (
	"hash/fnv"
	"math/rand/v2"
)

// PricePredictor supplies the simulated market signal behind every quote,
// trend and prediction. Factor returns a value in [lo, hi) for key.
type PricePredictor interface {
	Factor(key string, lo, hi float64) float64
	Name() string
}

// StubPredictor derives factors from an FNV-1a hash of the key, so the same
// key always yields the same factor.
type StubPredictor struct{}

func (StubPredictor) Factor(key string, lo, hi float64) float64 {
	h := fnv.New64a()
	h.Write([]byte(key))

	u := float64(h.Sum64()>>11) / (1 << 53)

	return lo + u*(hi-lo)
}

func (StubPredictor) Name() string { return "deterministic-stub" }

// RandomPredictor jitters every call independently.
type RandomPredictor struct{}

func (RandomPredictor) Factor(_ string, lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func (RandomPredictor) Name() string { return "random-walk" }

// NewPredictor maps a pricing mode to its predictor. Unknown modes get the stub.
func NewPredictor(mode string) PricePredictor {
	if mode == "random" {
		return RandomPredictor{}
	}

	return StubPredictor{}
}
