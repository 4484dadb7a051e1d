// Package weights persists the linear evaluator's weight vector and keeps a
// trend log of how it evolves during training.
package weights

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Vector is an ordered weight sequence, one entry per selected feature.
type Vector []float64

// Unit returns a vector of n ones.
func Unit(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("weights not found")

// Store loads and saves a weight vector. Save overwrites wholesale.
type Store interface {
	Load() (Vector, error)
	Save(Vector) error
}

// record is the persisted shape: a single named field holding the vector.
type record struct {
	Weight Vector `json:"weight"`
}

// LoadOrDefault loads the stored vector, substituting a unit vector of
// length n when nothing is stored, the stored data is unreadable or its
// length disagrees with n.
func LoadOrDefault(store Store, n int) Vector {
	v, err := store.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		log.Info().Int("length", n).Msg("no stored weights, initialising with unit weights")
		return Unit(n)
	case err != nil:
		log.Warn().Err(err).Int("length", n).Msg("failed to load weights, initialising with unit weights")
		return Unit(n)
	case len(v) != n:
		log.Warn().Int("stored", len(v)).Int("expected", n).Msg("stored weights length mismatch, initialising with unit weights")
		return Unit(n)
	}
	return v
}
