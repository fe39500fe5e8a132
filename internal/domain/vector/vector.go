// Package vector provides the dense embedding type and the small amount of
// linear algebra the recommendation pipeline needs: means, convex blends,
// and cosine similarity.
package vector

import (
	"fmt"
	"math"
)

// Vector is a fixed-length dense embedding.
type Vector []float64

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Mean returns the arithmetic mean of the given vectors.
// All vectors must share the same dimensionality. Returns nil for empty input.
func Mean(vs []Vector) Vector {
	if len(vs) == 0 {
		return nil
	}
	out := make(Vector, len(vs[0]))
	for _, v := range vs {
		for i := range out {
			out[i] += v[i]
		}
	}
	n := float64(len(vs))
	for i := range out {
		out[i] /= n
	}
	return out
}

// Blend returns wa*a + wb*b. Weights summing to 1 keep the result a convex
// blend that does not grow vector magnitude.
func Blend(a, b Vector, wa, wb float64) Vector {
	out := make(Vector, len(a))
	for i := range out {
		out[i] = wa*a[i] + wb*b[i]
	}
	return out
}

// Cosine returns the cosine similarity of a and b in [-1,1].
// Returns 0 when either vector has zero magnitude.
func Cosine(a, b Vector) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Round4 rounds to 4 decimal places for presentation. Full precision is kept
// internally for ranking.
func Round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// Table is an immutable id-addressed embedding lookup with a fixed
// dimensionality shared by every vector.
type Table struct {
	dim     int
	vectors map[int64]Vector
}

// NewTable validates dimensional uniformity and builds a Table.
func NewTable(dim int, vectors map[int64]Vector) (*Table, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %d", dim)
	}
	for id, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector for id %d has %d dimensions, want %d", id, len(v), dim)
		}
	}
	return &Table{dim: dim, vectors: vectors}, nil
}

// Dimensions returns the shared vector length.
func (t *Table) Dimensions() int { return t.dim }

// Len returns the number of stored vectors.
func (t *Table) Len() int { return len(t.vectors) }

// VectorFor returns the embedding for a strain id.
func (t *Table) VectorFor(id int64) (Vector, bool) {
	v, ok := t.vectors[id]
	return v, ok
}

// MeanAll returns the mean of every stored vector (the cold-start base).
// Returns nil for an empty table.
func (t *Table) MeanAll() Vector {
	if len(t.vectors) == 0 {
		return nil
	}
	out := make(Vector, t.dim)
	for _, v := range t.vectors {
		for i := range out {
			out[i] += v[i]
		}
	}
	n := float64(len(t.vectors))
	for i := range out {
		out[i] /= n
	}
	return out
}
