package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
)

// FilterPool returns the indices of rows eligible for questions: rows
// whose value column holds a real value and whose key is not labeled
// Good. When the key column is missing the value doubles as key.
func FilterPool(ds *dataset.Dataset, keyField, valueField dataset.Field, labels knowledge.Set) ([]int, error) {
	if ds.Len() == 0 {
		return nil, ErrDataUnavailable
	}
	if _, ok := ds.Column(valueField); !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrDataUnavailable, ErrColumnNotFound, valueField)
	}

	pool := make([]int, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		v, _ := ds.Value(i, valueField)
		if dataset.IsPlaceholder(v) {
			continue
		}
		if labels.Known(rowKey(ds, i, keyField, valueField)) {
			continue
		}
		pool = append(pool, i)
	}
	return pool, nil
}

// rowKey is the knowledge-label key of row i.
func rowKey(ds *dataset.Dataset, i int, keyField, valueField dataset.Field) string {
	if k := ds.ValueOr(i, keyField, ""); k != "" {
		return k
	}
	v, _ := ds.Value(i, valueField)
	return strings.TrimSpace(v)
}

// SampleOne draws one element uniformly from pool.
func SampleOne[T any](rng *rand.Rand, pool []T) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, ErrDataUnavailable
	}
	return pool[rng.IntN(len(pool))], nil
}

// SampleSet draws min(n, len(pool)) distinct elements without
// replacement, in random order. pool is not modified.
func SampleSet[T any](rng *rand.Rand, pool []T, n int) ([]T, error) {
	if len(pool) == 0 || n <= 0 {
		return nil, ErrDataUnavailable
	}
	if n > len(pool) {
		n = len(pool)
	}

	work := append([]T(nil), pool...)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:n], nil
}
