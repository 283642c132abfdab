package analytics

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned when a statistic needs more observations
	// than were supplied.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrZeroVariance is returned when a correlation input is constant.
	ErrZeroVariance = errors.New("zero variance")
)

// Count pairs a categorical value with the number of times it occurred.
type Count struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// ValueCounts tallies values and returns them by descending count. Values
// with equal counts keep the order in which they were first seen.
func ValueCounts(values []string) []Count {
	index := make(map[string]int, len(values))
	var counts []Count
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count{Value: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if counts == nil {
		counts = []Count{}
	}
	return counts
}

// Top returns at most n leading entries of a ranked count list.
func Top(counts []Count, n int) []Count {
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// Mode returns the most frequent value for which keep reports true. Ties
// resolve to the lexicographically smallest value. ok is false when no
// value qualifies.
func Mode(values []string, keep func(string) bool) (mode string, ok bool) {
	freq := make(map[string]int)
	for _, v := range values {
		if keep != nil && !keep(v) {
			continue
		}
		freq[v]++
	}
	best := -1
	for v, n := range freq {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode, best > 0
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Percent returns part/total as a percentage rounded to two places. A zero
// total yields 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part)/float64(total)*100, 2)
}

// Mean is the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrInsufficientData
	}
	return stat.Mean(xs, nil), nil
}

// Pearson computes the Pearson correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.New("pearson: length mismatch")
	}
	if len(x) < 2 {
		return 0, ErrInsufficientData
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, ErrZeroVariance
	}
	return r, nil
}
