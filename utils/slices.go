// Package utils implements generic helpers on slices of numbers.
package utils

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// GetDistincts returns the list of distinct elements in v.
// Order is not guaranteed.
func GetDistincts[V comparable](v []V) (vd []V) {
	m := map[V]bool{}
	for _, vi := range v {
		m[vi] = true
	}

	vd = make([]V, len(m))

	var i int
	for mi := range m {
		vd[i] = mi
		i++
	}

	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// GetSortedDistincts returns the distinct elements of v in increasing order.
func GetSortedDistincts[T constraints.Ordered](v []T) (vd []T) {
	vd = GetDistincts(v)
	SortSlice(vd)
	return
}

// MaxAbsDiff returns max_i |a[i] - b[i]|, the shortest slice being padded with zeros.
func MaxAbsDiff[T constraints.Float](a, b []T) (d T) {
	for i := 0; i < max(len(a), len(b)); i++ {
		var ai, bi T
		if i < len(a) {
			ai = a[i]
		}
		if i < len(b) {
			bi = b[i]
		}
		d = max(d, T(math.Abs(float64(ai-bi))))
	}
	return
}

// LogSpace returns n integers evenly spaced on a logarithmic scale between
// start and stop, both included, rounded to the nearest integer and deduplicated.
func LogSpace[T constraints.Integer](start, stop T, n int) (s []T) {

	if start <= 0 || stop < start {
		panic(fmt.Errorf("cannot LogSpace: invalid range [%d, %d]", start, stop))
	}

	if n < 2 {
		return []T{start}
	}

	logStart := math.Log(float64(start))
	step := (math.Log(float64(stop)) - logStart) / float64(n-1)

	s = make([]T, 0, n)
	for i := 0; i < n; i++ {
		v := T(math.Round(math.Exp(logStart + float64(i)*step)))
		if len(s) == 0 || s[len(s)-1] != v {
			s = append(s, v)
		}
	}

	s[len(s)-1] = stop

	return
}
