package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDistincts(t *testing.T) {
	actual := GetDistincts([]int{1, 2})
	expected := []int{1, 2}
	sort.Ints(expected)
	sort.Ints(actual)
	require.Equal(t, expected, actual)

	actual = GetDistincts([]int{1, 2, 3, 1, 2, 3})
	expected = []int{1, 2, 3}
	sort.Ints(expected)
	sort.Ints(actual)
	require.Equal(t, expected, actual)

	actual = GetDistincts([]int{-1, 1, 1, 1})
	expected = []int{-1, 1}
	sort.Ints(expected)
	sort.Ints(actual)
	require.Equal(t, expected, actual)
}

func TestGetSortedDistincts(t *testing.T) {
	require.Equal(t, []int{100, 200, 1000}, GetSortedDistincts([]int{1000, 100, 200, 100}))
	require.Equal(t, []int{}, GetSortedDistincts([]int{}))
}

func TestMaxAbsDiff(t *testing.T) {
	require.Equal(t, 0.0, MaxAbsDiff([]float64{1, 2}, []float64{1, 2}))
	require.Equal(t, 3.0, MaxAbsDiff([]float64{1, 2}, []float64{1, 2, -3}))
	require.Equal(t, 0.5, MaxAbsDiff([]float64{1.5, 2}, []float64{1, 2}))
}

func TestLogSpace(t *testing.T) {
	require.Equal(t, []int{100, 215, 464, 1000, 2154, 4642, 10000}, LogSpace(100, 10000, 7))
	require.Equal(t, []int{2, 3, 4}, LogSpace(2, 4, 5))
	require.Equal(t, []int{7}, LogSpace(7, 70, 1))
	require.Panics(t, func() { LogSpace(0, 10, 3) })
}
