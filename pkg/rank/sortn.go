// Package rank provides partial-sorting selection and exact medians for
// small buffers, as used by rank filtering.
package rank

import "golang.org/x/exp/constraints"

// SortN partially reorders buf so that buf[n] holds the value a full sort
// would place there, and returns that value. On return, buf[0..n] is sorted
// ascending and every element of it is <= buf[n].
//
// The implementation is an insertion sort whose sorted prefix is capped at
// n+1 elements. General-purpose selection (introselect) has a better
// asymptotic bound, but for the few-to-a-few-dozen element buffers of rank
// filtering the capped insertion sort has lower constant overhead.
//
// The buffer is consumed: it is left partially reordered and callers must
// not rely on its original order afterwards. n must satisfy
// 0 <= n < len(buf).
func SortN[T constraints.Ordered](buf []T, n int) T {
	for i := 0; i < len(buf); i++ {
		j := i
		if j > n+1 {
			j = n + 1
		}
		current := buf[i]
		buf[i] = buf[j]
		for ; j > 0 && current < buf[j-1]; j-- {
			buf[j] = buf[j-1]
		}
		buf[j] = current
	}
	return buf[n]
}

// Median returns the exact median of buf, consuming it like SortN.
//
// For an odd length 2k+1 the median is the (k+1)-th smallest element. For
// an even length 2k it is the midpoint of the k-th and (k+1)-th smallest
// elements (0-indexed), computed as lo + (hi-lo)/2 to avoid overflow for
// integer types.
//
// buf must not be empty; a single-element buffer returns that element.
func Median[T constraints.Integer | constraints.Float](buf []T) T {
	if len(buf)%2 == 1 {
		return SortN(buf, len(buf)/2)
	}
	if len(buf) == 2 {
		low, high := buf[0], buf[1]
		if high < low {
			low, high = high, low
		}
		return low + (high-low)/2
	}
	high := SortN(buf, len(buf)/2+1)
	low := buf[len(buf)/2]
	return low + (high-low)/2
}
