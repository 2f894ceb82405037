// Package combin enumerates k-subsets of {0, ..., n-1} in lexicographic
// order and converts between a subset and its position in that order, so
// that an enumeration can be split into independent ranges.
package combin

import "fmt"

// Binomial returns n choose k.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

// First returns the lexicographically smallest k-subset, {0, ..., k-1}.
func First(k int) []int {
	c := make([]int, k)
	for i := range c {
		c[i] = i
	}
	return c
}

// Next advances c to the following k-subset of {0..n-1} in place and
// reports false when c was already the last one.
func Next(c []int, n int) bool {
	k := len(c)
	i := k - 1
	for i >= 0 && c[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c[i]++
	for j := i + 1; j < k; j++ {
		c[j] = c[j-1] + 1
	}
	return true
}

// Unrank returns the k-subset of {0..n-1} at position index in
// lexicographic order.
func Unrank(n, k, index int) []int {
	total := Binomial(n, k)
	if index < 0 || index >= total {
		panic(fmt.Sprintf("combin: index %d out of range [0, %d)", index, total))
	}
	c := make([]int, 0, k)
	v := 0
	for slot := range k {
		// Skip past every subset that starts with a smaller element here.
		for {
			below := Binomial(n-v-1, k-slot-1)
			if index < below {
				break
			}
			index -= below
			v++
		}
		c = append(c, v)
		v++
	}
	return c
}

// Rank is the inverse of Unrank.
func Rank(c []int, n int) int {
	k := len(c)
	index := 0
	prev := -1
	for slot, x := range c {
		for v := prev + 1; v < x; v++ {
			index += Binomial(n-v-1, k-slot-1)
		}
		prev = x
	}
	return index
}

// Each calls fn for every k-subset of {0..n-1} in order, stopping early if
// fn returns false. fn must not retain c.
func Each(n, k int, fn func(index int, c []int) bool) {
	c := First(k)
	for i := 0; ; i++ {
		if !fn(i, c) {
			return
		}
		if !Next(c, n) {
			return
		}
	}
}

// Range is a half-open span [Start, End) of lexicographic positions.
type Range struct {
	Start int
	End   int
}

// Len returns the number of subsets in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split divides the total positions into at most parts contiguous ranges of
// near-equal size.
func Split(total, parts int) []Range {
	if total <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > total {
		parts = total
	}
	ranges := make([]Range, 0, parts)
	size, remainder := total/parts, total%parts
	start := 0
	for p := range parts {
		n := size
		if p < remainder {
			n++ // Distribute remainder
		}
		ranges = append(ranges, Range{Start: start, End: start + n})
		start += n
	}
	return ranges
}
