package trick

import "fmt"

// MaxOrderLen is the longest sequence Unrank can order.
const MaxOrderLen = 4

var factorials = [...]int{1, 1, 2, 6, 24}

// orderings[k][i] is the i-th arrangement of positions 0..k-1 in
// lexicographic order. Built once at init and read-only afterwards.
var orderings = func() [MaxOrderLen + 1][][MaxOrderLen]uint8 {
	var t [MaxOrderLen + 1][][MaxOrderLen]uint8
	for k := 0; k <= MaxOrderLen; k++ {
		t[k] = lexicographicOrderings(k)
	}
	return t
}()

func lexicographicOrderings(k int) [][MaxOrderLen]uint8 {
	out := make([][MaxOrderLen]uint8, 0, factorials[k])
	var p [MaxOrderLen]uint8
	for i := range k {
		p[i] = uint8(i)
	}
	for {
		out = append(out, p)

		// Standard next-permutation step over p[:k].
		i := k - 2
		for i >= 0 && p[i] >= p[i+1] {
			i--
		}
		if i < 0 {
			return out
		}
		j := k - 1
		for p[j] <= p[i] {
			j--
		}
		p[i], p[j] = p[j], p[i]
		for l, r := i+1, k-1; l < r; l, r = l+1, r-1 {
			p[l], p[r] = p[r], p[l]
		}
	}
}

// Factorial returns k! for 0 <= k <= MaxOrderLen.
func Factorial(k int) int {
	return factorials[k]
}

// Rank returns the lexicographic index of seq's relative order among all
// orderings of its own elements. Only relative magnitude matters, so
// Rank(5,6,7,8) == Rank(0,1,2,3) == 0. Elements must be distinct.
func Rank(seq []Card) int {
	k := len(seq)
	if k > MaxOrderLen {
		panic(fmt.Sprintf("trick: cannot rank %d cards", k))
	}
	rank := 0
	for i := range k {
		smaller := 0
		for j := i + 1; j < k; j++ {
			if seq[j] < seq[i] {
				smaller++
			}
		}
		rank += smaller * factorials[k-1-i]
	}
	return rank
}

// Unrank is the inverse of Rank: given cards sorted ascending, it returns
// the ordering whose rank is index. An index outside [0, k!) is a caller
// bug and panics.
func Unrank(sorted []Card, index int) []Card {
	k := len(sorted)
	if k > MaxOrderLen {
		panic(fmt.Sprintf("trick: cannot order %d cards", k))
	}
	if index < 0 || index >= factorials[k] {
		panic(fmt.Sprintf("trick: ordering index %d out of range for %d cards", index, k))
	}
	order := orderings[k][index]
	out := make([]Card, k)
	for pos := range k {
		out[pos] = sorted[order[pos]]
	}
	return out
}
