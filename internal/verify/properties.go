package verify

import (
	"context"
	"fmt"

	"github.com/lox/cardtrick/internal/combin"
	"github.com/lox/cardtrick/trick"
)

// PropertyReport holds the structural facts the gap strategy relies on,
// measured over every four- and five-card set.
type PropertyReport struct {
	Hands          int            `json:"hands"`
	Selections     int            `json:"selections"`
	MaxCandidates  int            `json:"max_candidates"`
	Longest        []int          `json:"longest"`
	Unclassified4  int            `json:"unclassified_selections"`
	Unclassified5  int            `json:"unclassified_hands"`
	BadGapSums     int            `json:"bad_gap_sums"`
	CandidateSizes map[int]int    `json:"candidate_sizes"`
	Cases          map[string]int `json:"cases"`
}

// Check returns an error describing the first property that does not hold.
func (p *PropertyReport) Check() error {
	switch {
	case p.BadGapSums > 0:
		return fmt.Errorf("%d sets have gaps that do not sum to the deck remainder", p.BadGapSums)
	case p.Unclassified5 > 0:
		return fmt.Errorf("%d hands match no parity case", p.Unclassified5)
	case p.MaxCandidates > int(trick.Factorial(trick.SelectionSize)):
		return fmt.Errorf("candidate list of %d for %v exceeds %d orderings",
			p.MaxCandidates, p.Longest, trick.Factorial(trick.SelectionSize))
	}
	return nil
}

// Properties walks every four-card and five-card set and records gap sums,
// parity case coverage and candidate list lengths.
func Properties(ctx context.Context) (*PropertyReport, error) {
	p := &PropertyReport{
		CandidateSizes: make(map[int]int),
		Cases:          make(map[string]int),
	}

	var sorted [trick.SelectionSize]trick.Card
	err := eachSet(ctx, trick.SelectionSize, func(set []trick.Card) {
		p.Selections++
		if sum(trick.Gaps(set)) != trick.NumCards-trick.SelectionSize {
			p.BadGapSums++
		}
		copy(sorted[:], set)
		n := len(trick.Candidates(sorted))
		if n == 0 {
			p.Unclassified4++
		}
		p.CandidateSizes[n]++
		if n > p.MaxCandidates {
			p.MaxCandidates = n
			p.Longest = cardNumbers(set)
		}
	})
	if err != nil {
		return nil, err
	}

	err = eachSet(ctx, trick.HandSize, func(set []trick.Card) {
		p.Hands++
		if sum(trick.Gaps(set)) != trick.NumCards-trick.HandSize {
			p.BadGapSums++
		}
		c, err := trick.Classify(set)
		if err != nil {
			p.Unclassified5++
			return
		}
		p.Cases[c.Pattern.String()]++
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func eachSet(ctx context.Context, k int, fn func(set []trick.Card)) error {
	set := make([]trick.Card, k)
	var err error
	combin.Each(trick.NumCards, k, func(index int, c []int) bool {
		if index%batchSize == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}
		for i, v := range c {
			set[i] = trick.Card(v)
		}
		fn(set)
		return true
	})
	return err
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
