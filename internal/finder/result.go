package finder

import (
	"github.com/lox/fivecrowns/crowns"
)

// Result is the grouping of one hand under one Order.
type Result struct {
	Order Order

	// Books and Runs are the completed combinations.
	Books [][]crowns.Card
	Runs  [][]crowns.Card

	// Singles are non-wild cards that fit no combination.
	Singles []crowns.Card
	// PartialCards are cards from two card precursors no wild card could complete.
	PartialCards []crowns.Card
	// Wilds are wild cards and jokers left unused.
	Wilds []crowns.Card

	// Leftover is Singles, PartialCards and Wilds in that order.
	Leftover []crowns.Card
}

// Score is the point value of every leftover card.
func (r *Result) Score() int {
	return crowns.Sum(r.Leftover)
}

// LeftoverCount returns the number of cards outside completed combinations.
func (r *Result) LeftoverCount() int {
	return len(r.Leftover)
}

// SingleCount returns the number of single cards.
func (r *Result) SingleCount() int {
	return len(r.Singles)
}

// CanGoOut reports whether every card is part of a book or run.
func (r *Result) CanGoOut() bool {
	return len(r.Leftover) == 0
}

// CardCount returns the number of cards accounted for across books, runs and leftovers.
func (r *Result) CardCount() int {
	n := len(r.Leftover)
	for _, b := range r.Books {
		n += len(b)
	}
	for _, run := range r.Runs {
		n += len(run)
	}
	return n
}

// BookTokens returns the books as token lists.
func (r *Result) BookTokens() [][]string {
	return tokenGroups(r.Books)
}

// RunTokens returns the runs as token lists.
func (r *Result) RunTokens() [][]string {
	return tokenGroups(r.Runs)
}

// LeftoverTokens returns the leftover cards as tokens.
func (r *Result) LeftoverTokens() []string {
	return crowns.Tokens(r.Leftover)
}

func tokenGroups(groups [][]crowns.Card) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = crowns.Tokens(g)
	}
	return out
}
