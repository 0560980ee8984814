package finder

import (
	"slices"

	"github.com/lox/fivecrowns/crowns"
)

// membership maps a card token to the ids of the melds it currently sits in.
// Ids index the finder's meld arena.
type membership map[string][]int

// add records meld id against every distinct token in cards.
func (m membership) add(id int, cards []crowns.Card) {
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		tok := c.String()
		if seen[tok] {
			continue
		}
		seen[tok] = true
		m[tok] = append(m[tok], id)
	}
}

// ids returns the melds holding token, oldest first.
func (m membership) ids(token string) []int {
	return m[token]
}

// locked reports whether token is held by at least one meld.
func (m membership) locked(token string) bool {
	return len(m[token]) > 0
}

// detach forgets that meld id holds token.
func (m membership) detach(token string, id int) {
	ids := m[token]
	if i := slices.Index(ids, id); i >= 0 {
		m[token] = slices.Delete(ids, i, i+1)
	}
}
