// Package meld holds the four combination kinds a hand is split into and the
// validation rule for each.
package meld

import (
	"slices"

	"github.com/lox/fivecrowns/crowns"
)

// Kind identifies a combination variant.
type Kind uint8

const (
	Undefined Kind = iota
	Book
	Run
	PartialBook
	PartialRun
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Book:
		return "book"
	case Run:
		return "run"
	case PartialBook:
		return "partial-book"
	case PartialRun:
		return "partial-run"
	default:
		return "undefined"
	}
}

// IsPartial reports whether the kind is a two card precursor.
func (k Kind) IsPartial() bool {
	return k == PartialBook || k == PartialRun
}

// Completed returns the full kind a partial grows into. Full kinds return themselves.
func (k Kind) Completed() Kind {
	switch k {
	case PartialBook:
		return Book
	case PartialRun:
		return Run
	default:
		return k
	}
}

// Meld is an ordered group of cards of one Kind. Extracted marks that its cards
// have been committed to a final result and must not be reused.
type Meld struct {
	kind      Kind
	cards     []crowns.Card
	extracted bool
}

// New returns a meld holding a copy of cards.
func New(kind Kind, cards []crowns.Card) *Meld {
	return &Meld{kind: kind, cards: slices.Clone(cards)}
}

// Kind returns the meld's kind.
func (m *Meld) Kind() Kind { return m.kind }

// Cards returns a copy of the cards in the meld.
func (m *Meld) Cards() []crowns.Card { return slices.Clone(m.cards) }

// Len returns the number of cards.
func (m *Meld) Len() int { return len(m.cards) }

// At returns the card at index i.
func (m *Meld) At(i int) crowns.Card { return m.cards[i] }

// Add appends a card.
func (m *Meld) Add(card crowns.Card) {
	m.cards = append(m.cards, card)
}

// Index returns the position of the first card with card's token, or -1.
func (m *Meld) Index(card crowns.Card) int {
	return slices.IndexFunc(m.cards, func(c crowns.Card) bool {
		return c.String() == card.String()
	})
}

// Remove deletes the first card matching card's token. It reports whether a
// card was removed.
func (m *Meld) Remove(card crowns.Card) bool {
	i := m.Index(card)
	if i < 0 {
		return false
	}
	m.cards = slices.Delete(m.cards, i, i+1)
	return true
}

// Without returns a copy of the meld with the first copy of card removed.
func (m *Meld) Without(card crowns.Card) *Meld {
	c := New(m.kind, m.cards)
	c.Remove(card)
	return c
}

// MarkExtracted flags the meld as committed.
func (m *Meld) MarkExtracted() { m.extracted = true }

// Extracted reports whether the meld has been committed.
func (m *Meld) Extracted() bool { return m.extracted }

// Validate checks the meld against its kind's rule. Validating a Book sorts
// its cards in place.
func (m *Meld) Validate() bool {
	if m.kind == Book {
		slices.SortFunc(m.cards, crowns.Compare)
	}
	return Valid(m.kind, m.cards)
}

// Valid applies kind's rule to cards without modifying them.
func Valid(kind Kind, cards []crowns.Card) bool {
	switch kind {
	case Book:
		return ValidBook(cards)
	case Run:
		return ValidRun(cards)
	case PartialBook:
		return ValidPartialBook(cards)
	case PartialRun:
		return ValidPartialRun(cards)
	default:
		return false
	}
}

// ValidBook reports whether cards hold at least three cards whose non-wild
// members share one rank. An all-wild group is a book.
func ValidBook(cards []crowns.Card) bool {
	if len(cards) < 3 {
		return false
	}
	var rank crowns.Rank
	for _, c := range cards {
		if c.IsWild() {
			continue
		}
		if rank == 0 {
			rank = c.Rank()
			continue
		}
		if c.Rank() != rank {
			return false
		}
	}
	return true
}

// ValidRun reports whether cards form a run of at least three. The non-wild
// cards must share a suit, hold distinct ranks, and the rank gaps between them
// must be fillable by the wild cards present. Wild cards may stand anywhere in
// the sequence.
func ValidRun(cards []crowns.Card) bool {
	if len(cards) < 3 {
		return false
	}

	wilds := 0
	ranks := make([]int, 0, len(cards))
	var suit crowns.Suit
	for _, c := range cards {
		if c.IsWild() {
			wilds++
			continue
		}
		if len(ranks) == 0 {
			suit = c.Suit()
		} else if c.Suit() != suit {
			return false
		}
		ranks = append(ranks, c.Number())
	}

	slices.Sort(ranks)
	missing := 0
	for i := 1; i < len(ranks); i++ {
		delta := ranks[i] - ranks[i-1]
		if delta == 0 {
			return false
		}
		missing += delta - 1
	}
	return missing <= wilds
}

// ValidPartialBook only checks size; a partial book is a staging container.
func ValidPartialBook(cards []crowns.Card) bool {
	return len(cards) == 2
}

// ValidPartialRun requires two cards one rank apart.
func ValidPartialRun(cards []crowns.Card) bool {
	if len(cards) != 2 {
		return false
	}
	d := cards[1].Number() - cards[0].Number()
	return d == 1 || d == -1
}
