package crowns

import (
	"math/rand/v2"
)

// DeckSize is two full decks of 55 cards plus three jokers each.
const DeckSize = 2 * (NumSuits*NumRanks + NumJokers)

// Deck is the shuffled two-deck shoe for a single round.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled shoe whose cards carry round's wild status.
func NewDeck(round int, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}

	for range 2 {
		for rank := MinRank; rank <= MaxRank; rank++ {
			for suit := Spades; suit < NumSuits; suit++ {
				d.cards = append(d.cards, NewRoundCard(rank, suit, round))
			}
		}
		for id := 1; id <= NumJokers; id++ {
			d.cards = append(d.cards, NewJoker(id))
		}
	}

	d.Shuffle()
	return d
}

// Shuffle resets the deal position and shuffles using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealOne deals a single card. ok is false once the shoe is empty.
func (d *Deck) DealOne() (card Card, ok bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card = d.cards[d.next]
	d.next++
	return card, true
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
