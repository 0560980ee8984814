// Package advisor suggests which card to discard and which pile to draw from,
// using the groupings produced by the finder.
package advisor

import (
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/finder"
)

// Reason explains a discard suggestion.
type Reason string

const (
	ReasonHighestSingle  Reason = "highest value single card"
	ReasonHighestPartial Reason = "highest value partial combination card"
	ReasonSpareBookCard  Reason = "card of a book where it wasn't needed"
	ReasonSpareRunCard   Reason = "card of a run where it wasn't needed"
	ReasonBreakBook      Reason = "no choice but to break a book"
	ReasonBreakRun       Reason = "no choice but to break a run"
	ReasonOnlyWilds      Reason = "only wild cards remain"
)

// Suggestion is a card to discard and why.
type Suggestion struct {
	Card   crowns.Card
	Reason Reason
}

// DrawAdvice says whether to take the face-up discard instead of drawing blind.
type DrawAdvice struct {
	FromDiscard   bool
	Discard       crowns.Card
	SinglesBefore int
	SinglesAfter  int
}

// Reason returns the explanation for the advice.
func (d DrawAdvice) Reason() string {
	if d.FromDiscard {
		return "the discard card did not increase the number of single cards in the hand"
	}
	return "the discard card increased the number of single cards in the hand"
}

// Advisor holds the random source used to break ties between the two ends of
// a book or run that can spare a card.
type Advisor struct {
	rng    *rand.Rand
	logger *log.Logger
}

// New returns an Advisor. A nil logger discards output.
func New(rng *rand.Rand, logger *log.Logger) *Advisor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Advisor{rng: rng, logger: logger.WithPrefix("advisor")}
}

// WorstCard picks the card to discard from a grouped hand. It prefers the
// highest value single card, then the highest value card stranded in a
// partial combination, then a card a book or run can spare, and finally
// breaks a book or run. ok is false only for an empty hand.
func (a *Advisor) WorstCard(res *finder.Result) (s Suggestion, ok bool) {
	switch {
	case len(res.Singles) > 0:
		return Suggestion{Card: highest(res.Singles), Reason: ReasonHighestSingle}, true
	case len(res.PartialCards) > 0:
		return Suggestion{Card: highest(res.PartialCards), Reason: ReasonHighestPartial}, true
	case len(res.Books) > 0:
		return a.sacrifice(res.Books, ReasonSpareBookCard, ReasonBreakBook)
	case len(res.Runs) > 0:
		return a.sacrifice(res.Runs, ReasonSpareRunCard, ReasonBreakRun)
	case len(res.Wilds) > 0:
		return Suggestion{Card: slices.MinFunc(res.Wilds, crowns.Compare), Reason: ReasonOnlyWilds}, true
	}
	return Suggestion{}, false
}

// sacrifice takes an end card from the first group that can lose one and stay
// complete. Without such a group the last card of the first group is given up.
func (a *Advisor) sacrifice(groups [][]crowns.Card, spare, broken Reason) (Suggestion, bool) {
	for _, g := range groups {
		if len(g) <= 3 {
			continue
		}
		return Suggestion{Card: a.pickEnd(g), Reason: spare}, true
	}
	for _, g := range groups {
		if len(g) > 1 {
			return Suggestion{Card: g[len(g)-1], Reason: broken}, true
		}
	}
	return Suggestion{}, false
}

// pickEnd chooses the first or last card of g. A wild end is kept when the
// other end is not wild; otherwise the choice is random.
func (a *Advisor) pickEnd(g []crowns.Card) crowns.Card {
	first, last := g[0], g[len(g)-1]
	switch {
	case first.IsWild() && !last.IsWild():
		return last
	case last.IsWild() && !first.IsWild():
		return first
	}
	if a.rng.IntN(2) == 1 {
		return last
	}
	return first
}

// highest returns the highest value card, choosing the lowest suit among ties.
func highest(cards []crowns.Card) crowns.Card {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, crowns.Compare)
	best := sorted[0]
	for _, c := range sorted[1:] {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return best
}

// Discard groups hand under its best order and suggests a card to discard.
func (a *Advisor) Discard(hand []crowns.Card) (Suggestion, bool) {
	res := finder.Analyze(hand, finder.WithLogger(a.logger))
	s, ok := a.WorstCard(res)
	if ok {
		a.logger.Debug("discard suggestion", "card", s.Card, "reason", s.Reason, "order", res.Order)
	}
	return s, ok
}

// Draw compares the single cards left by hand against hand plus the visible
// discard, each under its own best order. Taking the discard is advised when
// it does not add single cards.
func (a *Advisor) Draw(hand []crowns.Card, discard crowns.Card) DrawAdvice {
	before := finder.Analyze(hand, finder.WithLogger(a.logger))

	with := make([]crowns.Card, 0, len(hand)+1)
	with = append(with, discard)
	with = append(with, hand...)
	after := finder.Analyze(with, finder.WithLogger(a.logger))

	advice := DrawAdvice{
		FromDiscard:   after.SingleCount() <= before.SingleCount(),
		Discard:       discard,
		SinglesBefore: before.SingleCount(),
		SinglesAfter:  after.SingleCount(),
	}
	a.logger.Debug("draw advice",
		"discard", discard,
		"fromDiscard", advice.FromDiscard,
		"singlesBefore", advice.SinglesBefore,
		"singlesAfter", advice.SinglesAfter)
	return advice
}

// ShouldDrawFromDiscard reports whether the visible discard should be taken.
func (a *Advisor) ShouldDrawFromDiscard(hand []crowns.Card, discard crowns.Card) bool {
	return a.Draw(hand, discard).FromDiscard
}

// CanGoOut reports whether every card in hand fits a book or run.
func CanGoOut(hand []crowns.Card) bool {
	return finder.Analyze(hand).CanGoOut()
}
