// Package finder partitions a Five Crowns hand into books and runs, leaving
// the cards that could not be grouped as leftovers.
//
// Discovery works on a suit × rank table of the non-wild cards. One pass
// scans for runs suit by suit, the other scans for books rank by rank; the
// Order decides which goes first. Wild cards are held back and spent
// afterwards: first on two card partial combinations, then on single cards,
// and finally folded into an existing combination.
package finder

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/grid"
	"github.com/lox/fivecrowns/internal/meld"
)

// Order selects which combination type is discovered first.
type Order uint8

const (
	BooksFirst Order = iota + 1
	RunsFirst
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case BooksFirst:
		return "books-first"
	case RunsFirst:
		return "runs-first"
	default:
		return "undefined"
	}
}

// ParseOrder parses "books", "books-first", "runs" or "runs-first".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "books", "books-first", "books_first":
		return BooksFirst, nil
	case "runs", "runs-first", "runs_first":
		return RunsFirst, nil
	}
	return 0, fmt.Errorf("unknown order %q", s)
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger used for discovery tracing at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(f *Finder) {
		if logger != nil {
			f.logger = logger.WithPrefix("finder")
		}
	}
}

// Finder groups one hand. Each call to Find rebuilds all working state from
// the hand, so a Finder may be reused across orders.
type Finder struct {
	hand   []crowns.Card
	logger *log.Logger

	table    *grid.Table
	wilds    []crowns.Card
	melds    []*meld.Meld
	complete membership
	partial  membership

	books        [][]crowns.Card
	runs         [][]crowns.Card
	partialCards []crowns.Card
	singles      []crowns.Card
}

// New returns a Finder for hand. The hand is copied.
func New(hand []crowns.Card, opts ...Option) *Finder {
	f := &Finder{
		hand:   append([]crowns.Card(nil), hand...),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find groups the hand, discovering combinations in the given order.
func (f *Finder) Find(order Order) *Result {
	f.reset()

	switch order {
	case BooksFirst:
		f.findBooks()
		f.findRuns()
	case RunsFirst:
		f.findRuns()
		f.findBooks()
	default:
		panic(fmt.Sprintf("finder: unknown order %d", order))
	}

	f.extractComplete()
	f.completePartials()
	f.singles = f.table.Drain()
	f.bridgeGaps()
	f.completeSingles()
	f.placeResidualWilds()

	res := &Result{
		Order:        order,
		Books:        f.books,
		Runs:         f.runs,
		Singles:      f.singles,
		PartialCards: f.partialCards,
		Wilds:        f.wilds,
	}
	res.Leftover = make([]crowns.Card, 0, len(f.singles)+len(f.partialCards)+len(f.wilds))
	res.Leftover = append(res.Leftover, f.singles...)
	res.Leftover = append(res.Leftover, f.partialCards...)
	res.Leftover = append(res.Leftover, f.wilds...)

	f.logger.Debug("grouped hand",
		"order", order,
		"books", len(res.Books),
		"runs", len(res.Runs),
		"leftover", res.LeftoverTokens(),
		"score", res.Score())
	return res
}

// reset separates the wild cards and loads everything else into a fresh table.
func (f *Finder) reset() {
	f.table = grid.New()
	f.wilds = nil
	for _, c := range f.hand {
		if c.IsWild() {
			f.wilds = append(f.wilds, c)
			continue
		}
		f.table.Increment(c)
	}
	f.melds = nil
	f.complete = membership{}
	f.partial = membership{}
	f.books = nil
	f.runs = nil
	f.partialCards = nil
	f.singles = nil
}

// commit validates a meld and records it. consumed lists the cards that come
// out of the table; cards relocated from other melds are not in it.
func (f *Finder) commit(kind meld.Kind, cards, consumed []crowns.Card) bool {
	m := meld.New(kind, cards)
	if !m.Validate() {
		return false
	}

	id := len(f.melds)
	f.melds = append(f.melds, m)
	if kind.IsPartial() {
		f.partial.add(id, m.Cards())
	} else {
		f.complete.add(id, m.Cards())
	}
	f.table.DecrementAll(consumed)

	f.logger.Debug("committed", "id", id, "meld", kind, "cards", crowns.Tokens(m.Cards()))
	return true
}

// findRuns scans each suit from the lowest rank, taking the longest run
// starting at the cursor. The cursor only advances when nothing of length two
// or more starts there, so a second copy of the same run is found on the next
// iteration.
func (f *Finder) findRuns() {
	for suit := crowns.Spades; suit < crowns.NumSuits; suit++ {
		rank := crowns.MinRank
		for rank <= crowns.MaxRank {
			run := f.table.LargestRunFrom(suit, rank)
			if len(run) >= 3 && f.commit(meld.Run, run, run) {
				continue
			}
			if len(run) == 2 && f.commit(meld.PartialRun, run, run) {
				continue
			}
			rank++
		}
	}
}

// theft is a card that can leave meld id without invalidating it.
type theft struct {
	card crowns.Card
	id   int
}

// findBooks scans rank by rank. Free copies of the rank are gathered first;
// copies locked inside complete melds are relocated only when the donor stays
// valid without them and the book reaches three cards.
func (f *Finder) findBooks() {
	for rank := crowns.MinRank; rank <= crowns.MaxRank; rank++ {
		var free []crowns.Card
		var thefts []theft
		for suit := crowns.Spades; suit < crowns.NumSuits; suit++ {
			card := grid.Card(suit, rank)
			if t, ok := f.stealable(card); ok {
				thefts = append(thefts, t)
			}
			for n := f.table.Count(suit, rank); n > 0; n-- {
				free = append(free, card)
			}
		}

		book := free
		if len(free) < 3 && len(free)+len(thefts) >= 3 {
			book = append([]crowns.Card(nil), free...)
			for _, t := range thefts[:3-len(free)] {
				f.steal(t)
				book = append(book, t.card)
			}
		}

		switch {
		case len(book) >= 3:
			f.commit(meld.Book, book, free)
		case len(book) == 2:
			f.commit(meld.PartialBook, book, free)
		}
	}
}

// stealable finds the oldest complete meld holding card that stays valid without it.
func (f *Finder) stealable(card crowns.Card) (theft, bool) {
	tok := card.String()
	if !f.complete.locked(tok) {
		return theft{}, false
	}
	for _, id := range f.complete.ids(tok) {
		m := f.melds[id]
		if m.Extracted() {
			continue
		}
		if m.Without(card).Validate() {
			return theft{card: card, id: id}, true
		}
	}
	return theft{}, false
}

func (f *Finder) steal(t theft) {
	f.melds[t.id].Remove(t.card)
	f.complete.detach(t.card.String(), t.id)
	f.logger.Debug("relocated card", "card", t.card, "from", t.id)
}

// extractComplete moves every complete meld into the result lists once.
func (f *Finder) extractComplete() {
	for _, m := range f.melds {
		if m.Kind().IsPartial() || m.Extracted() {
			continue
		}
		switch m.Kind() {
		case meld.Book:
			f.books = append(f.books, m.Cards())
		case meld.Run:
			f.runs = append(f.runs, m.Cards())
		}
		m.MarkExtracted()
	}
}

// completePartials spends one wild card on each partial, front of the pool
// first. Partials left without a wild card become leftovers.
func (f *Finder) completePartials() {
	for _, m := range f.melds {
		if !m.Kind().IsPartial() || m.Extracted() {
			continue
		}
		m.MarkExtracted()

		if len(f.wilds) == 0 {
			f.partialCards = append(f.partialCards, m.Cards()...)
			continue
		}

		cards := append(m.Cards(), f.popWild())
		f.emit(m.Kind().Completed(), cards)
	}
}

// bridgeGaps pairs single cards of one suit two ranks apart (8H, XH) and fills
// the hole with one wild card. Table scans stop at empty cells and cannot see
// these pairs.
func (f *Finder) bridgeGaps() {
	if len(f.wilds) == 0 || len(f.singles) < 2 {
		return
	}

	used := make([]bool, len(f.singles))
	for i, lo := range f.singles {
		if len(f.wilds) == 0 {
			break
		}
		if used[i] {
			continue
		}
		for j := i + 1; j < len(f.singles); j++ {
			hi := f.singles[j]
			if used[j] || hi.Suit() != lo.Suit() || hi.Number()-lo.Number() != 2 {
				continue
			}
			used[i], used[j] = true, true
			f.emit(meld.Run, []crowns.Card{lo, hi, f.popWild()})
			break
		}
	}

	kept := make([]crowns.Card, 0, len(f.singles))
	for i, c := range f.singles {
		if !used[i] {
			kept = append(kept, c)
		}
	}
	f.singles = kept
}

// completeSingles turns a single card plus two wild cards into a book. One real
// card and two wilds satisfy either rule, so the book label is a convention.
func (f *Finder) completeSingles() {
	kept := make([]crowns.Card, 0, len(f.singles))
	for _, c := range f.singles {
		if len(f.wilds) < 2 {
			kept = append(kept, c)
			continue
		}
		f.emit(meld.Book, []crowns.Card{c, f.popWild(), f.popWild()})
	}
	f.singles = kept
}

// placeResidualWilds folds remaining wild cards into the first book, else the
// first run, else makes a book of them if there are at least three.
func (f *Finder) placeResidualWilds() {
	if len(f.wilds) == 0 {
		return
	}

	switch {
	case len(f.books) > 0:
		f.books[0] = append(f.books[0], f.wilds...)
	case len(f.runs) > 0:
		f.runs[0] = append(f.runs[0], f.wilds...)
	case len(f.wilds) >= 3:
		f.books = append(f.books, f.wilds)
	default:
		return
	}

	f.logger.Debug("placed residual wilds", "cards", crowns.Tokens(f.wilds))
	f.wilds = nil
}

func (f *Finder) emit(kind meld.Kind, cards []crowns.Card) {
	switch kind {
	case meld.Book:
		f.books = append(f.books, cards)
	case meld.Run:
		f.runs = append(f.runs, cards)
	}
	f.logger.Debug("completed with wild cards", "meld", kind, "cards", crowns.Tokens(cards))
}

func (f *Finder) popWild() crowns.Card {
	w := f.wilds[0]
	f.wilds = f.wilds[1:]
	return w
}

// Evaluate groups hand in the given order.
func Evaluate(hand []crowns.Card, order Order, opts ...Option) *Result {
	return New(hand, opts...).Find(order)
}

// Analyze groups hand under both orders and returns the result BestOrder would pick.
func Analyze(hand []crowns.Card, opts ...Option) *Result {
	f := New(hand, opts...)
	books := f.Find(BooksFirst)
	runs := f.Find(RunsFirst)
	if books.SingleCount() < runs.SingleCount() {
		return books
	}
	return runs
}

// BestOrder returns the order leaving fewer single cards. Ties go to RunsFirst.
func BestOrder(hand []crowns.Card, opts ...Option) Order {
	return Analyze(hand, opts...).Order
}
