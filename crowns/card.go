package crowns

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is wrapped by every token parsing error.
var ErrInvalidCard = errors.New("invalid card")

// Suit is one of the five Five Crowns suits, or the joker marker.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
	Tridents
	JokerSuit
)

// NumSuits is the number of real suits (jokers excluded).
const NumSuits = 5

// String returns the single character token for the suit.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Tridents:
		return "T"
	case JokerSuit:
		return "*"
	default:
		return "?"
	}
}

// Symbol returns a display glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Tridents:
		return "♆"
	case JokerSuit:
		return "★"
	default:
		return "?"
	}
}

// Index returns the grid row of a real suit.
func (s Suit) Index() int {
	return int(s)
}

// IsReal reports whether s is one of the five playing suits.
func (s Suit) IsReal() bool {
	return s < NumSuits
}

// Rank is the face rank of a card, numbered by its point value (3..13).
type Rank uint8

const (
	Three Rank = iota + 3
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const (
	// NumRanks is the number of ranks in the deck (3 through King).
	NumRanks = 11
	// MinRank and MaxRank bound the rank range.
	MinRank = Three
	MaxRank = King
)

// String returns the single character token for the rank. Ten is "X".
func (r Rank) String() string {
	switch {
	case r >= Three && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "X"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Index returns the grid column of the rank.
func (r Rank) Index() int {
	return int(r - Three)
}

// Valid reports whether the rank is within 3..K.
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

// Value is the face point value of the rank.
func (r Rank) Value() int {
	return int(r)
}

// RankAt returns the rank for a grid column.
func RankAt(index int) Rank {
	return Three + Rank(index)
}

const (
	// WildOffset is added to the round number to get that round's wild rank.
	WildOffset = 2
	// WildValue is what an unused wild card scores.
	WildValue = 20
	// JokerValue is what an unused joker scores.
	JokerValue = 50
	// NumJokers is the number of distinct joker identities.
	NumJokers = 3

	MinRound = 1
	MaxRound = 11
)

// WildRank returns the rank that is wild during round.
func WildRank(round int) Rank {
	return Rank(round + WildOffset)
}

// HandSize returns how many cards each player holds in round.
func HandSize(round int) int {
	return round + WildOffset
}

// Card is an immutable playing card. The zero Card is not valid.
type Card struct {
	rank  Rank
	suit  Suit
	joker uint8 // 1..3 for jokers, 0 otherwise
	value int
	wild  bool
}

// NewCard creates a card from its parts.
func NewCard(rank Rank, suit Suit, value int, wild bool) Card {
	return Card{rank: rank, suit: suit, value: value, wild: wild}
}

// NewJoker creates joker number id (1..3).
func NewJoker(id int) Card {
	return Card{rank: Jack, suit: JokerSuit, joker: uint8(id), value: JokerValue, wild: true}
}

// NewRoundCard creates a card whose value and wildness are derived from round.
func NewRoundCard(rank Rank, suit Suit, round int) Card {
	if rank == WildRank(round) {
		return Card{rank: rank, suit: suit, value: WildValue, wild: true}
	}
	return Card{rank: rank, suit: suit, value: rank.Value()}
}

// ParseCard parses a two character token such as "7H", "XS" or "J2".
func ParseCard(token string, round int) (Card, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if len(token) != 2 {
		return Card{}, fmt.Errorf("%w: %q must be two characters", ErrInvalidCard, token)
	}

	if token[0] == 'J' && token[1] >= '1' && token[1] <= '0'+NumJokers {
		return NewJoker(int(token[1] - '0')), nil
	}

	rank, ok := parseRank(token[0])
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidCard, token[0], token)
	}
	suit, ok := parseSuit(token[1])
	if !ok {
		return Card{}, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidCard, token[1], token)
	}

	return NewRoundCard(rank, suit, round), nil
}

// MustParseCard is like ParseCard but panics on error. Intended for tests and constants.
func MustParseCard(token string, round int) Card {
	c, err := ParseCard(token, round)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a list of tokens.
func ParseCards(tokens []string, round int) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseCard(tok, round)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// ParseHand parses tokens separated by whitespace or commas, e.g. "3S 4S,5S".
func ParseHand(s string, round int) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return ParseCards(fields, round)
}

// MustParseHand is like ParseHand but panics on error.
func MustParseHand(s string, round int) []Card {
	cards, err := ParseHand(s, round)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, bool) {
	switch {
	case b >= '3' && b <= '9':
		return Rank(b - '0'), true
	case b == 'X':
		return Ten, true
	case b == 'J':
		return Jack, true
	case b == 'Q':
		return Queen, true
	case b == 'K':
		return King, true
	}
	return 0, false
}

func parseSuit(b byte) (Suit, bool) {
	switch b {
	case 'S':
		return Spades, true
	case 'C':
		return Clubs, true
	case 'D':
		return Diamonds, true
	case 'H':
		return Hearts, true
	case 'T':
		return Tridents, true
	}
	return 0, false
}

// Rank returns the face rank. Jokers report Jack.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the suit, or JokerSuit.
func (c Card) Suit() Suit { return c.suit }

// Number returns the face rank as an int (3..13).
func (c Card) Number() int { return int(c.rank) }

// Value returns the card's point value when left over.
func (c Card) Value() int { return c.value }

// IsWild reports whether the card substitutes for any card. Jokers are always wild.
func (c Card) IsWild() bool { return c.wild }

// IsJoker reports whether the card is one of the jokers.
func (c Card) IsJoker() bool { return c.joker != 0 }

// String returns the canonical two character token.
func (c Card) String() string {
	if c.joker != 0 {
		return "J" + string(rune('0'+c.joker))
	}
	return c.rank.String() + c.suit.String()
}

// suitKey is the suit token used for ordering; jokers sort by their digit.
func (c Card) suitKey() string {
	if c.joker != 0 {
		return string(rune('0' + c.joker))
	}
	return c.suit.String()
}

// Compare orders cards by value, then by suit token.
func Compare(a, b Card) int {
	if c := cmp.Compare(a.value, b.value); c != 0 {
		return c
	}
	return strings.Compare(a.suitKey(), b.suitKey())
}

// Less reports whether c sorts before other.
func (c Card) Less(other Card) bool {
	return Compare(c, other) < 0
}

// Tokens renders cards as their string tokens.
func Tokens(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Sum returns the total point value of cards.
func Sum(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.value
	}
	return total
}
