package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/fivecrowns/crowns"
)

func TestMembership(t *testing.T) {
	t.Parallel()
	m := membership{}
	m.add(0, crowns.MustParseHand("7S 7S 7C", 1))
	m.add(1, crowns.MustParseHand("5S 6S 7S", 1))

	assert.Equal(t, []int{0, 1}, m.ids("7S"), "duplicate tokens are recorded once per meld")
	assert.Equal(t, []int{0}, m.ids("7C"))
	assert.True(t, m.locked("6S"))
	assert.False(t, m.locked("8S"))

	m.detach("7S", 0)
	assert.Equal(t, []int{1}, m.ids("7S"))
	m.detach("7S", 9)
	assert.Equal(t, []int{1}, m.ids("7S"))
	m.detach("7S", 1)
	assert.False(t, m.locked("7S"))
}
