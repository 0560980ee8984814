// Package display renders cards, groupings and advice for the terminal.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/finder"
	"github.com/lox/fivecrowns/internal/simulator"
)

// Card renders one card token, coloured by suit. Wild cards and jokers are
// highlighted regardless of suit.
func Card(c crowns.Card) string {
	switch {
	case c.IsWild():
		return WildCardStyle.Render(c.String())
	case c.Suit() == crowns.Hearts || c.Suit() == crowns.Diamonds:
		return RedCardStyle.Render(c.String())
	case c.Suit() == crowns.Tridents:
		return TridentCardStyle.Render(c.String())
	default:
		return DarkCardStyle.Render(c.String())
	}
}

// Cards renders a bracketed list of cards.
func Cards(cards []crowns.Card) string {
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = Card(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Result renders the grouping of a hand.
func Result(res *finder.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Order:"), res.Order)
	writeGroups(&b, "Books:", res.Books)
	writeGroups(&b, "Runs:", res.Runs)

	fmt.Fprintf(&b, "%s %s", LabelStyle.Render("Leftover:"), Cards(res.Leftover))
	fmt.Fprintf(&b, " %s\n", InfoStyle.Render(fmt.Sprintf("(%d points)", res.Score())))

	if res.CanGoOut() {
		fmt.Fprintf(&b, "%s\n", SuccessStyle.Render("Goes out"))
	} else {
		fmt.Fprintf(&b, "%s\n", WarningStyle.Render(fmt.Sprintf("%d single cards", res.SingleCount())))
	}
	return b.String()
}

func writeGroups(b *strings.Builder, label string, groups [][]crowns.Card) {
	b.WriteString(LabelStyle.Render(label))
	if len(groups) == 0 {
		b.WriteString(" " + InfoStyle.Render("none") + "\n")
		return
	}
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString("  " + Cards(g) + "\n")
	}
}

// Suggestion renders a discard suggestion.
func Suggestion(s advisor.Suggestion) string {
	return fmt.Sprintf("%s %s %s\n",
		LabelStyle.Render("Discard"),
		Card(s.Card),
		InfoStyle.Render("("+string(s.Reason)+")"))
}

// Draw renders draw-source advice.
func Draw(d advisor.DrawAdvice) string {
	var action string
	if d.FromDiscard {
		action = SuccessStyle.Render("Take the discard") + " " + Card(d.Discard)
	} else {
		action = WarningStyle.Render("Draw from the deck")
	}
	return fmt.Sprintf("%s\n%s\n", action,
		InfoStyle.Render(fmt.Sprintf("%s (singles %d -> %d)", d.Reason(), d.SinglesBefore, d.SinglesAfter)))
}

// Report renders a simulation summary as a table with one row per round.
func Report(s simulator.Summary) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(InfoStyle).
		Headers("Round", "Games", "Out", "Out %", "Turns", "Score", "Books/Runs").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return LabelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range s.Rounds {
		t.Row(
			strconv.Itoa(r.Round),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.WentOut),
			fmt.Sprintf("%.1f", r.WentOutRate*100),
			fmt.Sprintf("%.2f ± %.2f", r.MeanTurns, r.StdDevTurns),
			fmt.Sprintf("%.2f ± %.2f", r.MeanScore, r.StdDevScore),
			fmt.Sprintf("%d/%d", r.BooksFirst, r.RunsFirst),
		)
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Five Crowns simulation ") + "\n")
	fmt.Fprintf(&b, "Seed: %d  Games: %d  Went out: %d  Mean score: %.2f  Elapsed: %dms\n",
		s.Seed, s.Games, s.WentOut, s.MeanScore, s.ElapsedMS)
	if s.Truncated {
		b.WriteString(WarningStyle.Render("Time budget exhausted before every game was played") + "\n")
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}
