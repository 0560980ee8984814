package main

import (
	"fmt"
	"io"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/display"
	"github.com/lox/fivecrowns/internal/finder"
	"github.com/lox/fivecrowns/internal/randutil"
)

type resultView struct {
	Order    string     `json:"order"`
	Books    [][]string `json:"books"`
	Runs     [][]string `json:"runs"`
	Leftover []string   `json:"leftover"`
	Singles  []string   `json:"singles"`
	Score    int        `json:"score"`
	GoesOut  bool       `json:"goes_out"`
}

func newResultView(res *finder.Result) resultView {
	return resultView{
		Order:    res.Order.String(),
		Books:    res.BookTokens(),
		Runs:     res.RunTokens(),
		Leftover: res.LeftoverTokens(),
		Singles:  crowns.Tokens(res.Singles),
		Score:    res.Score(),
		GoesOut:  res.CanGoOut(),
	}
}

type AnalyzeCmd struct {
	HandArgs
	Order string `default:"best" enum:"best,books,runs" help:"Discovery order: best, books or runs"`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hand, err := c.hand()
	if err != nil {
		return err
	}

	opt := finder.WithLogger(e.logger)
	var res *finder.Result
	if c.Order == "best" {
		res = finder.Analyze(hand, opt)
	} else {
		order, err := finder.ParseOrder(c.Order)
		if err != nil {
			return err
		}
		res = finder.Evaluate(hand, order, opt)
	}

	if e.jsonOutput() {
		return e.writeJSON(newResultView(res))
	}
	_, err = io.WriteString(e.out, display.Result(res))
	return err
}

type DiscardCmd struct {
	HandArgs
}

func (c *DiscardCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hand, err := c.hand()
	if err != nil {
		return err
	}

	adv := advisor.New(randutil.New(e.seed), e.logger)
	s, ok := adv.Discard(hand)
	if !ok {
		return fmt.Errorf("hand is empty, nothing to discard")
	}

	if e.jsonOutput() {
		return e.writeJSON(struct {
			Card   string `json:"card"`
			Reason string `json:"reason"`
		}{Card: s.Card.String(), Reason: string(s.Reason)})
	}
	_, err = io.WriteString(e.out, display.Suggestion(s))
	return err
}

type DrawCmd struct {
	HandArgs
	Discard string `short:"d" required:"" help:"The visible card on the discard pile"`
}

func (c *DrawCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hand, err := c.hand()
	if err != nil {
		return err
	}
	discard, err := crowns.ParseCard(c.Discard, c.Round)
	if err != nil {
		return fmt.Errorf("discard: %w", err)
	}

	advice := advisor.New(randutil.New(e.seed), e.logger).Draw(hand, discard)

	if e.jsonOutput() {
		return e.writeJSON(struct {
			FromDiscard   bool   `json:"from_discard"`
			Discard       string `json:"discard"`
			SinglesBefore int    `json:"singles_before"`
			SinglesAfter  int    `json:"singles_after"`
			Reason        string `json:"reason"`
		}{
			FromDiscard:   advice.FromDiscard,
			Discard:       advice.Discard.String(),
			SinglesBefore: advice.SinglesBefore,
			SinglesAfter:  advice.SinglesAfter,
			Reason:        advice.Reason(),
		})
	}
	_, err = io.WriteString(e.out, display.Draw(advice))
	return err
}
