// Package tui is an interactive explorer for Five Crowns hands: type a hand,
// change the round or the visible discard, and watch the grouping and advice
// update.
package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fivecrowns/crowns"
	"github.com/lox/fivecrowns/internal/advisor"
	"github.com/lox/fivecrowns/internal/display"
	"github.com/lox/fivecrowns/internal/finder"
)

const helpText = `Commands:
  hand <cards>     replace the hand (e.g. hand 3S 4S 5S J1)
  add <cards>      add cards to the hand
  remove <card>    remove one card from the hand
  pile <card>      set the visible discard, "pile" alone clears it
  round <n>        change the round (1-11)
  order <o>        books, runs or best
  clear            empty the hand and the discard
  help             show this help
  quit             leave the explorer`

// Model is the Bubble Tea model for the hand explorer
type Model struct {
	logger  *log.Logger
	advisor *advisor.Advisor

	// UI components
	outputViewport viewport.Model
	commandInput   textinput.Model

	// State
	output      []string
	quitting    bool
	focusedPane int // 0 = output, 1 = input

	round   int
	hand    []crowns.Card
	pile    *crowns.Card
	order   finder.Order // zero means the best order
	lastErr string

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New creates an explorer starting at round
func New(logger *log.Logger, adv *advisor.Advisor, round int) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a command (hand 3S 4S 5S, round 4, pile KH, help)"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		logger:         logger.WithPrefix("tui"),
		advisor:        adv,
		outputViewport: vp,
		commandInput:   ti,
		output:         []string{},
		focusedPane:    1,
		round:          round,
	}
	m.appendOutput(display.InfoStyle.Render("Type help for commands."))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.commandInput.Focus()
			} else {
				m.focusedPane = 0
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := m.commandInput.Value()
				m.commandInput.SetValue("")
				if !m.Submit(input) {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.outputViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.outputViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.outputViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.outputViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.outputViewport, cmd = m.outputViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the explorer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	inputContent := m.commandInput.View()
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(m.width-2, 1))
	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(inputContent)
	inputHeight := lipgloss.Height(inputPane)

	sidebarContent := m.renderSidebar()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-inputHeight-2, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	outputWidth := max(m.width-sidebarWidth-4, 1)
	m.outputViewport.Width = outputWidth
	m.outputViewport.Height = paneHeight
	m.outputViewport.SetContent(strings.Join(m.output, "\n"))
	if !m.initialized && outputWidth > 1 && paneHeight > 1 {
		m.outputViewport.GotoBottom()
		m.initialized = true
	}

	outputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(outputWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		outputStyle = outputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	outputPane := outputStyle.Render(m.outputViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, outputPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(display.HeaderStyle.Render(fmt.Sprintf(" Round %d ", m.round)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", display.LabelStyle.Render("Wild:"), crowns.WildRank(m.round))
	fmt.Fprintf(&b, "%s %d/%d\n", display.LabelStyle.Render("Cards:"), len(m.hand), crowns.HandSize(m.round))
	if m.pile != nil {
		fmt.Fprintf(&b, "%s %s\n", display.LabelStyle.Render("Pile:"), display.Card(*m.pile))
	}
	fmt.Fprintf(&b, "%s %s\n", display.LabelStyle.Render("Order:"), m.orderName())
	if m.lastErr != "" {
		b.WriteString("\n" + display.ErrorStyle.Render(m.lastErr) + "\n")
	}
	return b.String()
}

func (m *Model) orderName() string {
	if m.order == 0 {
		return "best"
	}
	return m.order.String()
}

// Submit runs one command line. It returns false when the explorer should quit.
func (m *Model) Submit(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return true
	}
	m.appendOutput(display.InfoStyle.Render("> " + strings.Join(fields, " ")))
	m.lastErr = ""

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var err error
	switch cmd {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		m.appendOutput(helpText)
		return true
	case "hand":
		err = m.setHand(args, false)
	case "add":
		err = m.setHand(args, true)
	case "remove", "rm":
		err = m.remove(args)
	case "pile":
		err = m.setPile(args)
	case "round":
		err = m.setRound(args)
	case "order":
		err = m.setOrder(args)
	case "clear":
		m.hand = nil
		m.pile = nil
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}

	if err != nil {
		m.lastErr = err.Error()
		m.appendOutput(display.ErrorStyle.Render(err.Error()))
		m.logger.Debug("Command failed", "command", cmd, "error", err)
		return true
	}
	m.analyze()
	return true
}

func (m *Model) setHand(args []string, add bool) error {
	cards, err := crowns.ParseCards(args, m.round)
	if err != nil {
		return err
	}
	if add {
		m.hand = append(m.hand, cards...)
	} else {
		m.hand = cards
	}
	return nil
}

func (m *Model) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("remove takes one card")
	}
	card, err := crowns.ParseCard(args[0], m.round)
	if err != nil {
		return err
	}
	i := slices.Index(m.hand, card)
	if i < 0 {
		return fmt.Errorf("%s is not in the hand", card)
	}
	m.hand = slices.Delete(m.hand, i, i+1)
	return nil
}

func (m *Model) setPile(args []string) error {
	switch len(args) {
	case 0:
		m.pile = nil
		return nil
	case 1:
		card, err := crowns.ParseCard(args[0], m.round)
		if err != nil {
			return err
		}
		m.pile = &card
		return nil
	}
	return fmt.Errorf("pile takes at most one card")
}

// setRound re-derives every card so wildness follows the new round.
func (m *Model) setRound(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("round takes one number")
	}
	round, err := strconv.Atoi(args[0])
	if err != nil || round < crowns.MinRound || round > crowns.MaxRound {
		return fmt.Errorf("round must be %d-%d", crowns.MinRound, crowns.MaxRound)
	}

	hand, err := crowns.ParseCards(crowns.Tokens(m.hand), round)
	if err != nil {
		return err
	}
	if m.pile != nil {
		card, err := crowns.ParseCard(m.pile.String(), round)
		if err != nil {
			return err
		}
		m.pile = &card
	}
	m.round = round
	m.hand = hand
	return nil
}

func (m *Model) setOrder(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("order takes books, runs or best")
	}
	if strings.EqualFold(args[0], "best") {
		m.order = 0
		return nil
	}
	order, err := finder.ParseOrder(args[0])
	if err != nil {
		return err
	}
	m.order = order
	return nil
}

func (m *Model) analyze() {
	if len(m.hand) == 0 {
		m.appendOutput(display.InfoStyle.Render("Hand is empty."))
		return
	}

	var res *finder.Result
	if m.order == 0 {
		res = finder.Analyze(m.hand)
	} else {
		res = finder.Evaluate(m.hand, m.order)
	}
	m.appendOutput(display.Cards(m.hand))
	m.appendOutput(strings.TrimRight(display.Result(res), "\n"))

	if s, ok := m.advisor.WorstCard(res); ok {
		m.appendOutput(strings.TrimRight(display.Suggestion(s), "\n"))
	}
	if m.pile != nil {
		m.appendOutput(strings.TrimRight(display.Draw(m.advisor.Draw(m.hand, *m.pile)), "\n"))
	}
}

func (m *Model) appendOutput(entry string) {
	m.output = append(m.output, entry)
	m.outputViewport.SetContent(strings.Join(m.output, "\n"))
	if m.outputViewport.Height > 0 && m.outputViewport.Width > 0 {
		m.outputViewport.GotoBottom()
	}
}

// Output returns a copy of the output log
func (m *Model) Output() []string {
	return slices.Clone(m.output)
}

// Hand returns a copy of the current hand
func (m *Model) Hand() []crowns.Card {
	return slices.Clone(m.hand)
}

// Round returns the current round
func (m *Model) Round() int {
	return m.round
}
