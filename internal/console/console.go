package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack21/internal/deck"
	"github.com/lox/blackjack21/internal/game"
	"github.com/lox/blackjack21/internal/randutil"
)

type phase int

const (
	phaseRegistration phase = iota
	phaseMenu
	phaseDecks
	phaseInsurance
	phaseTurn
	phaseResults
)

// Config configures an interactive session
type Config struct {
	Decks   int
	Seed    int64
	Players []string // pre-seated names, may be empty
	Logger  *log.Logger

	// NoColor forces plain ASCII output
	NoColor bool
}

// Model is the Bubble Tea model for an interactive blackjack session
type Model struct {
	config Config
	logger *log.Logger

	table *game.Table
	decks int
	names []string

	phase     phase
	nameInput textinput.Model
	message   string
	history   []string

	// turn state
	playerIndex int
	handID      game.HandID
	splitOffer  bool

	width    int
	height   int
	quitting bool
}

// New creates a console model. Pre-seated players from the
// configuration skip the registration phase.
func New(config Config) (*Model, error) {
	if config.Decks < 1 {
		config.Decks = 6
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ti := textinput.New()
	ti.Placeholder = "Player name"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "> "

	m := &Model{
		config:    config,
		logger:    config.Logger.WithPrefix("console"),
		decks:     config.Decks,
		nameInput: ti,
		phase:     phaseRegistration,
	}
	m.rebuildTable()

	for _, name := range config.Players {
		if err := m.seat(name); err != nil {
			return nil, err
		}
	}
	if len(m.names) > 0 {
		m.phase = phaseMenu
	}
	return m, nil
}

// Run starts the interactive program and blocks until it exits
func Run(config Config) error {
	m, err := New(config)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) rebuildTable() {
	shoe := deck.NewShoe(m.decks, randutil.New(m.seed()))
	m.table = game.NewTable(shoe, m.logger)
	for _, name := range m.names {
		// re-seating known-good names cannot fail
		if _, err := m.table.AddPlayer(name); err != nil {
			m.logger.Error("reseat failed", "player", name, "error", err)
		}
	}
}

func (m *Model) seed() int64 {
	if m.config.Seed != 0 {
		return m.config.Seed
	}
	return randutil.NewFromTime().Int64()
}

func (m *Model) seat(name string) error {
	if _, err := m.table.AddPlayer(name); err != nil {
		return err
	}
	m.names = append(m.names, name)
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.phase {
		case phaseRegistration, phaseDecks:
			return m.updateInput(msg)
		case phaseMenu:
			return m.updateMenu(msg)
		case phaseInsurance:
			return m.updateInsurance(msg)
		case phaseTurn:
			return m.updateTurn(msg)
		case phaseResults:
			if msg.String() == "enter" || msg.String() == "esc" {
				m.phase = phaseMenu
				m.message = ""
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		value := strings.TrimSpace(m.nameInput.Value())
		m.nameInput.SetValue("")

		if m.phase == phaseDecks {
			return m.applyDeckCount(value)
		}

		if value == "" {
			if len(m.names) == 0 {
				m.message = "at least one player must be seated"
				return m, nil
			}
			m.phase = phaseMenu
			m.message = ""
			return m, nil
		}

		if err := m.seat(value); err != nil {
			switch {
			case errors.Is(err, game.ErrPlayerExists):
				m.message = fmt.Sprintf("%q is already seated", value)
			default:
				m.message = err.Error()
			}
			return m, nil
		}

		m.message = ""
		if len(m.names) == game.MaxTablePlayers {
			m.phase = phaseMenu
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) applyDeckCount(value string) (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 6 {
		m.message = "deck count must be between 1 and 6"
		return m, nil
	}
	m.decks = n
	m.rebuildTable()
	m.phase = phaseMenu
	m.message = fmt.Sprintf("shoe rebuilt with %d decks", n)
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		return m.startRound()
	case "d":
		m.phase = phaseDecks
		m.nameInput.Placeholder = "Decks (1-6)"
		m.nameInput.SetValue("")
		m.message = ""
	case "a":
		if len(m.names) < game.MaxTablePlayers {
			m.phase = phaseRegistration
			m.nameInput.Placeholder = "Player name"
			m.message = ""
		} else {
			m.message = "the table is full"
		}
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startRound() (tea.Model, tea.Cmd) {
	m.history = nil
	m.message = ""
	m.table.NewRound()
	if err := m.table.DealInitialCards(); err != nil {
		m.message = ErrorStyle.Render(fmt.Sprintf("deal failed: %v", err))
		return m, nil
	}

	m.playerIndex = 0
	if m.table.DealerShowsAce() {
		m.phase = phaseInsurance
		return m, nil
	}
	return m.beginTurns()
}

// beginTurns starts the player turn sequence, short-circuiting to
// resolution when the dealer was dealt a natural
func (m *Model) beginTurns() (tea.Model, tea.Cmd) {
	if m.table.Dealer().First().Value() == game.MaxHandValue {
		m.note(DealerStyle.Render("Dealer has blackjack"))
		return m.finishRound()
	}

	m.playerIndex = -1
	return m.nextPlayer()
}

func (m *Model) updateInsurance(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.table.Players()[m.playerIndex]
	switch msg.String() {
	case "y":
		m.table.PlaceInsurance(p)
		m.note(fmt.Sprintf("%s takes insurance", p.Name()))
	case "n":
		// declined
	default:
		return m, nil
	}

	m.playerIndex++
	if m.playerIndex < len(m.table.Players()) {
		return m, nil
	}
	return m.beginTurns()
}

// nextPlayer advances to the next seat with a playable hand
func (m *Model) nextPlayer() (tea.Model, tea.Cmd) {
	for {
		m.playerIndex++
		if m.playerIndex >= len(m.table.Players()) {
			if err := m.table.AutoPlayDealer(); err != nil {
				m.message = ErrorStyle.Render(fmt.Sprintf("dealer draw failed: %v", err))
				m.phase = phaseMenu
				return m, nil
			}
			return m.finishRound()
		}

		p := m.table.Players()[m.playerIndex]
		if p.First().IsBlackjack() {
			m.note(fmt.Sprintf("%s has blackjack", p.Name()))
			continue
		}

		m.handID = game.HandFirst
		m.splitOffer = p.CanSplit()
		m.phase = phaseTurn
		return m, nil
	}
}

// nextHand moves on from a finished hand: to the split hand if one
// exists, otherwise to the next player
func (m *Model) nextHand(p *game.Player) (tea.Model, tea.Cmd) {
	if m.handID == game.HandFirst && p.IsSplit() {
		m.handID = game.HandSplit
		if p.CanHit(game.HandSplit) {
			return m, nil
		}
		// a split hand dealt straight to twenty-one has no moves left
		m.note(fmt.Sprintf("%s made twenty-one on the split hand", p.Name()))
		return m.nextPlayer()
	}
	return m.nextPlayer()
}

func (m *Model) updateTurn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.table.Players()[m.playerIndex]
	hand, err := p.Hand(m.handID)
	if err != nil {
		return m.nextPlayer()
	}

	if m.splitOffer {
		switch msg.String() {
		case "y":
			m.splitOffer = false
			if err := m.table.Split(p); err != nil {
				m.message = ErrorStyle.Render(err.Error())
				return m, nil
			}
			m.note(fmt.Sprintf("%s splits", p.Name()))
			if !p.CanHit(game.HandFirst) {
				return m.nextHand(p)
			}
			return m, nil
		case "n":
			m.splitOffer = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "h":
		if !p.CanHit(m.handID) {
			return m, nil
		}
		card, err := m.table.Hit(p, m.handID)
		if err != nil {
			m.message = ErrorStyle.Render(err.Error())
			return m, nil
		}
		m.note(fmt.Sprintf("%s hits: %s", p.Name(), FormatCard(card)))
		if !p.CanHit(m.handID) {
			return m.nextHand(p)
		}
		return m, nil

	case "s":
		if err := p.Stand(m.handID); err != nil {
			m.message = ErrorStyle.Render(err.Error())
			return m, nil
		}
		m.note(fmt.Sprintf("%s stands on %d", p.Name(), hand.Value()))
		return m.nextHand(p)

	case "d":
		if !p.CanDouble(m.handID) {
			return m, nil
		}
		card, err := m.table.Double(p, m.handID)
		if err != nil {
			m.message = ErrorStyle.Render(err.Error())
			return m, nil
		}
		m.note(fmt.Sprintf("%s doubles down: %s", p.Name(), FormatCard(card)))
		return m.nextHand(p)

	case "f":
		if !p.CanFold() {
			return m, nil
		}
		if err := p.Fold(); err != nil {
			m.message = ErrorStyle.Render(err.Error())
			return m, nil
		}
		m.note(fmt.Sprintf("%s folds", p.Name()))
		return m.nextPlayer()
	}
	return m, nil
}

func (m *Model) finishRound() (tea.Model, tea.Cmd) {
	m.table.ConcludeRound()
	m.phase = phaseResults
	return m, nil
}

func (m *Model) note(s string) {
	m.history = append(m.history, s)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Blackjack 21 "))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseRegistration:
		b.WriteString(m.viewRegistration())
	case phaseMenu:
		b.WriteString(m.viewMenu())
	case phaseDecks:
		b.WriteString("Number of decks in the shoe (1-6):\n\n")
		b.WriteString(m.nameInput.View())
	case phaseInsurance:
		b.WriteString(m.viewInsurance())
	case phaseTurn:
		b.WriteString(m.viewTurn())
	case phaseResults:
		b.WriteString(m.viewResults())
	}

	if m.message != "" {
		b.WriteString("\n\n")
		b.WriteString(m.message)
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewRegistration() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Seat up to %d players. Enter a blank name to finish.\n\n", game.MaxTablePlayers))
	for i, name := range m.names {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, name))
	}
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	return b.String()
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d players seated, %d cards left in a %d-deck shoe\n\n",
		len(m.names), m.table.Shoe().Count(), m.decks))
	b.WriteString(MenuStyle.Render("(n)") + " new round   ")
	b.WriteString(MenuStyle.Render("(a)") + " add player   ")
	b.WriteString(MenuStyle.Render("(d)") + " decks   ")
	b.WriteString(MenuStyle.Render("(q)") + " quit")
	return b.String()
}

func (m *Model) viewInsurance() string {
	p := m.table.Players()[m.playerIndex]
	var b strings.Builder
	b.WriteString(DealerStyle.Render("Dealer shows an ace") + "\n\n")
	b.WriteString(formatHandLine(p.Name(), p.First()))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s, take insurance? %s/%s",
		PlayerStyle.Render(p.Name()), MenuStyle.Render("(y)"), MenuStyle.Render("(n)")))
	return b.String()
}

func (m *Model) viewTurn() string {
	p := m.table.Players()[m.playerIndex]
	hand, err := p.Hand(m.handID)
	if err != nil {
		return ""
	}

	var b strings.Builder
	upCard := m.table.Dealer().First().Cards()[0]
	b.WriteString(fmt.Sprintf("Dealer shows %s\n\n", FormatCard(upCard)))

	b.WriteString(PlayerStyle.Render(p.Name()))
	if p.IsSplit() {
		b.WriteString(fmt.Sprintf(" (%s)", m.handID))
	}
	b.WriteString(": " + FormatHand(hand) + "\n\n")

	if m.splitOffer {
		b.WriteString(fmt.Sprintf("Split the pair? %s/%s",
			MenuStyle.Render("(y)"), MenuStyle.Render("(n)")))
		return b.String()
	}

	var options []string
	if p.CanHit(m.handID) {
		options = append(options, MenuStyle.Render("(h)")+" hit")
	}
	if p.CanStand(m.handID) {
		options = append(options, MenuStyle.Render("(s)")+" stand")
	}
	if p.CanDouble(m.handID) {
		options = append(options, MenuStyle.Render("(d)")+" double")
	}
	if p.CanFold() {
		options = append(options, MenuStyle.Render("(f)")+" fold")
	}
	b.WriteString(strings.Join(options, "   "))
	return b.String()
}

func (m *Model) viewResults() string {
	var b strings.Builder
	dealer := m.table.Dealer().First()
	b.WriteString(formatHandLine(DealerStyle.Render(game.DealerName), dealer))
	b.WriteString("\n\n")

	for _, p := range m.table.Players() {
		for i, h := range p.Hands() {
			name := p.Name()
			if p.IsSplit() {
				name = fmt.Sprintf("%s (%s)", name, game.HandID(i))
			}
			b.WriteString(fmt.Sprintf("  %s: %s  %s", PlayerStyle.Render(name), FormatHand(h), FormatResult(h.Result())))
			if p.Insured() {
				if p.InsuranceCorrect() {
					b.WriteString("  " + WonStyle.Render("insurance pays"))
				} else {
					b.WriteString("  " + LostStyle.Render("insurance lost"))
				}
			}
			b.WriteString("\n")
		}
	}

	if len(m.history) > 0 {
		b.WriteString("\n")
		for _, line := range m.history {
			b.WriteString(InfoStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter to continue"))
	return b.String()
}
