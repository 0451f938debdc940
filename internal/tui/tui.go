// Package tui is the interactive terminal player. A bubbletea program shows
// the board, chain stats and event log; questions from the server appear as
// prompts answered through a text input.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/acquire/internal/display"
	"github.com/lox/acquire/internal/game"
	"github.com/lox/acquire/internal/server"
)

const maxLogLines = 12

// Messages delivered into the program from the network handler.

type stateMsg struct{ state *game.Snapshot }

type handMsg struct{ cards []server.CardInfo }

type logMsg struct{ line string }

type promptMsg struct {
	data  server.ActionRequiredData
	reply chan server.DecisionData
}

type gameOverMsg struct{ reason string }

// Model is the bubbletea model for a seated player.
type Model struct {
	name     string
	styles   *Styles
	renderer *display.Renderer
	input    textinput.Model

	snapshot *game.Snapshot
	hand     []server.CardInfo
	log      []string
	prompt   *promptMsg
	errLine  string
	over     string
	quitting bool
	width    int
}

// NewModel creates the model for a player.
func NewModel(name string) *Model {
	input := textinput.New()
	input.Placeholder = "your answer"
	input.CharLimit = 64
	input.Focus()

	return &Model{
		name:     name,
		styles:   DefaultStyles(),
		renderer: display.NewRenderer(),
		input:    input,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.snapshot = msg.state
		return m, nil

	case handMsg:
		m.hand = msg.cards
		return m, nil

	case logMsg:
		m.log = append(m.log, msg.line)
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}
		return m, nil

	case promptMsg:
		m.prompt = &msg
		m.errLine = ""
		m.input.SetValue("")
		return m, nil

	case gameOverMsg:
		m.over = msg.reason
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.over != "" {
				return m, tea.Quit
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the typed answer for the pending prompt.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.prompt == nil {
		return m, nil
	}
	answer, err := parseAnswer(m.prompt.data, m.input.Value())
	if err != nil {
		m.errLine = err.Error()
		return m, nil
	}
	m.prompt.reply <- answer
	m.prompt = nil
	m.errLine = ""
	m.input.SetValue("")
	return m, nil
}

// parseAnswer turns typed input into a decision for the given question.
func parseAnswer(data server.ActionRequiredData, raw string) (server.DecisionData, error) {
	var answer server.DecisionData
	input := strings.TrimSpace(strings.ToLower(raw))

	switch data.Decision {
	case server.DecideCard:
		var n int
		if _, err := fmt.Sscanf(input, "%d", &n); err != nil {
			return answer, fmt.Errorf("enter a card number 1-%d", len(data.Cards))
		}
		if n < 1 || n > len(data.Cards) {
			return answer, fmt.Errorf("card number out of range 1-%d", len(data.Cards))
		}
		answer.CardIndex = n - 1

	case server.DecideChain, server.DecideSurvivor:
		name, err := matchChain(data.Chains, input)
		if err != nil {
			return answer, err
		}
		answer.Chain = name

	case server.DecideStock:
		if input == "" || input == "keep" {
			return answer, nil
		}
		var sell, trade int
		if _, err := fmt.Sscanf(input, "sell %d trade %d", &sell, &trade); err == nil {
			answer.Sell, answer.Trade = sell, trade
			return answer, nil
		}
		if _, err := fmt.Sscanf(input, "sell %d", &sell); err == nil {
			answer.Sell = sell
			return answer, nil
		}
		if _, err := fmt.Sscanf(input, "trade %d", &trade); err == nil {
			answer.Trade = trade
			return answer, nil
		}
		return answer, fmt.Errorf("enter keep, sell N, trade N, or sell N trade M")

	case server.DecideBuy:
		if input == "" || input == "none" {
			return answer, nil
		}
		for _, field := range strings.Fields(input) {
			name, err := matchChain(data.Chains, field)
			if err != nil {
				return answer, err
			}
			answer.Chains = append(answer.Chains, name)
		}
		if len(answer.Chains) > data.Max {
			return answer, fmt.Errorf("at most %d purchases", data.Max)
		}

	case server.DecideEnd:
		switch input {
		case "y", "yes":
			answer.Accept = true
		case "n", "no":
		default:
			return answer, fmt.Errorf("enter y or n")
		}

	default:
		return answer, fmt.Errorf("unknown question %q", data.Decision)
	}
	return answer, nil
}

// matchChain resolves an identifier letter or name prefix against the
// offered chains.
func matchChain(offered []string, input string) (string, error) {
	for _, name := range offered {
		lower := strings.ToLower(name)
		if input == lower || strings.HasPrefix(lower, input) && input != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("choose one of: %s", strings.Join(offered, ", "))
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("acquire · "+m.name) + "\n\n")

	if m.snapshot != nil {
		board := m.styles.BoardPane.Render(m.renderer.Board(m.snapshot))
		stats := m.styles.BoardPane.Render(m.renderer.Chains(m.snapshot) + "\n" + m.renderer.Players(m.snapshot))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, stats) + "\n")
	} else {
		b.WriteString(m.styles.Muted.Render("waiting for the game to start") + "\n")
	}

	if len(m.hand) > 0 {
		b.WriteString(m.styles.Prompt.Render("hand:") + " " + m.handLine() + "\n")
	}

	if len(m.log) > 0 {
		b.WriteString(m.styles.LogPane.Render(strings.Join(m.log, "\n")) + "\n")
	}

	switch {
	case m.over != "":
		b.WriteString(m.styles.Prompt.Render("game over: "+m.over) + "\n")
		b.WriteString(m.styles.Muted.Render("press enter to exit") + "\n")
	case m.prompt != nil:
		b.WriteString(m.styles.Prompt.Render(promptText(m.prompt.data)) + "\n")
		b.WriteString(m.input.View() + "\n")
		if m.errLine != "" {
			b.WriteString(m.styles.Error.Render(m.errLine) + "\n")
		}
	default:
		b.WriteString(m.styles.Muted.Render("waiting for other players") + "\n")
	}
	return b.String()
}

func (m *Model) handLine() string {
	parts := make([]string, len(m.hand))
	for i, card := range m.hand {
		label := fmt.Sprintf("%d:%s", i+1, card.Position)
		if card.Kind == "Illegal" {
			label += "(x)"
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}

// promptText renders the question being asked.
func promptText(data server.ActionRequiredData) string {
	switch data.Decision {
	case server.DecideCard:
		parts := make([]string, len(data.Cards))
		for i, card := range data.Cards {
			parts[i] = fmt.Sprintf("%d:%s %s", i+1, card.Position, card.Kind)
		}
		return "place a card: " + strings.Join(parts, "  ")
	case server.DecideChain:
		return "found which chain? " + strings.Join(data.Chains, ", ")
	case server.DecideSurvivor:
		return "which chain survives the fusion? " + strings.Join(data.Chains, ", ")
	case server.DecideStock:
		return fmt.Sprintf("%s is absorbed by %s. You hold %d shares at $%d. keep / sell N / trade N",
			data.Dead, data.Alive, data.Held, data.Price)
	case server.DecideBuy:
		return fmt.Sprintf("buy up to %d shares of: %s (or none)", data.Max, strings.Join(data.Chains, ", "))
	case server.DecideEnd:
		return "end the game? " + data.Reason + " (y/n)"
	default:
		return string(data.Decision)
	}
}
