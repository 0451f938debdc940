package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/acquire/internal/server"
)

// Handler bridges the network client and the bubbletea program. Updates are
// injected with program.Send; Decide blocks the client's read loop until
// the player answers through the prompt.
type Handler struct {
	program *tea.Program
}

// NewHandler wraps the running program.
func NewHandler(program *tea.Program) *Handler {
	return &Handler{program: program}
}

func (h *Handler) HandleWelcome(data server.WelcomeData) {
	h.program.Send(logMsg{line: fmt.Sprintf("joined game %s as seat %d", data.GameID, data.Seat)})
}

func (h *Handler) HandleGameStarted(data server.GameStartedData) {
	h.program.Send(logMsg{line: "game started: " + strings.Join(data.Players, ", ")})
}

func (h *Handler) HandleState(data server.GameStateData) {
	h.program.Send(stateMsg{state: data.State})
}

func (h *Handler) HandleHand(data server.HandData) {
	h.program.Send(handMsg{cards: data.Cards})
}

func (h *Handler) HandleEvent(data server.GameEventData) {
	h.program.Send(logMsg{line: eventLine(data)})
}

func (h *Handler) Decide(data server.ActionRequiredData) (server.DecisionData, error) {
	reply := make(chan server.DecisionData, 1)
	h.program.Send(promptMsg{data: data, reply: reply})
	return <-reply, nil
}

func (h *Handler) HandleGameOver(data server.GameOverData) {
	if data.State != nil {
		h.program.Send(stateMsg{state: data.State})
	}
	h.program.Send(gameOverMsg{reason: data.Reason})
}

func (h *Handler) HandleError(data server.ErrorData) {
	h.program.Send(logMsg{line: "error: " + data.Code + " " + data.Message})
}

// eventLine formats a game event for the log pane.
func eventLine(data server.GameEventData) string {
	switch data.Event {
	case "tile_placed":
		return fmt.Sprintf("%s placed %s", data.Player, data.Position)
	case "chain_founded":
		return fmt.Sprintf("%s founded %s with %d hotels", data.Player, data.Chain, data.Count)
	case "chain_extended":
		return fmt.Sprintf("%s grew %s by %d", data.Player, data.Chain, data.Count)
	case "chains_fused":
		return fmt.Sprintf("%s fused %s into %s", data.Player, strings.Join(data.Chains, "+"), data.Chain)
	case "stock_purchased":
		return fmt.Sprintf("%s bought a share of %s", data.Player, data.Chain)
	case "round_started":
		return fmt.Sprintf("round %d", data.Round)
	case "game_ended":
		return "game over: " + data.Reason
	default:
		return data.Event
	}
}
