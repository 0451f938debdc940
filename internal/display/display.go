// Package display renders game snapshots as colored terminal text. It is
// used by the demo command and anywhere a one-shot, non-interactive view of
// the board is wanted.
package display

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/lox/acquire/internal/deck"
	"github.com/lox/acquire/internal/game"
)

// Renderer formats snapshots for a terminal.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer creates a renderer for the current terminal's color support.
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.ColorProfile()}
}

// NewPlainRenderer creates a renderer that emits no color codes.
func NewPlainRenderer() *Renderer {
	return &Renderer{profile: termenv.Ascii}
}

func (r *Renderer) chainColor(chain game.Chain) termenv.Color {
	red, green, blue := chain.Color()
	return r.profile.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))
}

func (r *Renderer) cell(snap *game.Snapshot, pos deck.Position) string {
	for _, cell := range snap.Cells {
		if cell.Position != pos {
			continue
		}
		if cell.Chain == "" {
			return termenv.String("■").Foreground(r.profile.Color("245")).String()
		}
		for _, chain := range game.Chains() {
			if chain.Name() == cell.Chain {
				return termenv.String(string(chain.Identifier())).
					Foreground(r.chainColor(chain)).Bold().String()
			}
		}
	}
	return "·"
}

// Board renders the 9x12 grid with row letters and column numbers.
func (r *Renderer) Board(snap *game.Snapshot) string {
	var b strings.Builder

	b.WriteString("   ")
	for n := 1; n <= deck.Columns; n++ {
		fmt.Fprintf(&b, "%2d ", n)
	}
	b.WriteByte('\n')

	for _, pos := range deck.AllPositions() {
		if pos.Number == 1 {
			fmt.Fprintf(&b, " %c ", pos.Letter)
		}
		fmt.Fprintf(&b, " %s ", r.cell(snap, pos))
		if pos.Number == deck.Columns {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Chains renders one line per chain with its live stats.
func (r *Renderer) Chains(snap *game.Snapshot) string {
	var b strings.Builder
	for _, cs := range snap.Chains {
		name := termenv.String(fmt.Sprintf("%-12s", cs.Chain.Name())).
			Foreground(r.chainColor(cs.Chain)).String()
		switch {
		case !cs.Active:
			fmt.Fprintf(&b, "%s inactive\n", name)
		case cs.Safe:
			fmt.Fprintf(&b, "%s %2d hotels  $%-5d %2d in pool  safe\n",
				name, cs.Length, cs.Price, cs.PoolShares)
		default:
			fmt.Fprintf(&b, "%s %2d hotels  $%-5d %2d in pool\n",
				name, cs.Length, cs.Price, cs.PoolShares)
		}
	}
	return b.String()
}

// Players renders one line per player with cash and stock counts.
func (r *Renderer) Players(snap *game.Snapshot) string {
	var b strings.Builder
	for _, p := range snap.Players {
		fmt.Fprintf(&b, "%-12s $%-6d", p.Name, p.Cash)
		for _, chain := range game.Chains() {
			if held := p.Stock.Get(chain); held > 0 {
				fmt.Fprintf(&b, " %c:%d", chain.Identifier(), held)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Game renders the full game view: round header, board, chains, players.
func (r *Renderer) Game(snap *game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d  %d cards left\n\n", snap.Round, snap.CardsLeft)
	b.WriteString(r.Board(snap))
	b.WriteByte('\n')
	b.WriteString(r.Chains(snap))
	b.WriteByte('\n')
	b.WriteString(r.Players(snap))
	if snap.GameOver {
		fmt.Fprintf(&b, "\nGame over: %s\n", snap.OverReason)
	}
	return b.String()
}
