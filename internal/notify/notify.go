// Package notify turns coordinator reports into outbound chat messages.
// It formats text, resolves display names and renders the board; it never
// touches game state.
package notify

import (
	"fmt"

	"chessbot/internal/rules"
	"chessbot/internal/session"
	"chessbot/internal/templates"
)

// Resolver maps a player address to a display name. A nil Resolver leaves
// addresses as-is.
type Resolver func(addr string) string

// Message is one outbound reply. HTML carries the rendered board and is
// empty when there is no position to show.
type Message struct {
	ChatID string
	Text   string
	HTML   string
}

// Notifier formats reports. prefix is the bot command prefix, used in the
// "play again" hints.
type Notifier struct {
	names  Resolver
	prefix string
}

// New creates a notifier with the given name resolver and command prefix.
func New(names Resolver, prefix string) *Notifier {
	return &Notifier{names: names, prefix: prefix}
}

// Render produces the outbound message for a report.
func (n *Notifier) Render(r *session.Report) (*Message, error) {
	msg := &Message{ChatID: r.ChatID}

	switch r.Kind {
	case session.KindInvite:
		msg.Text = fmt.Sprintf("Hello %s,\nYou have been invited by %s to play Chess.\n\n%s: %s\n%s: %s\n\n%s",
			n.name(r.Invitee), n.name(r.Inviter),
			rules.Pieces["K"], n.name(r.White),
			rules.Pieces["k"], n.name(r.Black),
			n.turnLine(r))
	case session.KindStart:
		msg.Text = fmt.Sprintf("▶️ Game started!\n%s: %s\n%s: %s\n\n%s",
			rules.Pieces["K"], n.name(r.White),
			rules.Pieces["k"], n.name(r.Black),
			n.turnLine(r))
	case session.KindTurn:
		msg.Text = n.turnLine(r)
	case session.KindWin:
		glyph := rules.Pieces["K"]
		if r.Winner == r.Black {
			glyph = rules.Pieces["k"]
		}
		msg.Text = fmt.Sprintf("🏆 Game over.\n%s %s Wins!%s", glyph, n.name(r.Winner), n.playAgain())
	case session.KindDraw:
		msg.Text = "🤝 Game over.\nIt is a draw!" + n.playAgain()
	case session.KindResignation:
		msg.Text = fmt.Sprintf("🏳️ Game Over.\n%s surrenders.%s", n.name(r.Loser), n.playAgain())
	case session.KindError:
		msg.Text = n.errorText(r)
	default:
		return nil, fmt.Errorf("unknown report kind %q", r.Kind)
	}

	if r.Board != nil {
		html, err := templates.RenderBoard(r.Board.Grid(), rules.Pieces)
		if err != nil {
			return nil, fmt.Errorf("render board: %w", err)
		}
		msg.HTML = html
	}
	return msg, nil
}

func (n *Notifier) turnLine(r *session.Report) string {
	glyph := rules.Pieces["K"]
	if r.Turn == r.Black {
		glyph = rules.Pieces["k"]
	}
	return fmt.Sprintf("%s %s it's your turn...", glyph, n.name(r.Turn))
}

func (n *Notifier) errorText(r *session.Report) string {
	switch r.Reason {
	case session.ReasonInvalidMove:
		return "❌ Invalid move!"
	case session.ReasonInvalidAddress:
		return fmt.Sprintf("❌ Invalid address. Example:\n/%splay friend@example.com", n.prefix)
	case session.ReasonSelfPlay:
		return "❌ You can't play with yourself"
	case session.ReasonAlreadyPaired:
		return fmt.Sprintf("❌ You already have a game group with %s", n.name(r.Invitee))
	case session.ReasonGameActive:
		return "❌ There is an active game already"
	case session.ReasonNoActiveGame:
		return "❌ There is no active game"
	case session.ReasonNotYourGroup:
		return "❌ This is not your game group"
	case session.ReasonNotGameGroup:
		return "❌ This is not a Chess game group"
	default:
		return "❌ Something went wrong, please try again"
	}
}

func (n *Notifier) playAgain() string {
	return fmt.Sprintf("\n\n▶️ Play again? /%snew", n.prefix)
}

func (n *Notifier) name(addr string) string {
	if n.names == nil || addr == "" {
		return addr
	}
	return n.names(addr)
}
