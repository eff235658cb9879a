package session

import "chessbot/internal/rules"

// Kind classifies what a coordinator action produced.
type Kind string

const (
	// KindInvite greets the invitee and announces the first turn.
	KindInvite Kind = "invite"
	// KindStart announces a rematch in an existing game group.
	KindStart Kind = "start"
	// KindTurn announces whose move it is after a state change or repeat.
	KindTurn Kind = "turn"
	// KindResignation reports a surrender.
	KindResignation Kind = "resignation"
	// KindWin reports a decisive finished game.
	KindWin Kind = "win"
	// KindDraw reports a drawn finished game.
	KindDraw Kind = "draw"
	// KindError reports a user-level failure; Reason carries the cause.
	KindError Kind = "error"
)

// Reason identifies a user-level failure for the notification layer to word.
type Reason string

const (
	ReasonInvalidMove    Reason = "invalid-move"
	ReasonInvalidAddress Reason = "invalid-address"
	ReasonSelfPlay       Reason = "self-play"
	ReasonAlreadyPaired  Reason = "already-paired"
	ReasonGameActive     Reason = "game-active"
	ReasonNoActiveGame   Reason = "no-active-game"
	ReasonNotYourGroup   Reason = "not-your-group"
	ReasonNotGameGroup   Reason = "not-game-group"
)

// Report is the outcome of one coordinator action, consumed by the
// notification boundary. A nil *Report from a coordinator method means the
// input was deliberately dropped and no reply should be sent.
type Report struct {
	Kind   Kind
	Reason Reason
	// ChatID is the destination group. Empty means "reply where the event
	// came from", for failures that never reached a game group.
	ChatID  string
	Inviter string
	Invitee string
	White   string
	Black   string
	// Turn is the address of the player to move (invite/start/turn kinds).
	Turn   string
	Winner string
	Loser  string
	// Board is a snapshot for rendering; nil when there is nothing to show.
	Board *rules.Board
}
