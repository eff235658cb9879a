package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"chessbot/internal/logging"
	"chessbot/internal/rules"
	"chessbot/internal/storage"
)

// Store is the slice of the record store the coordinator needs.
type Store interface {
	Transact(ctx context.Context, fn func(storage.Tx) error) error
}

// GroupCreator creates a chat group for a new pairing and returns its id.
// It is implemented by the surrounding transport.
type GroupCreator interface {
	CreateGroup(name string, members []string) (string, error)
}

// Coordinator drives the invite/move/surrender/rematch state machine over
// durable sessions. Every action runs its whole read-modify-write inside a
// single store transaction, so concurrent senders cannot interleave.
type Coordinator struct {
	store  Store
	groups GroupCreator
}

// NewCoordinator wires a coordinator to its store and group creator.
func NewCoordinator(store Store, groups GroupCreator) *Coordinator {
	return &Coordinator{store: store, groups: groups}
}

// Invite starts a pairing between sender and target. The first invite
// between a pair creates a group and an initial game with the inviter as
// White; later invites point back at the existing group.
func (c *Coordinator) Invite(ctx context.Context, sender, target string) (*Report, error) {
	if !strings.Contains(target, "@") {
		return &Report{Kind: KindError, Reason: ReasonInvalidAddress, Invitee: target}, nil
	}
	if sender == target {
		return &Report{Kind: KindError, Reason: ReasonSelfPlay}, nil
	}

	var report *Report
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		existing, err := tx.Find(sender, target)
		if err != nil {
			return err
		}
		if existing != nil {
			report = &Report{
				Kind:    KindError,
				Reason:  ReasonAlreadyPaired,
				ChatID:  existing.ChatID,
				Invitee: target,
			}
			return nil
		}

		board := rules.New(sender, target)
		chatID, err := c.groups.CreateGroup(fmt.Sprintf("♞ %s 🆚 %s", sender, target), []string{sender, target})
		if err != nil {
			return fmt.Errorf("create game group: %w", err)
		}
		record := board.Export()
		if err := tx.Create(&storage.Session{
			P1:     sender,
			P2:     target,
			ChatID: chatID,
			Record: &record,
		}); err != nil {
			return err
		}
		report = &Report{
			Kind:    KindInvite,
			ChatID:  chatID,
			Inviter: sender,
			Invitee: target,
			White:   sender,
			Black:   target,
			Turn:    board.Turn(),
			Board:   board,
		}
		return nil
	})
	if errors.Is(err, storage.ErrDuplicateSession) {
		// Lost a race against the same pair inviting from the other side.
		return &Report{Kind: KindError, Reason: ReasonAlreadyPaired, Invitee: target}, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// HandleText treats free chat text in a game group as a move attempt by
// sender. Text that does not look like a move, groups without an active
// game, and input from the player whose turn it is not are all dropped
// silently: unsolicited chatter is expected noise, not an error.
func (c *Coordinator) HandleText(ctx context.Context, sender, chatID, text string) (*Report, error) {
	if !moveLike(text) {
		return nil, nil
	}

	var report *Report
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		s, err := tx.FindByChat(chatID)
		if err != nil {
			return err
		}
		if s == nil || s.Record == nil {
			return nil
		}

		board, err := rules.Load(*s.Record)
		if err != nil {
			return fmt.Errorf("session %s/%s: %w", s.P1, s.P2, err)
		}
		if board.Turn() != sender {
			logging.Debugf("dropping text %q from %s: not their turn", text, sender)
			return nil
		}

		if err := board.ApplyMove(text); err != nil {
			if errors.Is(err, rules.ErrIllegalMove) {
				report = &Report{Kind: KindError, Reason: ReasonInvalidMove, ChatID: chatID}
				return nil
			}
			return err
		}

		record := board.Export()
		s.Record = &record
		report = finishTurn(s, board)
		return tx.Update(s)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Surrender ends the active game in the given group with sender as the
// loser.
func (c *Coordinator) Surrender(ctx context.Context, sender, chatID string) (*Report, error) {
	var report *Report
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		s, err := tx.FindByChat(chatID)
		if err != nil {
			return err
		}
		if s == nil || !s.HasPlayer(sender) {
			report = &Report{Kind: KindError, Reason: ReasonNotYourGroup, ChatID: chatID}
			return nil
		}
		if s.Record == nil {
			report = &Report{Kind: KindError, Reason: ReasonNoActiveGame, ChatID: chatID}
			return nil
		}

		s.Record = nil
		if err := tx.Update(s); err != nil {
			return err
		}
		report = &Report{
			Kind:   KindResignation,
			ChatID: chatID,
			Loser:  sender,
			Winner: s.Opponent(sender),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// NewGame starts a rematch in a group whose previous game has ended. The
// player who asks for the rematch takes White, mirroring the invite rule
// that the initiative picks the first move.
func (c *Coordinator) NewGame(ctx context.Context, sender, chatID string) (*Report, error) {
	var report *Report
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		s, err := tx.FindByChat(chatID)
		if err != nil {
			return err
		}
		if s == nil || !s.HasPlayer(sender) {
			report = &Report{Kind: KindError, Reason: ReasonNotYourGroup, ChatID: chatID}
			return nil
		}
		if s.Record != nil {
			report = &Report{Kind: KindError, Reason: ReasonGameActive, ChatID: chatID}
			return nil
		}

		board := rules.New(sender, s.Opponent(sender))
		record := board.Export()
		s.Record = &record
		if err := tx.Update(s); err != nil {
			return err
		}
		report = &Report{
			Kind:   KindStart,
			ChatID: chatID,
			White:  sender,
			Black:  s.Opponent(sender),
			Turn:   board.Turn(),
			Board:  board,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Repeat re-emits the current board and turn without touching state.
func (c *Coordinator) Repeat(ctx context.Context, chatID string) (*Report, error) {
	var report *Report
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		s, err := tx.FindByChat(chatID)
		if err != nil {
			return err
		}
		if s == nil {
			report = &Report{Kind: KindError, Reason: ReasonNotGameGroup, ChatID: chatID}
			return nil
		}
		if s.Record == nil {
			report = &Report{Kind: KindError, Reason: ReasonNoActiveGame, ChatID: chatID}
			return nil
		}

		board, err := rules.Load(*s.Record)
		if err != nil {
			return fmt.Errorf("session %s/%s: %w", s.P1, s.P2, err)
		}
		report = &Report{
			Kind:   KindTurn,
			ChatID: chatID,
			White:  board.White(),
			Black:  board.Black(),
			Turn:   board.Turn(),
			Board:  board,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// MemberRemoved reconciles a session with its group membership: when a bound
// player (or self, the bot account) is no longer a member, the session row
// is deleted. It reports whether a row was removed.
func (c *Coordinator) MemberRemoved(ctx context.Context, chatID, self string, members []string) (bool, error) {
	removed := false
	err := c.store.Transact(ctx, func(tx storage.Tx) error {
		s, err := tx.FindByChat(chatID)
		if err != nil {
			return err
		}
		if s == nil {
			return nil
		}
		present := make(map[string]bool, len(members))
		for _, m := range members {
			present[m] = true
		}
		if present[self] && present[s.P1] && present[s.P2] {
			return nil
		}
		if err := tx.Delete(s.P1, s.P2); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// finishTurn interprets the position after a successful move: a terminal
// result clears the record so the pair drops back to "no game", otherwise
// the opponent is told it is their move.
func finishTurn(s *storage.Session, board *rules.Board) *Report {
	switch board.Result() {
	case "*":
		return &Report{
			Kind:   KindTurn,
			ChatID: s.ChatID,
			White:  board.White(),
			Black:  board.Black(),
			Turn:   board.Turn(),
			Board:  board,
		}
	case "1/2-1/2":
		s.Record = nil
		return &Report{
			Kind:   KindDraw,
			ChatID: s.ChatID,
			White:  board.White(),
			Black:  board.Black(),
			Board:  board,
		}
	case "1-0":
		s.Record = nil
		return &Report{
			Kind:   KindWin,
			ChatID: s.ChatID,
			White:  board.White(),
			Black:  board.Black(),
			Winner: board.White(),
			Loser:  board.Black(),
			Board:  board,
		}
	default: // "0-1"
		s.Record = nil
		return &Report{
			Kind:   KindWin,
			ChatID: s.ChatID,
			White:  board.White(),
			Black:  board.Black(),
			Winner: board.Black(),
			Loser:  board.White(),
			Board:  board,
		}
	}
}

// moveLike filters ordinary chatter from move attempts: at least two runes,
// and alphanumeric once hyphens are stripped (hyphens keep O-O castling
// valid).
func moveLike(text string) bool {
	if utf8.RuneCountInString(text) < 2 {
		return false
	}
	stripped := strings.ReplaceAll(text, "-", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
