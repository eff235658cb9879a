package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// ErrIllegalMove is returned when move text cannot be interpreted as a legal
// move in the current position under either supported notation.
var ErrIllegalMove = errors.New("illegal move")

// ErrMalformedRecord is returned when a stored game record cannot be replayed.
var ErrMalformedRecord = errors.New("malformed game record")

// Pieces maps FEN piece letters to Unicode glyphs. "." is an empty square.
var Pieces = map[string]string{
	"r": "♜", "n": "♞", "b": "♝", "q": "♛", "k": "♚", "p": "♟",
	"R": "♖", "N": "♘", "B": "♗", "Q": "♕", "K": "♔", "P": "♙",
	".": " ",
}

// Board wraps a chess game tagged with the two player addresses as the
// White/Black PGN headers. It is rebuilt from the exported record on every
// access and never stored directly.
type Board struct {
	game *chess.Game
}

// New starts a game from the initial position with the given players.
func New(white, black string) *Board {
	g := chess.NewGame()
	g.AddTagPair("White", white)
	g.AddTagPair("Black", black)
	return &Board{game: g}
}

// Load replays a PGN record produced by Export.
func Load(record string) (*Board, error) {
	pgn, err := chess.PGN(strings.NewReader(record))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	g := chess.NewGame(pgn)
	b := &Board{game: g}
	if b.White() == "" || b.Black() == "" {
		return nil, fmt.Errorf("%w: missing player headers", ErrMalformedRecord)
	}
	return b, nil
}

// Export serializes the game, including headers and move history, so that
// Load can reconstruct it.
func (b *Board) Export() string {
	return b.game.String()
}

// ApplyMove interprets text as standard algebraic notation first, falling
// back to long coordinate notation (e2e4). ErrIllegalMove covers both parse
// failures and illegal moves.
func (b *Board) ApplyMove(text string) error {
	if err := b.game.MoveStr(text); err == nil {
		return nil
	}
	mv, err := chess.UCINotation{}.Decode(b.game.Position(), text)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	if err := b.game.Move(mv); err != nil {
		return fmt.Errorf("%w: %q", ErrIllegalMove, text)
	}
	return nil
}

// White returns the address of the player with the white pieces.
func (b *Board) White() string {
	return b.tag("White")
}

// Black returns the address of the player with the black pieces.
func (b *Board) Black() string {
	return b.tag("Black")
}

// Turn returns the address of the player whose move it is.
func (b *Board) Turn() string {
	if b.game.Position().Turn() == chess.White {
		return b.White()
	}
	return b.Black()
}

// Result reports the game outcome: "*" while in progress, otherwise
// "1-0", "0-1" or "1/2-1/2".
func (b *Board) Result() string {
	return b.game.Outcome().String()
}

// Method describes how a finished game ended (checkmate, stalemate, ...).
func (b *Board) Method() string {
	return b.game.Method().String()
}

// FEN returns the current position in Forsyth-Edwards notation.
func (b *Board) FEN() string {
	return b.game.Position().String()
}

// Grid returns the position as an 8x8 array of FEN piece letters, rank 8
// first, with "." for empty squares.
func (b *Board) Grid() [8][8]string {
	var grid [8][8]string
	placement := strings.Fields(b.FEN())[0]
	for i, rank := range strings.Split(placement, "/") {
		file := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				for n := 0; n < int(r-'0'); n++ {
					grid[i][file] = "."
					file++
				}
				continue
			}
			grid[i][file] = string(r)
			file++
		}
	}
	return grid
}

func (b *Board) tag(name string) string {
	if tp := b.game.GetTagPair(name); tp != nil {
		return tp.Value
	}
	return ""
}
