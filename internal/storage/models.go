package storage

import "time"

// Session binds an unordered pair of players to a chat group and, while a
// game is in progress, to its serialized record. A nil Record means the pair
// has no active game but keeps its group for a rematch.
type Session struct {
	P1        string `gorm:"primaryKey;size:500"`
	P2        string `gorm:"primaryKey;size:500"`
	ChatID    string `gorm:"not null;index"`
	Record    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPlayer reports whether addr is one of the session's players.
func (s *Session) HasPlayer(addr string) bool {
	return addr == s.P1 || addr == s.P2
}

// Opponent returns the other player of the pair.
func (s *Session) Opponent(addr string) string {
	if addr == s.P1 {
		return s.P2
	}
	return s.P1
}

// NormalizePair orders two player addresses lexicographically so each pair
// maps to exactly one session key regardless of who invited whom.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
