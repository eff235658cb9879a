package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a session row is expected but absent.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateSession is returned when creating a session for a pair that
// already has one.
var ErrDuplicateSession = errors.New("session already exists")

// ErrPersistence wraps transaction failures. The action that produced it has
// been rolled back and had no observable effect.
var ErrPersistence = errors.New("persistence failure")

// Tx is the set of session operations available inside a transaction.
type Tx interface {
	// Find looks up a session by normalized pair; (nil, nil) when absent.
	Find(p1, p2 string) (*Session, error)
	// FindByChat looks up a session by its chat binding; (nil, nil) when absent.
	FindByChat(chatID string) (*Session, error)
	Create(s *Session) error
	Update(s *Session) error
	Delete(p1, p2 string) error
}

// Store wraps a gorm DB and serializes all session mutations behind a
// process-wide lock. One move per human turn keeps contention negligible,
// so correctness wins over throughput here.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// Transact runs fn inside the global lock and a database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Errors raised by fn pass through unchanged; begin/commit failures come
// back wrapped in ErrPersistence, with any mutation rolled back.
func (s *Store) Transact(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		fnErr = fn(&gormTx{db: db})
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) Find(p1, p2 string) (*Session, error) {
	p1, p2 = NormalizePair(p1, p2)
	var s Session
	err := t.db.Where("p1 = ? AND p2 = ?", p1, p2).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (t *gormTx) FindByChat(chatID string) (*Session, error) {
	var s Session
	err := t.db.Where("chat_id = ?", chatID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session by chat: %w", err)
	}
	return &s, nil
}

func (t *gormTx) Create(s *Session) error {
	s.P1, s.P2 = NormalizePair(s.P1, s.P2)
	if err := t.db.Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (t *gormTx) Update(s *Session) error {
	res := t.db.Model(&Session{}).
		Where("p1 = ? AND p2 = ?", s.P1, s.P2).
		Updates(map[string]any{"chat_id": s.ChatID, "record": s.Record})
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *gormTx) Delete(p1, p2 string) error {
	p1, p2 = NormalizePair(p1, p2)
	if err := t.db.Delete(&Session{}, "p1 = ? AND p2 = ?", p1, p2).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
