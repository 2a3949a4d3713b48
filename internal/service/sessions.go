package service

import (
	"errors"
	"sync"
)

var ErrBattleInProgress = errors.New("a battle is already in progress for this trainer")

// Sessions allows at most one running battle per trainer.
type Sessions struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]struct{})}
}

// Acquire marks name as battling. The returned release must be called when
// the battle ends; calling it more than once is harmless.
func (s *Sessions) Acquire(name string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.active[name]; busy {
		return nil, ErrBattleInProgress
	}
	s.active[name] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.active, name)
			s.mu.Unlock()
		})
	}, nil
}

// Busy reports whether name currently holds a session.
func (s *Sessions) Busy(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[name]
	return ok
}
