package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"taqi/internal/taqi"
)

var ErrNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame(rs taqi.Ruleset, removal taqi.RemovalMode) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos := taqi.NewInitialPosition(rs)
	pos.Removal = removal

	id := uuid.NewString()
	g := &GameState{
		ID:        id,
		Pos:       pos,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.games[id] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (m *Manager) Update(id string, pos *taqi.Position, chain *taqi.Chain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Pos = pos
	g.Chain = chain
	g.UpdatedAt = time.Now()
	return nil
}
