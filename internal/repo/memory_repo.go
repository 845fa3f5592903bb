package repo

import (
	"context"
	"sync"

	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
)

// MemoryGameRepo はプロセス内メモリ上のGameRepo実装です
// 単一インスタンス構成でのデフォルトストアです
// TTLはRedis実装でのみ有効で、メモリ実装ではサービス層の遅延削除に任せます
type MemoryGameRepo struct {
	mu         sync.RWMutex
	games      map[string]models.Game
	timers     map[string]models.Timer
	votes      map[string]map[string]string // roomID → (投票者 → 投票先)
	usedThemes []int
	users      []string
}

// NewMemoryGameRepo は新しいMemoryGameRepoを作成します
func NewMemoryGameRepo() *MemoryGameRepo {
	return &MemoryGameRepo{
		games:  make(map[string]models.Game),
		timers: make(map[string]models.Timer),
		votes:  make(map[string]map[string]string),
	}
}

func (m *MemoryGameRepo) SaveGame(_ context.Context, game models.Game, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[game.RoomID] = game
	return nil
}

func (m *MemoryGameRepo) GetGame(_ context.Context, roomID string) (models.Game, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[roomID]
	return g, ok, nil
}

func (m *MemoryGameRepo) DeleteGame(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, roomID)
	return nil
}

func (m *MemoryGameRepo) ListGameIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MemoryGameRepo) SaveTimer(_ context.Context, timer models.Timer, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers[timer.RoomID] = timer
	return nil
}

func (m *MemoryGameRepo) GetTimer(_ context.Context, roomID string) (models.Timer, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.timers[roomID]
	return t, ok, nil
}

func (m *MemoryGameRepo) PutVote(_ context.Context, roomID, voter, target string, _ int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.votes[roomID]
	if !ok {
		rv = make(map[string]string)
		m.votes[roomID] = rv
	}
	rv[voter] = target
	return len(rv), nil
}

func (m *MemoryGameRepo) GetVotes(_ context.Context, roomID string) (map[string]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rv, ok := m.votes[roomID]
	if !ok {
		return nil, false, nil
	}
	out := make(map[string]string, len(rv))
	for voter, target := range rv {
		out[voter] = target
	}
	return out, true, nil
}

func (m *MemoryGameRepo) AddUsedTheme(_ context.Context, themeID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.usedThemes {
		if id == themeID {
			return nil
		}
	}
	m.usedThemes = append(m.usedThemes, themeID)
	return nil
}

func (m *MemoryGameRepo) ListUsedThemes(_ context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int, len(m.usedThemes))
	copy(out, m.usedThemes)
	return out, nil
}

func (m *MemoryGameRepo) ClearUsedThemes(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usedThemes = nil
	return nil
}

func (m *MemoryGameRepo) AddUser(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u == username {
			return false, nil
		}
	}
	m.users = append(m.users, username)
	return true, nil
}

func (m *MemoryGameRepo) ListUsers(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.users))
	copy(out, m.users)
	return out, nil
}
