// Package service はビジネスロジックを担当します
// 単語の割り当て・タイマー・投票・お題・ユーザー登録の処理を提供します
package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/nyk9/shuwa-word-wolf-api/internal/words"
	"github.com/rs/zerolog/log"
)

// GameService は単語割り当て（ルームレジストリ）のビジネスロジックを提供します
type GameService struct {
	repo     repo.GameRepo
	notifier notify.Notifier
	clock    clockwork.Clock
	shuffler Shuffler
	ttlSec   int // ルームの保持期間（秒）

	// 同一ルームへのassignは排他区間（並行実行すると割り当てが混ざる）
	assignMu keyedMutex
}

// NewGameService は新しいGameServiceを作成します
func NewGameService(r repo.GameRepo, n notify.Notifier, clock clockwork.Clock, sh Shuffler, ttlSec int) *GameService {
	return &GameService{repo: r, notifier: n, clock: clock, shuffler: sh, ttlSec: ttlSec}
}

// AssignmentView はプレイヤー1人分の割り当て照会結果です
type AssignmentView struct {
	Word   string      `json:"word"`
	Role   models.Role `json:"role"`
	Type   string      `json:"type"`   // お題のカテゴリ
	RoomID string      `json:"roomId"`
	Users  []string    `json:"users"` // ルームの全プレイヤー（投票UI用）
}

// minorityCount は少数派の人数を計算します: max(1, ceil(0.2 * n))
func minorityCount(n int) int {
	c := (n + 4) / 5
	if c < 1 {
		c = 1
	}
	return c
}

// AssignWords はプレイヤー全員に単語を割り当てます
// 処理の流れ:
// 1. 期限切れルームの遅延削除
// 2. ルームID（＝お題IDの10進文字列）の解決
// 3. プレイヤーを一様シャッフルし、先頭のminorityCount人を少数派にする
// 4. ゲーム状態を保存（同一ルームの既存状態は上書き）
// 5. words-assignedイベントを配信
func (s *GameService) AssignWords(ctx context.Context, roomID string, users []string) (map[string]models.Assignment, error) {
	s.cleanupExpired(ctx)

	if len(users) == 0 {
		return nil, ErrEmptyPlayerList
	}
	themeID, err := strconv.Atoi(strings.TrimSpace(roomID))
	if err != nil {
		return nil, ErrThemeNotFound
	}
	word, ok := words.Find(themeID)
	if !ok {
		return nil, ErrThemeNotFound
	}

	unlock := s.assignMu.lock(roomID)
	defer unlock()

	shuffled := make([]string, len(users))
	copy(shuffled, users)
	s.shuffler.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	minority := minorityCount(len(shuffled))
	assignments := make(map[string]models.Assignment, len(shuffled))
	for i, username := range shuffled {
		if i < minority {
			assignments[username] = models.Assignment{Word: word.Minority, Role: models.RoleMinority}
		} else {
			assignments[username] = models.Assignment{Word: word.Majority, Role: models.RoleMajority}
		}
	}

	game := models.Game{
		RoomID:      roomID,
		ThemeID:     themeID,
		Order:       shuffled,
		Assignments: assignments,
		CreatedAt:   s.clock.Now().UnixMilli(),
	}
	if err := s.repo.SaveGame(ctx, game, s.ttlSec); err != nil {
		return nil, err
	}

	log.Info().
		Str("room_id", roomID).
		Int("user_count", len(users)).
		Int("minority_count", minority).
		Msg("words assigned")

	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventWordsAssigned, map[string]any{
		"roomId":      roomID,
		"assignments": assignments,
	})
	return assignments, nil
}

// GetAssignment は1人のプレイヤーの割り当てを取得します
// ルームの全プレイヤー一覧も合わせて返します
func (s *GameService) GetAssignment(ctx context.Context, roomID, username string) (AssignmentView, error) {
	s.cleanupExpired(ctx)

	game, ok, err := s.repo.GetGame(ctx, roomID)
	if err != nil {
		return AssignmentView{}, err
	}
	if !ok {
		return AssignmentView{}, ErrGameNotFound
	}
	a, ok := game.Assignments[username]
	if !ok {
		return AssignmentView{}, ErrAssignmentNotFound
	}
	word, ok := words.Find(game.ThemeID)
	if !ok {
		return AssignmentView{}, ErrThemeNotFound
	}
	return AssignmentView{
		Word:   a.Word,
		Role:   a.Role,
		Type:   word.Type,
		RoomID: roomID,
		Users:  game.Players(),
	}, nil
}

// cleanupExpired は保持期間を過ぎたルームを削除します
// バックグラウンドタスクではなく、各入口で日和見的に呼ばれます
// （期限切れは次のアクセスまで観測されません）
func (s *GameService) cleanupExpired(ctx context.Context) {
	cutoff := s.clock.Now().UnixMilli() - int64(s.ttlSec)*1000
	ids, err := s.repo.ListGameIDs(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list games for cleanup")
		return
	}
	for _, id := range ids {
		game, ok, err := s.repo.GetGame(ctx, id)
		if err != nil || !ok {
			continue
		}
		if game.CreatedAt < cutoff {
			if err := s.repo.DeleteGame(ctx, id); err != nil {
				log.Warn().Err(err).Str("room_id", id).Msg("failed to delete expired game")
				continue
			}
			log.Info().Str("room_id", id).Msg("cleaned up expired game")
		}
	}
}

// keyedMutex はキーごとの排他ロックを提供します
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock はキーに対応するロックを取得し、解放用の関数を返します
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
