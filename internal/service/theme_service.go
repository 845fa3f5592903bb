package service

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/nyk9/shuwa-word-wolf-api/internal/words"
	"github.com/rs/zerolog/log"
)

// ThemeService はお題の選択・使用済み管理・一覧取得を提供します
type ThemeService struct {
	repo     repo.GameRepo
	notifier notify.Notifier
	clock    clockwork.Clock
	isHost   HostAuthorizer
	shuffler Shuffler
}

// NewThemeService は新しいThemeServiceを作成します
func NewThemeService(r repo.GameRepo, n notify.Notifier, clock clockwork.Clock, isHost HostAuthorizer, sh Shuffler) *ThemeService {
	return &ThemeService{repo: r, notifier: n, clock: clock, isHost: isHost, shuffler: sh}
}

// Select はお題の選択をクライアント全員に通知します
// theme-selectedイベントがクライアントの画面遷移を駆動します
// usernameが指定されている場合はホスト権限を検証します
func (s *ThemeService) Select(ctx context.Context, roomID string, wordID int, username string) error {
	if username != "" && !s.isHost(username) {
		return ErrNotHost
	}
	if _, ok := words.Find(wordID); !ok {
		return ErrThemeNotFound
	}

	log.Info().Str("room_id", roomID).Int("word_id", wordID).Msg("theme selected")
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventThemeSelected, map[string]any{
		"roomId":    roomID,
		"wordId":    wordID,
		"timestamp": s.clock.Now().UnixMilli(),
	})
	return nil
}

// MarkUsed はお題を使用済みとして記録し、使用済み一覧を返します
func (s *ThemeService) MarkUsed(ctx context.Context, themeID int) ([]int, error) {
	if err := s.repo.AddUsedTheme(ctx, themeID); err != nil {
		return nil, err
	}
	used, err := s.repo.ListUsedThemes(ctx)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventThemeUsed, map[string]any{
		"themeId":    themeID,
		"usedThemes": used,
	})
	return used, nil
}

// UsedThemes は使用済みお題のID一覧を返します
func (s *ThemeService) UsedThemes(ctx context.Context) ([]int, error) {
	return s.repo.ListUsedThemes(ctx)
}

// Reset は使用済みお題をすべてクリアします
func (s *ThemeService) Reset(ctx context.Context) error {
	if err := s.repo.ClearUsedThemes(ctx); err != nil {
		return err
	}
	log.Info().Msg("used themes cleared")
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventThemesReset, map[string]any{
		"usedThemes": []int{},
	})
	return nil
}

// WordList は使用済みフラグ付きのお題一覧を一様なランダム順で返します
func (s *ThemeService) WordList(ctx context.Context) ([]models.WordWithUsage, error) {
	used, err := s.repo.ListUsedThemes(ctx)
	if err != nil {
		return nil, err
	}
	usedSet := make(map[int]bool, len(used))
	for _, id := range used {
		usedSet[id] = true
	}

	out := make([]models.WordWithUsage, 0, len(words.List))
	for _, w := range words.List {
		out = append(out, models.WordWithUsage{Word: w, IsUsed: usedSet[w.ID]})
	}
	s.shuffler.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, nil
}
