package service

import (
	"context"

	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/rs/zerolog/log"
)

// UserService はユーザー名の登録と一覧取得を提供します
type UserService struct {
	repo     repo.GameRepo
	notifier notify.Notifier
}

// NewUserService は新しいUserServiceを作成します
func NewUserService(r repo.GameRepo, n notify.Notifier) *UserService {
	return &UserService{repo: r, notifier: n}
}

// Register はユーザー名を登録し、登録後の全ユーザー一覧を返します
// すでに登録済みの場合はErrUserExistsを返します
func (s *UserService) Register(ctx context.Context, username string) ([]string, error) {
	added, err := s.repo.AddUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrUserExists
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Int("user_count", len(users)).Msg("user registered")
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventUserAdded, map[string]any{
		"username":  username,
		"userCount": len(users),
	})
	return users, nil
}

// List は登録済みユーザー名の一覧を返します
func (s *UserService) List(ctx context.Context) ([]string, error) {
	return s.repo.ListUsers(ctx)
}
