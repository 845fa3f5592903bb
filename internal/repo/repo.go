package repo

import (
	"context"

	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
)

// GameRepo はゲーム状態の保存・取得を担当するインターフェース
// デフォルトはインメモリ実装、複数インスタンス構成ではRedis実装に差し替えます
type GameRepo interface {
	SaveGame(ctx context.Context, game models.Game, ttlSec int) error
	GetGame(ctx context.Context, roomID string) (models.Game, bool, error)
	DeleteGame(ctx context.Context, roomID string) error
	ListGameIDs(ctx context.Context) ([]string, error)

	SaveTimer(ctx context.Context, timer models.Timer, ttlSec int) error
	GetTimer(ctx context.Context, roomID string) (models.Timer, bool, error)

	// PutVote は投票を記録し、記録後の投票者数を返します
	// 同じ投票者の再投票は上書きされます（last-write-wins）
	PutVote(ctx context.Context, roomID, voter, target string, ttlSec int) (int, error)
	GetVotes(ctx context.Context, roomID string) (map[string]string, bool, error)

	AddUsedTheme(ctx context.Context, themeID int) error
	ListUsedThemes(ctx context.Context) ([]int, error)
	ClearUsedThemes(ctx context.Context) error

	// AddUser はユーザーを登録します。すでに存在する場合はfalseを返します
	AddUser(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context) ([]string, error)
}
