package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisGameRepo はRedisを使ったGameRepo実装です
// 複数インスタンスでゲーム状態を共有する場合に使用します
// ゲーム・タイマー・投票はTTL付きで保存され、Redis側でも期限切れになります
type RedisGameRepo struct{ rdb *redis.Client }

// NewRedisGameRepo は新しいRedisGameRepoを作成します
func NewRedisGameRepo(rdb *redis.Client) *RedisGameRepo {
	return &RedisGameRepo{rdb: rdb}
}

func gameKey(id string) string {
	return fmt.Sprintf("games:%s", id)
}
func timerKey(id string) string {
	return fmt.Sprintf("timers:%s", id)
}
func votesKey(id string) string {
	return fmt.Sprintf("votes:%s", id)
}

const (
	usedThemesKey = "used-themes"
	usersKey      = "users"
)

func sec(v int) time.Duration {
	return time.Duration(v) * time.Second
}

func (rr *RedisGameRepo) SaveGame(ctx context.Context, game models.Game, ttlSec int) error {
	b, err := json.Marshal(game)
	if err != nil {
		return err
	}
	// 再割り当ては常に上書き（最後のassignが勝つ）
	return rr.rdb.Set(ctx, gameKey(game.RoomID), b, sec(ttlSec)).Err()
}

func (rr *RedisGameRepo) GetGame(ctx context.Context, roomID string) (models.Game, bool, error) {
	val, err := rr.rdb.Get(ctx, gameKey(roomID)).Bytes()
	if err == redis.Nil { // データがない
		return models.Game{}, false, nil
	}
	if err != nil {
		return models.Game{}, false, err
	}
	var g models.Game
	if err := json.Unmarshal(val, &g); err != nil {
		return models.Game{}, false, err
	}
	return g, true, nil
}

func (rr *RedisGameRepo) DeleteGame(ctx context.Context, roomID string) error {
	return rr.rdb.Del(ctx, gameKey(roomID)).Err()
}

func (rr *RedisGameRepo) ListGameIDs(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		ids    []string
	)
	for {
		keys, next, err := rr.rdb.Scan(ctx, cursor, "games:*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			ids = append(ids, k[len("games:"):])
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}

func (rr *RedisGameRepo) SaveTimer(ctx context.Context, timer models.Timer, ttlSec int) error {
	b, err := json.Marshal(timer)
	if err != nil {
		return err
	}
	return rr.rdb.Set(ctx, timerKey(timer.RoomID), b, sec(ttlSec)).Err()
}

func (rr *RedisGameRepo) GetTimer(ctx context.Context, roomID string) (models.Timer, bool, error) {
	val, err := rr.rdb.Get(ctx, timerKey(roomID)).Bytes()
	if err == redis.Nil {
		return models.Timer{}, false, nil
	}
	if err != nil {
		return models.Timer{}, false, err
	}
	var t models.Timer
	if err := json.Unmarshal(val, &t); err != nil {
		return models.Timer{}, false, err
	}
	return t, true, nil
}

func (rr *RedisGameRepo) PutVote(ctx context.Context, roomID, voter, target string, ttlSec int) (int, error) {
	key := votesKey(roomID)
	pipe := rr.rdb.TxPipeline()
	pipe.HSet(ctx, key, voter, target) // 同じ投票者は上書き
	pipe.Expire(ctx, key, sec(ttlSec))
	count := pipe.HLen(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(count.Val()), nil
}

func (rr *RedisGameRepo) GetVotes(ctx context.Context, roomID string) (map[string]string, bool, error) {
	m, err := rr.rdb.HGetAll(ctx, votesKey(roomID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(m) == 0 { // HGetAllはキーがなくても空mapを返す
		return nil, false, nil
	}
	return m, true, nil
}

func (rr *RedisGameRepo) AddUsedTheme(ctx context.Context, themeID int) error {
	return rr.rdb.SAdd(ctx, usedThemesKey, themeID).Err()
}

func (rr *RedisGameRepo) ListUsedThemes(ctx context.Context) ([]int, error) {
	vals, err := rr.rdb.SMembers(ctx, usedThemesKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (rr *RedisGameRepo) ClearUsedThemes(ctx context.Context) error {
	return rr.rdb.Del(ctx, usedThemesKey).Err()
}

func (rr *RedisGameRepo) AddUser(ctx context.Context, username string) (bool, error) {
	added, err := rr.rdb.SAdd(ctx, usersKey, username).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (rr *RedisGameRepo) ListUsers(ctx context.Context) ([]string, error) {
	return rr.rdb.SMembers(ctx, usersKey).Result()
}
