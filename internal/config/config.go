// Package config はアプリケーションの設定を管理します
// 環境変数から設定を読み込み、デフォルト値を提供します
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	defaultAPIAddr          = ":8080"      // APIサーバーのデフォルトリッスンアドレス
	defaultRoomTTLSec       = 60 * 60     // ルームのデフォルト保持期間（1時間）
	defaultRoundDurationSec = 4 * 60      // 議論フェーズのデフォルト長（4分）
	defaultHostUsername     = "rustacean" // ホスト権限を持つユーザー名
	defaultLogLevel         = "info"
)

// defaultAllowedOrigins はCORSで許可するデフォルトのオリジン一覧
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
}

// Config はアプリケーションの設定を保持します
type Config struct {
	APIAddr          string   // APIサーバーのリッスンアドレス
	RedisAddr        string   // Redisの接続先（空ならインメモリストア）
	NATSURL          string   // NATSの接続先（空ならNATS配信なし）
	RoomTTLSec       int      // ルームの保持期間（秒）
	RoundDurationSec int      // 議論フェーズの長さ（秒）
	HostUsername     string   // ホスト権限を持つユーザー名
	AllowedOrigins   []string // CORSで許可するオリジン一覧
	LogLevel         string   // zerologのログレベル
}

// Load は環境変数から設定を読み込みます
// 環境変数が設定されていない場合はデフォルト値を使用します
func Load() Config {
	return Config{
		APIAddr:          envOr("API_ADDR", defaultAPIAddr),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		NATSURL:          os.Getenv("NATS_URL"),
		RoomTTLSec:       envInt("ROOM_TTL_SEC", defaultRoomTTLSec),
		RoundDurationSec: envInt("ROUND_DURATION_SEC", defaultRoundDurationSec),
		HostUsername:     envOr("HOST_USERNAME", defaultHostUsername),
		AllowedOrigins:   envCSV("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		LogLevel:         envOr("LOG_LEVEL", defaultLogLevel),
	}
}

// envOr は環境変数から文字列を取得します
// 環境変数が設定されていない場合はデフォルト値を返します
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt は環境変数から整数を取得します
// 環境変数が設定されていない、または無効な値の場合はデフォルト値を返します
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid env value, using default")
			return def
		}
		return i
	}
	return def
}

// envCSV は環境変数からカンマ区切りの文字列リストを取得します
// 環境変数が設定されていない、または空の場合はデフォルト値を返します
func envCSV(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
