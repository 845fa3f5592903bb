package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/config"
	"github.com/nyk9/shuwa-word-wolf-api/internal/handlers"
	httpx "github.com/nyk9/shuwa-word-wolf-api/internal/http"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .envがあれば読み込む（なくてもエラーにしない）
	_ = godotenv.Load()
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// ストアの選択: REDIS_ADDRが設定されていればRedis、なければインメモリ
	var store repo.GameRepo
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			PoolSize:     10,              // 接続プールサイズ
			MinIdleConns: 5,               // 最小アイドル接続数
			MaxRetries:   3,               // リトライ回数
			DialTimeout:  5 * time.Second, // 接続タイムアウト
			ReadTimeout:  3 * time.Second, // 読み込みタイムアウト
			WriteTimeout: 3 * time.Second, // 書き込みタイムアウト
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
		store = repo.NewRedisGameRepo(rdb)
	} else {
		store = repo.NewMemoryGameRepo()
	}

	// 通知はWebSocketハブが基本。NATSが構成されていれば両方に配信する
	hub := notify.NewHub()
	var notifier notify.Notifier = hub
	if cfg.NATSURL != "" {
		nn, err := notify.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nn.Close()
		log.Info().Str("url", cfg.NATSURL).Msg("connected to NATS")
		notifier = notify.Fanout{hub, nn}
	}

	clock := clockwork.NewRealClock()
	shuffler := service.NewShuffler()
	isHost := service.FixedHost(cfg.HostUsername)
	roundDuration := time.Duration(cfg.RoundDurationSec) * time.Second

	gameSvc := service.NewGameService(store, notifier, clock, shuffler, cfg.RoomTTLSec)
	timerSvc := service.NewTimerService(store, notifier, clock, isHost, roundDuration, cfg.RoomTTLSec)
	voteSvc := service.NewVoteService(store, notifier, clock, cfg.RoomTTLSec)
	themeSvc := service.NewThemeService(store, notifier, clock, isHost, shuffler)
	userSvc := service.NewUserService(store, notifier)

	router := httpx.NewRouter(httpx.Handlers{
		Game:   handlers.NewGameHandler(gameSvc),
		Timer:  handlers.NewTimerHandler(timerSvc),
		Vote:   handlers.NewVoteHandler(voteSvc),
		Theme:  handlers.NewThemeHandler(themeSvc),
		User:   handlers.NewUserHandler(userSvc),
		Events: handlers.NewEventsHandler(hub),
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown用のシグナルチャネル
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// サーバーを別goroutineで起動
	go func() {
		log.Info().Str("addr", cfg.APIAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// シャットダウンシグナルを待つ
	<-sigChan
	log.Info().Msg("shutdown signal received, shutting down gracefully...")

	// 30秒のタイムアウトでGraceful Shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
