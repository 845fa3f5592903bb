package service

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/nyk9/shuwa-word-wolf-api/internal/repo"
	"github.com/rs/zerolog/log"
)

// TimerService はラウンドのカウントダウンとフェーズ遷移を管理します
//
// フェーズの状態機械（ルームごと）:
//
//	discussion --(durationの経過)--> voting --(start-result-phase)--> result
//
// discussionへの逆行はありません。経過によるvotingへの遷移はワンショットの
// コールバックで行い、同じルームに対する新しいStartが古いコールバックを
// 無効化します（世代カウンタで抑止、last start wins）
type TimerService struct {
	repo     repo.GameRepo
	notifier notify.Notifier
	clock    clockwork.Clock
	isHost   HostAuthorizer
	duration time.Duration // カウントダウン長（固定）
	ttlSec   int

	mu     sync.Mutex
	gens   map[string]uint64       // ルームID → 現在の世代
	active map[string]pendingTimer // ルームID → 保留中のタイマー
}

// NewTimerService は新しいTimerServiceを作成します
func NewTimerService(r repo.GameRepo, n notify.Notifier, clock clockwork.Clock, isHost HostAuthorizer, duration time.Duration, ttlSec int) *TimerService {
	return &TimerService{
		repo:     r,
		notifier: n,
		clock:    clock,
		isHost:   isHost,
		duration: duration,
		ttlSec:   ttlSec,
		gens:     make(map[string]uint64),
		active:   make(map[string]pendingTimer),
	}
}

// TimerStatus はタイマーの現在状態です
type TimerStatus struct {
	Remaining int64        `json:"remaining"` // 残り秒数
	Phase     models.Phase `json:"phase"`
	StartTime int64        `json:"startTime"` // Unixミリ秒
	Duration  int64        `json:"duration"`  // ミリ秒
}

// Start はルームのカウントダウンを開始します
// 既存のタイマーは上書きされ、保留中のコールバックは無効になります
// 世代の更新とタイマーの保存はmuの下で行い、フェーズ遷移コールバックとの
// 交錯（古いコールバックが新しいラウンドを上書きする）を防ぎます
func (s *TimerService) Start(ctx context.Context, roomID string) (models.Timer, error) {
	s.mu.Lock()
	gen := s.gens[roomID] + 1
	s.gens[roomID] = gen

	timer := models.Timer{
		RoomID:     roomID,
		StartTime:  s.clock.Now().UnixMilli(),
		Duration:   s.duration.Milliseconds(),
		Phase:      models.PhaseDiscussion,
		Generation: gen,
	}

	if err := s.repo.SaveTimer(ctx, timer, s.ttlSec); err != nil {
		s.mu.Unlock()
		return models.Timer{}, err
	}

	pending := pendingTimer{t: s.clock.NewTimer(s.duration), cancel: make(chan struct{})}
	// 既存のタイマーがあれば止めて差し替える
	if prev, ok := s.active[roomID]; ok {
		prev.stop()
		log.Debug().Str("room_id", roomID).Msg("replaced pending phase timer")
	}
	s.active[roomID] = pending
	s.mu.Unlock()

	go func() {
		select {
		case <-pending.t.Chan():
			s.onDiscussionElapsed(roomID, gen)
		case <-pending.cancel:
		}
	}()

	log.Info().
		Str("room_id", roomID).
		Dur("duration", s.duration).
		Uint64("generation", gen).
		Msg("timer started")

	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventTimerStarted, map[string]any{
		"roomId":    roomID,
		"startTime": timer.StartTime,
		"duration":  timer.Duration,
	})
	return timer, nil
}

// onDiscussionElapsed は議論フェーズの時間切れでvotingフェーズへ移行します
// 世代が古い（StartやAdvanceToResultで上書きされた）場合は何もしません
// 保存や通知の失敗はログだけ残して握りつぶします
func (s *TimerService) onDiscussionElapsed(roomID string, gen uint64) {
	ctx := context.Background()

	// 読み出しから保存までをmuの下で行います。チェックと保存の間に
	// 別のStartが割り込むと、古いコールバックが新しいラウンドを
	// votingで上書きしてしまうためです
	s.mu.Lock()
	if s.gens[roomID] != gen {
		s.mu.Unlock()
		log.Debug().Str("room_id", roomID).Uint64("generation", gen).Msg("stale phase timer fired, ignoring")
		return
	}
	delete(s.active, roomID)

	timer, ok, err := s.repo.GetTimer(ctx, roomID)
	if err != nil {
		s.mu.Unlock()
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to load timer on expiry")
		return
	}
	if !ok || timer.Generation != gen || timer.Phase != models.PhaseDiscussion {
		s.mu.Unlock()
		return
	}

	// 通知が失敗してもフェーズフラグは更新済みの状態を保つ
	timer.Phase = models.PhaseVoting
	if err := s.repo.SaveTimer(ctx, timer, s.ttlSec); err != nil {
		s.mu.Unlock()
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to save voting phase")
		return
	}
	s.mu.Unlock()

	log.Info().Str("room_id", roomID).Msg("voting phase started")
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventVotingPhaseStarted, map[string]any{
		"roomId": roomID,
	})
}

// Status はタイマーの残り時間と現在のフェーズを返します
// 時間切れ直後はコールバック実行までの間、古いフェーズが見えることがあります
// （イベントループ1周以内の結果整合）
func (s *TimerService) Status(ctx context.Context, roomID string) (TimerStatus, error) {
	timer, ok, err := s.repo.GetTimer(ctx, roomID)
	if err != nil {
		return TimerStatus{}, err
	}
	if !ok {
		return TimerStatus{}, ErrTimerNotFound
	}
	elapsed := s.clock.Now().UnixMilli() - timer.StartTime
	remaining := timer.Duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return TimerStatus{
		Remaining: remaining / 1000,
		Phase:     timer.Phase,
		StartTime: timer.StartTime,
		Duration:  timer.Duration,
	}, nil
}

// AdvanceToResult はフェーズを無条件にresultへ進めます
// votingを経ていなくても成功します（ホストによる強制移行を許容）
// usernameが指定されている場合はホスト権限を検証します
func (s *TimerService) AdvanceToResult(ctx context.Context, roomID, username string) (models.Timer, error) {
	if username != "" && !s.isHost(username) {
		return models.Timer{}, ErrNotHost
	}

	s.mu.Lock()
	timer, ok, err := s.repo.GetTimer(ctx, roomID)
	if err != nil {
		s.mu.Unlock()
		return models.Timer{}, err
	}
	if !ok {
		s.mu.Unlock()
		return models.Timer{}, ErrTimerNotFound
	}

	// 保留中のフェーズタイマーはもう不要。世代も進めて保存し、
	// 発火済みの古いコールバックがresultをvotingへ戻せないようにします
	gen := s.gens[roomID] + 1
	s.gens[roomID] = gen
	if p, ok := s.active[roomID]; ok {
		p.stop()
		delete(s.active, roomID)
	}

	timer.Phase = models.PhaseResult
	timer.Generation = gen
	if err := s.repo.SaveTimer(ctx, timer, s.ttlSec); err != nil {
		s.mu.Unlock()
		return models.Timer{}, err
	}
	s.mu.Unlock()

	log.Info().Str("room_id", roomID).Msg("result phase started")
	s.notifier.Notify(ctx, notify.ChannelGame, notify.EventResultPhaseStarted, map[string]any{
		"roomId": roomID,
	})
	return timer, nil
}

// pendingTimer は保留中のワンショットタイマーと、その待機goroutineの
// 停止用チャネルをまとめたものです
type pendingTimer struct {
	t      clockwork.Timer
	cancel chan struct{}
}

// stop はタイマーを安全に止め、チャネルを排出し、待機goroutineを解放します
// 排出はtime.Timer.Stopのドキュメントにあるパターンに従います
func (p pendingTimer) stop() {
	if !p.t.Stop() {
		select {
		case <-p.t.Chan():
		default:
		}
	}
	close(p.cancel)
}
