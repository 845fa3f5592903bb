// Package notify はゲームイベントのベストエフォート配信を担当します
// 配信は最大1回・失敗は握りつぶしで、呼び出し元の処理を失敗させません
package notify

import "context"

// ChannelGame はゲームイベント用のチャネル名です
const ChannelGame = "game-channel"

// イベント名の定義
const (
	EventWordsAssigned      = "words-assigned"
	EventThemeSelected      = "theme-selected"
	EventThemeUsed          = "theme-used"
	EventThemesReset        = "themes-reset"
	EventTimerStarted       = "timer-started"
	EventVotingPhaseStarted = "voting-phase-started"
	EventResultPhaseStarted = "result-phase-started"
	EventVoteReceived       = "vote-received"
	EventUserAdded          = "user-added"
)

// Notifier は名前付きイベントを接続中のクライアント全員に配信する能力です
// 配信失敗はログに残すだけで呼び出し元には伝播しません
type Notifier interface {
	Notify(ctx context.Context, channel, event string, payload any)
}

// Envelope はクライアントに届くメッセージの構造です
type Envelope struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Noop は何も配信しないNotifierです（テスト・通知無効構成用）
type Noop struct{}

func (Noop) Notify(context.Context, string, string, any) {}
