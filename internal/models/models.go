// Package models はアプリケーションで使用するデータ構造を定義します
package models

// Role はプレイヤーに配られた単語の役割を表します
type Role string

const (
	RoleMajority Role = "majority" // 多数派
	RoleMinority Role = "minority" // 少数派
)

// Phase はラウンドの進行フェーズを表します
// discussion → voting → result の順にのみ進みます（逆行しない）
type Phase string

const (
	PhaseDiscussion Phase = "discussion" // 議論フェーズ
	PhaseVoting     Phase = "voting"     // 投票フェーズ
	PhaseResult     Phase = "result"     // 結果フェーズ
)

// Word はお題（多数派・少数派の単語ペア）を表します
type Word struct {
	ID       int    `json:"id"`       // お題の一意な識別子
	Type     string `json:"type"`     // お題のカテゴリ（例: 動物）
	Majority string `json:"majority"` // 多数派に配る単語
	Minority string `json:"minority"` // 少数派に配る単語
}

// WordWithUsage は使用済みフラグ付きのお題です（お題選択UI用）
type WordWithUsage struct {
	Word
	IsUsed bool `json:"isUsed"` // すでに出題済みかどうか
}

// Assignment は1人のプレイヤーへの単語割り当てを表します
type Assignment struct {
	Word string `json:"word"` // 配られた単語
	Role Role   `json:"role"` // majority または minority
}

// Game は1ルーム分のゲーム状態を表します
// ルームIDはお題IDの10進文字列に一致します
type Game struct {
	RoomID      string                `json:"roomId"`
	ThemeID     int                   `json:"themeId"`     // 選択されたお題のID
	Order       []string              `json:"order"`       // シャッフル後のプレイヤー順
	Assignments map[string]Assignment `json:"assignments"` // ユーザー名 → 割り当て
	CreatedAt   int64                 `json:"createdAt"`   // 作成日時（Unixミリ秒、期限切れ判定用）
}

// Players は割り当て済みプレイヤーの一覧をシャッフル順で返します
func (g Game) Players() []string {
	out := make([]string, len(g.Order))
	copy(out, g.Order)
	return out
}

// Timer は1ルーム分のカウントダウン状態を表します
type Timer struct {
	RoomID     string `json:"roomId"`
	StartTime  int64  `json:"startTime"`  // 開始時刻（Unixミリ秒）
	Duration   int64  `json:"duration"`   // カウントダウン長（ミリ秒）
	Phase      Phase  `json:"phase"`      // 現在のフェーズ
	Generation uint64 `json:"generation"` // タイマー世代（古いコールバック抑止用）
}
