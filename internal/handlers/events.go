package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/nyk9/shuwa-word-wolf-api/internal/notify"
	"github.com/rs/zerolog/log"
)

// EventsHandler はゲームイベントのWebSocket購読を処理します
type EventsHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

// NewEventsHandler は新しいEventsHandlerを作成します
func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// OriginチェックはCORSミドルウェア側の設定に委ねます
				return true
			},
		},
	}
}

// Subscribe はクライアントをイベントチャネルの購読者として登録します
// GET /api/game/events?channel=
// 接続後、サーバーからのイベント配信のみを行います（クライアントからの
// メッセージは接続維持のために読み捨てます）
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	channel := normalizeID(r.URL.Query().Get("channel"))
	if channel == "" {
		channel = notify.ChannelGame
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := h.hub.Register(channel, conn)
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	log.Info().Str("channel", channel).Msg("event subscriber connected")

	// 受信ループ。切断検知のためにメッセージを読み捨てる
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("channel", channel).Msg("websocket read error")
			}
			return
		}
	}
}
