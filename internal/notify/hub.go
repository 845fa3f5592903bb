package notify

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nyk9/shuwa-word-wolf-api/internal/idgen"
	"github.com/rs/zerolog/log"
)

// writeWait は1クライアントへの書き込みを待つ最大時間です
const writeWait = 1 * time.Second

// Hub はWebSocket接続へのイベント配信を管理します
// チャネル名ごとに購読クライアントを保持し、複数goroutineから同時に利用できます
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[string]*Client // チャネル名 → (クライアントID → クライアント)
}

// Client は1つのWebSocket購読を表します
type Client struct {
	id      string
	channel string
	conn    *websocket.Conn
	writeMu sync.Mutex // gorilla/websocketは並行書き込み不可
}

// NewHub は新しいHubを作成します
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[string]*Client)}
}

// Register はクライアントをチャネルの購読者として登録します
func (h *Hub) Register(channel string, conn *websocket.Conn) *Client {
	c := &Client{id: idgen.NewClientID(), channel: channel, conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.channels[channel]
	if !ok {
		clients = make(map[string]*Client)
		h.channels[channel] = clients
	}
	clients[c.id] = c
	return c
}

// Unregister はクライアントの購読を解除します
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[c.channel]; ok {
		delete(clients, c.id)
		if len(clients) == 0 {
			delete(h.channels, c.channel)
		}
	}
}

// Notify はチャネルの購読者全員にイベントを配信します
// 書き込みに失敗したクライアントはログを残して購読解除します
// ロック保持中には書き込みません（遅いクライアントが全体を止めないように）
func (h *Hub) Notify(_ context.Context, channel, event string, payload any) {
	msg := Envelope{Channel: channel, Event: event, Payload: payload}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.channels[channel]))
	for _, c := range h.channels[channel] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.writeJSON(msg); err != nil {
			log.Warn().
				Err(err).
				Str("channel", channel).
				Str("event", event).
				Str("client_id", c.id).
				Msg("failed to deliver event, dropping client")
			h.Unregister(c)
			c.conn.Close()
		}
	}
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}
